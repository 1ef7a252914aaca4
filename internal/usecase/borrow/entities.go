package borrow

import (
	"time"

	"github.com/shopspring/decimal"

	domainBorrow "stockroom-backend/internal/domain/borrow"
	"stockroom-backend/internal/usecase/fee"
)

type CheckInInput struct {
	TransactionID     string
	ConditionOnReturn domainBorrow.Condition
	DamageFee         decimal.Decimal
	Notes             string
}

type ListInput struct {
	UserID      string
	ItemID      uint64
	Status      domainBorrow.Status
	OverdueOnly bool
}

type TransactionDTO struct {
	TransactionID     string          `json:"transaction_id"`
	ItemID            string          `json:"item_id"`
	UserID            string          `json:"user_id"`
	Quantity          int             `json:"quantity"`
	Status            string          `json:"status"` // borrowed | overdue (derived) | returned
	BorrowedDate      time.Time       `json:"borrowed_date"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	RenewalCount      int             `json:"renewal_count"`
	ExtendedUntil     *time.Time      `json:"extended_until,omitempty"`
	ConditionOnBorrow string          `json:"condition_on_borrow"`
	ConditionOnReturn string          `json:"condition_on_return,omitempty"`
	LateFee           decimal.Decimal `json:"late_fee"`
	DamageFee         decimal.Decimal `json:"damage_fee"`
	TotalFee          decimal.Decimal `json:"total_fee"`
	FeePaid           bool            `json:"fee_paid"`
	ReturnedDate      *time.Time      `json:"returned_date,omitempty"`
}

// CheckInResult carries the closed loan plus the fee breakdown for receipt
// display by the caller.
type CheckInResult struct {
	Transaction TransactionDTO `json:"transaction"`
	Fees        fee.Breakdown  `json:"fees"`
}
