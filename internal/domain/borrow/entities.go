package borrow

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("borrow transaction not found")
	ErrStateConflict = errors.New("borrow transaction is not open")
	ErrRenewalLimit  = errors.New("renewal limit exceeded")
)

type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
)

type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
	ConditionDamaged   Condition = "damaged"
	ConditionLost      Condition = "lost"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged, ConditionLost:
		return true
	}
	return false
}

// Transaction is an active or closed loan, created exactly once per approved
// borrow request (enforced by the unique index on request_id). Once returned
// it is an immutable historical record.
//
// Overdue is a derived state: a borrowed transaction whose effective due date
// has passed. It is never persisted as a separate status; use OverdueAsOf.
type Transaction struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransactionID string `gorm:"column:transaction_id;type:char(32);not null;uniqueIndex:ux_borrow_txns_txn_id_active" json:"transaction_id"`
	// FK to borrow_requests.id (numeric); at most one transaction per request
	RequestID uint64 `gorm:"column:request_id;not null;uniqueIndex:ux_borrow_txns_request_active" json:"-"`
	// FK to items.id (numeric)
	ItemID   uint64 `gorm:"column:item_id;not null;index" json:"-"`
	UserID   string `gorm:"column:user_id;type:char(32);not null;index:idx_borrow_txns_user" json:"user_id"`
	Quantity int    `gorm:"column:quantity;not null" json:"quantity"`

	Status Status `gorm:"column:status;type:enum('borrowed','returned');default:'borrowed'" json:"status"`

	BorrowedDate  time.Time  `gorm:"column:borrowed_date;not null" json:"borrowed_date"`
	DueDate       *time.Time `gorm:"column:due_date" json:"due_date,omitempty"` // nil = no due date, never overdue
	RenewalCount  int        `gorm:"column:renewal_count;not null;default:0" json:"renewal_count"`
	ExtendedUntil *time.Time `gorm:"column:extended_until" json:"extended_until,omitempty"`

	ConditionOnBorrow Condition `gorm:"column:condition_on_borrow;size:16;not null;default:'good'" json:"condition_on_borrow"`
	ConditionOnReturn Condition `gorm:"column:condition_on_return;size:16" json:"condition_on_return,omitempty"`
	ReturnNotes       string    `gorm:"column:return_notes;type:text" json:"return_notes,omitempty"`

	LateFee   decimal.Decimal `gorm:"column:late_fee;type:decimal(18,2);not null;default:0" json:"late_fee"`
	DamageFee decimal.Decimal `gorm:"column:damage_fee;type:decimal(18,2);not null;default:0" json:"damage_fee"`
	TotalFee  decimal.Decimal `gorm:"column:total_fee;type:decimal(18,2);not null;default:0" json:"total_fee"`
	FeePaid   bool            `gorm:"column:fee_paid;not null;default:false" json:"fee_paid"`

	ReturnedDate *time.Time `gorm:"column:returned_date" json:"returned_date,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Transaction) TableName() string { return "borrow_transactions" }

// EffectiveDueDate is ExtendedUntil when set, else DueDate. May be nil.
func (t *Transaction) EffectiveDueDate() *time.Time {
	if t.ExtendedUntil != nil {
		return t.ExtendedUntil
	}
	return t.DueDate
}

// OverdueAsOf reports whether the loan counts as overdue at the given
// instant. Transactions without a due date are never overdue.
func (t *Transaction) OverdueAsOf(now time.Time) bool {
	if t.Status != StatusBorrowed {
		return false
	}
	due := t.EffectiveDueDate()
	return due != nil && due.Before(now)
}
