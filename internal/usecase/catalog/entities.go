package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"stockroom-backend/internal/domain/item"
)

type CreateItemInput struct {
	BranchID         string
	Mode             item.Mode
	ItemType         item.Type
	Title            string
	Author           string
	ISBN             string
	Category         string
	CoverURL         string
	TotalStock       int
	AvailableStock   *int // nil: start fully available
	MaxBorrowDays    *int // nil: unlimited
	RenewableCount   *int // nil: unlimited
	LateFeePerDay    decimal.Decimal
	RequiresApproval bool
}

// UpdateItemInput uses pointers for partial updates; double pointers let a
// caller set a policy field back to NULL (unlimited).
type UpdateItemInput struct {
	Title            *string
	Author           *string
	ISBN             *string
	Category         *string
	CoverURL         *string
	ItemType         *item.Type
	TotalStock       *int
	AvailableStock   *int
	MaxBorrowDays    **int
	RenewableCount   **int
	LateFeePerDay    *decimal.Decimal
	RequiresApproval *bool
}

type ItemDTO struct {
	ItemID           string          `json:"item_id"`
	BranchID         string          `json:"branch_id"`
	Mode             string          `json:"mode"`
	ItemType         string          `json:"item_type"`
	Title            string          `json:"title"`
	Author           string          `json:"author,omitempty"`
	ISBN             string          `json:"isbn,omitempty"`
	Category         string          `json:"category,omitempty"`
	CoverURL         string          `json:"cover_url,omitempty"`
	TotalStock       int             `json:"total_stock"`
	AvailableStock   int             `json:"available_stock"`
	MaxBorrowDays    *int            `json:"max_borrow_days"`
	RenewableCount   *int            `json:"renewable_count"`
	LateFeePerDay    decimal.Decimal `json:"late_fee_per_day"`
	RequiresApproval bool            `json:"requires_approval"`
	CreatedAt        time.Time       `json:"created_at"`
}
