package request

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("borrow request not found")
	// ErrStateConflict is returned for any transition attempted from a
	// non-pending state; approved/rejected/cancelled are terminal.
	ErrStateConflict = errors.New("borrow request is not pending")
	ErrNotOwner      = errors.New("borrow request belongs to another user")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// BorrowRequest is a reservation intent prior to physical handover. Stock is
// never debited for a pending request; the debit happens at approval.
type BorrowRequest struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RequestID string `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_borrow_requests_request_id_active" json:"request_id"`
	// FK to items.id (numeric)
	ItemID   uint64 `gorm:"column:item_id;not null;index" json:"-"`
	UserID   string `gorm:"column:user_id;type:char(32);not null;index:idx_borrow_requests_user" json:"user_id"`
	Quantity int    `gorm:"column:quantity;not null" json:"quantity"`

	Status Status `gorm:"column:status;type:enum('pending','approved','rejected','cancelled');default:'pending'" json:"status"`

	ScheduledPickupDate time.Time `gorm:"column:scheduled_pickup_date;type:date;not null" json:"scheduled_pickup_date"`
	ScheduledReturnDate time.Time `gorm:"column:scheduled_return_date;type:date;not null" json:"scheduled_return_date"`
	RequestNotes        string    `gorm:"column:request_notes;type:text" json:"request_notes"`

	ReviewedBy  *string    `gorm:"column:reviewed_by;type:char(32)" json:"reviewed_by,omitempty"`
	ReviewNotes string     `gorm:"column:review_notes;type:text" json:"review_notes"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (BorrowRequest) TableName() string { return "borrow_requests" }

func (r *BorrowRequest) Terminal() bool { return r.Status != StatusPending }
