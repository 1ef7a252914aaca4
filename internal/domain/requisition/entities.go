package requisition

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("requisition not found")
	// ErrStateConflict covers both terminal states; a picked-up requisition
	// cannot be recalled through cancellation.
	ErrStateConflict = errors.New("requisition is not in approved state")
)

type Status string

const (
	StatusApproved  Status = "approved"
	StatusPickedUp  Status = "picked_up"
	StatusCancelled Status = "cancelled"
)

// Transaction is a one-way issuance of consumable stock with no return
// expected. Records enter this system already approved, with both stock
// counters debited at the upstream approval step. Cancellation must credit
// both counters back; this asymmetry versus borrowing (which only ever moves
// available_stock) is the distinguishing invariant of the workflow.
type Transaction struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RequisitionID string `gorm:"column:requisition_id;type:char(32);not null;uniqueIndex:ux_requisitions_req_id_active" json:"requisition_id"`
	// FK to items.id (numeric)
	ItemID   uint64 `gorm:"column:item_id;not null;index" json:"-"`
	UserID   string `gorm:"column:user_id;type:char(32);not null;index:idx_requisitions_user" json:"user_id"`
	Quantity int    `gorm:"column:quantity;not null" json:"quantity"`

	Status  Status `gorm:"column:status;type:enum('approved','picked_up','cancelled');default:'approved'" json:"status"`
	Purpose string `gorm:"column:purpose;type:text" json:"purpose"`

	CompletionNotes string     `gorm:"column:completion_notes;type:text" json:"completion_notes,omitempty"`
	PickedUpAt      *time.Time `gorm:"column:picked_up_at" json:"picked_up_at,omitempty"`
	CancelReason    string     `gorm:"column:cancel_reason;type:text" json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Transaction) TableName() string { return "requisition_transactions" }
