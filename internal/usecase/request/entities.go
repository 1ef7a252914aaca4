package request

import "time"

type CreateInput struct {
	ItemID              string // public item id
	UserID              string
	Quantity            int
	ScheduledPickupDate time.Time
	ScheduledReturnDate time.Time
	Notes               string
}

type ApproveInput struct {
	RequestID  string
	ReviewerID string
	Notes      string
}

type ReviewInput struct {
	RequestID  string
	ReviewerID string
	Notes      string
}

type RequestDTO struct {
	RequestID           string     `json:"request_id"`
	ItemID              string     `json:"item_id"`
	UserID              string     `json:"user_id"`
	Quantity            int        `json:"quantity"`
	Status              string     `json:"status"`
	ScheduledPickupDate time.Time  `json:"scheduled_pickup_date"`
	ScheduledReturnDate time.Time  `json:"scheduled_return_date"`
	RequestNotes        string     `json:"request_notes,omitempty"`
	ReviewedBy          *string    `json:"reviewed_by,omitempty"`
	ReviewNotes         string     `json:"review_notes,omitempty"`
	ReviewedAt          *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// ApproveResult carries the request plus the loan opened by the approval.
type ApproveResult struct {
	Request       RequestDTO `json:"request"`
	TransactionID string     `json:"transaction_id"`
	BorrowedDate  time.Time  `json:"borrowed_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}
