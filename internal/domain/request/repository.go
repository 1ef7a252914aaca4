package request

import "context"

type ListFilter struct {
	UserID string
	ItemID uint64
	Status Status
}

type Repository interface {
	Create(ctx context.Context, r *BorrowRequest) error
	Save(ctx context.Context, r *BorrowRequest) error
	GetByRequestID(ctx context.Context, requestID string) (*BorrowRequest, error)
	// GetByRequestIDForUpdate takes a row lock; call only inside a transaction.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*BorrowRequest, error)
	List(ctx context.Context, f ListFilter) ([]BorrowRequest, error)
	// CountPendingByItemID backs the deletion guard on items.
	CountPendingByItemID(ctx context.Context, itemID uint64) (int64, error)
}
