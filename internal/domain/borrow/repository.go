package borrow

import "context"

type ListFilter struct {
	UserID string
	ItemID uint64
	Status Status
}

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	Save(ctx context.Context, t *Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)
	// GetByTransactionIDForUpdate takes a row lock; call only inside a transaction.
	GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*Transaction, error)
	List(ctx context.Context, f ListFilter) ([]Transaction, error)
	// CountOpenByItemID backs the deletion guard on items.
	CountOpenByItemID(ctx context.Context, itemID uint64) (int64, error)
	// SumOpenQuantityByItemID totals the units currently out on open loans;
	// it backs catalog stock adjustments.
	SumOpenQuantityByItemID(ctx context.Context, itemID uint64) (int, error)
}
