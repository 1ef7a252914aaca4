package requisition

import "context"

type ListFilter struct {
	UserID string
	ItemID uint64
	Status Status
}

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	Save(ctx context.Context, t *Transaction) error
	GetByRequisitionID(ctx context.Context, requisitionID string) (*Transaction, error)
	// GetByRequisitionIDForUpdate takes a row lock; call only inside a transaction.
	GetByRequisitionIDForUpdate(ctx context.Context, requisitionID string) (*Transaction, error)
	List(ctx context.Context, f ListFilter) ([]Transaction, error)
	// CountApprovedByItemID backs the deletion guard on items.
	CountApprovedByItemID(ctx context.Context, itemID uint64) (int64, error)
}
