package item

import "context"

type ListFilter struct {
	Search        string // matches title, author or isbn
	ItemType      Type
	Category      string
	BranchID      string
	AvailableOnly bool
}

type Repository interface {
	Create(ctx context.Context, it *Item) error
	Save(ctx context.Context, it *Item) error
	GetByItemID(ctx context.Context, itemID string) (*Item, error)
	GetByID(ctx context.Context, id uint64) (*Item, error)
	// GetByIDForUpdate takes a row lock; call only inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Item, error)
	GetByItemIDForUpdate(ctx context.Context, itemID string) (*Item, error)
	List(ctx context.Context, f ListFilter) ([]Item, error)
	Delete(ctx context.Context, it *Item) error
}
