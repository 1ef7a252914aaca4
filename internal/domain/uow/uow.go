package uow

import (
	"context"

	"stockroom-backend/internal/domain/borrow"
	"stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/domain/request"
	"stockroom-backend/internal/domain/requisition"
)

type Repos struct {
	Items        item.Repository
	Requests     request.Repository
	Borrows      borrow.Repository
	Requisitions requisition.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the item row first, then pass it in. Per-item stock
	// mutations serialize on this lock; cross-item work stays parallel.
	WithinItemTx(ctx context.Context, itemID string, fn func(r Repos, it *item.Item) error) error
}
