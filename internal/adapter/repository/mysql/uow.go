package mysql

import (
	"context"

	"gorm.io/gorm"

	"stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Items:        &ItemRepository{db: tx},
		Requests:     &RequestRepository{db: tx},
		Borrows:      &BorrowRepository{db: tx},
		Requisitions: &RequisitionRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinItemTx(ctx context.Context, itemID string, fn func(r uow.Repos, it *item.Item) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the item row up-front so per-item stock mutations serialize
		it, err := r.Items.GetByItemIDForUpdate(ctx, itemID)
		if err != nil {
			return item.ErrNotFound
		}
		return fn(r, it)
	})
}
