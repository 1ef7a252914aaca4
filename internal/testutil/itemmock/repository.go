package itemmock

import (
	"context"

	domain "stockroom-backend/internal/domain/item"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn               func(ctx context.Context, it *domain.Item) error
	SaveFn                 func(ctx context.Context, it *domain.Item) error
	GetByItemIDFn          func(ctx context.Context, itemID string) (*domain.Item, error)
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.Item, error)
	GetByIDForUpdateFn     func(ctx context.Context, id uint64) (*domain.Item, error)
	GetByItemIDForUpdateFn func(ctx context.Context, itemID string) (*domain.Item, error)
	ListFn                 func(ctx context.Context, f domain.ListFilter) ([]domain.Item, error)
	DeleteFn               func(ctx context.Context, it *domain.Item) error
}

func (m *Repo) Create(ctx context.Context, it *domain.Item) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, it)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, it *domain.Item) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, it)
	}
	return nil
}

func (m *Repo) GetByItemID(ctx context.Context, itemID string) (*domain.Item, error) {
	if m.GetByItemIDFn != nil {
		return m.GetByItemIDFn(ctx, itemID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Item, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Item, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByItemIDForUpdate(ctx context.Context, itemID string) (*domain.Item, error) {
	if m.GetByItemIDForUpdateFn != nil {
		return m.GetByItemIDForUpdateFn(ctx, itemID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Item, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, it *domain.Item) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, it)
	}
	return nil
}
