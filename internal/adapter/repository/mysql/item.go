package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	itemDomain "stockroom-backend/internal/domain/item"
)

type ItemRepository struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) *ItemRepository { return &ItemRepository{db: db} }

// forUpdate adds a row lock. sqlite (used by tests) has no FOR UPDATE; its
// single-writer lock gives the same serialization there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *ItemRepository) Create(ctx context.Context, it *itemDomain.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *ItemRepository) Save(ctx context.Context, it *itemDomain.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *ItemRepository) GetByItemID(ctx context.Context, itemID string) (*itemDomain.Item, error) {
	var out itemDomain.Item
	res := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&out)
	return &out, res.Error
}

func (r *ItemRepository) GetByID(ctx context.Context, id uint64) (*itemDomain.Item, error) {
	var out itemDomain.Item
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ItemRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*itemDomain.Item, error) {
	var out itemDomain.Item
	res := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ItemRepository) GetByItemIDForUpdate(ctx context.Context, itemID string) (*itemDomain.Item, error) {
	var out itemDomain.Item
	res := forUpdate(r.db.WithContext(ctx)).Where("item_id = ?", itemID).First(&out)
	return &out, res.Error
}

func (r *ItemRepository) List(ctx context.Context, f itemDomain.ListFilter) ([]itemDomain.Item, error) {
	q := r.db.WithContext(ctx).Model(&itemDomain.Item{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR author LIKE ? OR isbn LIKE ?", like, like, like)
	}
	if f.ItemType != "" {
		q = q.Where("item_type = ?", f.ItemType)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.BranchID != "" {
		q = q.Where("branch_id = ?", f.BranchID)
	}
	if f.AvailableOnly {
		q = q.Where("available_stock > 0")
	}
	var items []itemDomain.Item
	err := q.Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *ItemRepository) Delete(ctx context.Context, it *itemDomain.Item) error {
	return r.db.WithContext(ctx).Delete(it).Error
}
