package mysql

import (
	"context"

	"gorm.io/gorm"

	borrowDomain "stockroom-backend/internal/domain/borrow"
)

type BorrowRepository struct{ db *gorm.DB }

func NewBorrowRepository(db *gorm.DB) *BorrowRepository { return &BorrowRepository{db: db} }

func (r *BorrowRepository) Create(ctx context.Context, t *borrowDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *BorrowRepository) Save(ctx context.Context, t *borrowDomain.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *BorrowRepository) GetByTransactionID(ctx context.Context, transactionID string) (*borrowDomain.Transaction, error) {
	var out borrowDomain.Transaction
	res := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&out)
	return &out, res.Error
}

func (r *BorrowRepository) GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*borrowDomain.Transaction, error) {
	var out borrowDomain.Transaction
	res := forUpdate(r.db.WithContext(ctx)).Where("transaction_id = ?", transactionID).First(&out)
	return &out, res.Error
}

func (r *BorrowRepository) List(ctx context.Context, f borrowDomain.ListFilter) ([]borrowDomain.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&borrowDomain.Transaction{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ItemID != 0 {
		q = q.Where("item_id = ?", f.ItemID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var txns []borrowDomain.Transaction
	err := q.Order("created_at DESC, id DESC").Find(&txns).Error
	return txns, err
}

func (r *BorrowRepository) CountOpenByItemID(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&borrowDomain.Transaction{}).
		Where("item_id = ? AND status = ?", itemID, borrowDomain.StatusBorrowed).
		Count(&n).Error
	return n, err
}

func (r *BorrowRepository) SumOpenQuantityByItemID(ctx context.Context, itemID uint64) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).Model(&borrowDomain.Transaction{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("item_id = ? AND status = ?", itemID, borrowDomain.StatusBorrowed).
		Scan(&sum).Error
	return sum, err
}
