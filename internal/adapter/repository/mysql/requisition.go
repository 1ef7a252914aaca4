package mysql

import (
	"context"

	"gorm.io/gorm"

	requisitionDomain "stockroom-backend/internal/domain/requisition"
)

type RequisitionRepository struct{ db *gorm.DB }

func NewRequisitionRepository(db *gorm.DB) *RequisitionRepository {
	return &RequisitionRepository{db: db}
}

func (r *RequisitionRepository) Create(ctx context.Context, t *requisitionDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RequisitionRepository) Save(ctx context.Context, t *requisitionDomain.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *RequisitionRepository) GetByRequisitionID(ctx context.Context, requisitionID string) (*requisitionDomain.Transaction, error) {
	var out requisitionDomain.Transaction
	res := r.db.WithContext(ctx).Where("requisition_id = ?", requisitionID).First(&out)
	return &out, res.Error
}

func (r *RequisitionRepository) GetByRequisitionIDForUpdate(ctx context.Context, requisitionID string) (*requisitionDomain.Transaction, error) {
	var out requisitionDomain.Transaction
	res := forUpdate(r.db.WithContext(ctx)).Where("requisition_id = ?", requisitionID).First(&out)
	return &out, res.Error
}

func (r *RequisitionRepository) List(ctx context.Context, f requisitionDomain.ListFilter) ([]requisitionDomain.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&requisitionDomain.Transaction{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ItemID != 0 {
		q = q.Where("item_id = ?", f.ItemID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var txns []requisitionDomain.Transaction
	err := q.Order("created_at DESC, id DESC").Find(&txns).Error
	return txns, err
}

func (r *RequisitionRepository) CountApprovedByItemID(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&requisitionDomain.Transaction{}).
		Where("item_id = ? AND status = ?", itemID, requisitionDomain.StatusApproved).
		Count(&n).Error
	return n, err
}
