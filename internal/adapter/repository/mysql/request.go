package mysql

import (
	"context"

	"gorm.io/gorm"

	requestDomain "stockroom-backend/internal/domain/request"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

func (r *RequestRepository) Create(ctx context.Context, req *requestDomain.BorrowRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) Save(ctx context.Context, req *requestDomain.BorrowRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *RequestRepository) GetByRequestID(ctx context.Context, requestID string) (*requestDomain.BorrowRequest, error) {
	var out requestDomain.BorrowRequest
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *RequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*requestDomain.BorrowRequest, error) {
	var out requestDomain.BorrowRequest
	res := forUpdate(r.db.WithContext(ctx)).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *RequestRepository) List(ctx context.Context, f requestDomain.ListFilter) ([]requestDomain.BorrowRequest, error) {
	q := r.db.WithContext(ctx).Model(&requestDomain.BorrowRequest{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ItemID != 0 {
		q = q.Where("item_id = ?", f.ItemID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var reqs []requestDomain.BorrowRequest
	err := q.Order("created_at DESC, id DESC").Find(&reqs).Error
	return reqs, err
}

func (r *RequestRepository) CountPendingByItemID(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&requestDomain.BorrowRequest{}).
		Where("item_id = ? AND status = ?", itemID, requestDomain.StatusPending).
		Count(&n).Error
	return n, err
}
