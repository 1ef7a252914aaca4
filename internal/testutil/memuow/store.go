// Package memuow provides an in-memory UnitOfWork with snapshot rollback,
// used by workflow tests (including the approve-race concurrency property)
// without a database.
package memuow

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"stockroom-backend/internal/domain/borrow"
	"stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/domain/request"
	"stockroom-backend/internal/domain/requisition"
	"stockroom-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*Store)(nil)

type Store struct {
	mu     sync.Mutex
	nextID uint64

	items        map[uint64]item.Item
	requests     map[uint64]request.BorrowRequest
	borrows      map[uint64]borrow.Transaction
	requisitions map[uint64]requisition.Transaction
}

func New() *Store {
	return &Store{
		items:        map[uint64]item.Item{},
		requests:     map[uint64]request.BorrowRequest{},
		borrows:      map[uint64]borrow.Transaction{},
		requisitions: map[uint64]requisition.Transaction{},
	}
}

// ---- seed helpers ----

func (s *Store) AddItem(it item.Item) item.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	it.ID = s.nextID
	s.items[it.ID] = it
	return it
}

func (s *Store) AddRequest(r request.BorrowRequest) request.BorrowRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	s.requests[r.ID] = r
	return r
}

func (s *Store) AddBorrow(t borrow.Transaction) borrow.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	s.borrows[t.ID] = t
	return t
}

func (s *Store) AddRequisition(t requisition.Transaction) requisition.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	s.requisitions[t.ID] = t
	return t
}

// ---- state inspection ----

func (s *Store) ItemByID(id uint64) (item.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	return it, ok
}

func (s *Store) RequestByID(id uint64) (request.BorrowRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	return r, ok
}

func (s *Store) BorrowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.borrows)
}

func (s *Store) Borrows() []borrow.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]borrow.Transaction, 0, len(s.borrows))
	for _, t := range s.borrows {
		out = append(out, t)
	}
	return out
}

func (s *Store) RequisitionByID(id uint64) (requisition.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.requisitions[id]
	return t, ok
}

// Repos returns repositories bound directly to the live maps. They are safe
// only under the store mutex; use them through WithinTx, or from a single
// goroutine during test setup and assertions.
func (s *Store) Repos() uow.Repos {
	return uow.Repos{
		Items:        &itemRepo{s: s},
		Requests:     &requestRepo{s: s},
		Borrows:      &borrowRepo{s: s},
		Requisitions: &requisitionRepo{s: s},
	}
}

// ---- UnitOfWork ----

type snapshot struct {
	nextID       uint64
	items        map[uint64]item.Item
	requests     map[uint64]request.BorrowRequest
	borrows      map[uint64]borrow.Transaction
	requisitions map[uint64]requisition.Transaction
}

func (s *Store) snap() snapshot {
	cp := snapshot{
		nextID:       s.nextID,
		items:        make(map[uint64]item.Item, len(s.items)),
		requests:     make(map[uint64]request.BorrowRequest, len(s.requests)),
		borrows:      make(map[uint64]borrow.Transaction, len(s.borrows)),
		requisitions: make(map[uint64]requisition.Transaction, len(s.requisitions)),
	}
	for k, v := range s.items {
		cp.items[k] = v
	}
	for k, v := range s.requests {
		cp.requests[k] = v
	}
	for k, v := range s.borrows {
		cp.borrows[k] = v
	}
	for k, v := range s.requisitions {
		cp.requisitions[k] = v
	}
	return cp
}

func (s *Store) restore(cp snapshot) {
	s.nextID = cp.nextID
	s.items = cp.items
	s.requests = cp.requests
	s.borrows = cp.borrows
	s.requisitions = cp.requisitions
}

// WithinTx serializes all transactions on one mutex: stricter than the
// per-item row lock of the real adapter, but it preserves the property under
// test (no two stock mutations interleave on the same item).
func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.snap()
	if err := fn(s.Repos()); err != nil {
		s.restore(cp)
		return err
	}
	return nil
}

func (s *Store) WithinItemTx(ctx context.Context, itemID string, fn func(r uow.Repos, it *item.Item) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.snap()
	var found *item.Item
	for id := range s.items {
		if s.items[id].ItemID == itemID {
			it := s.items[id]
			found = &it
			break
		}
	}
	if found == nil {
		return item.ErrNotFound
	}
	if err := fn(s.Repos(), found); err != nil {
		s.restore(cp)
		return err
	}
	return nil
}

// ---- repositories ----

type itemRepo struct{ s *Store }

func (r *itemRepo) Create(ctx context.Context, it *item.Item) error {
	r.s.nextID++
	it.ID = r.s.nextID
	r.s.items[it.ID] = *it
	return nil
}

func (r *itemRepo) Save(ctx context.Context, it *item.Item) error {
	if _, ok := r.s.items[it.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.items[it.ID] = *it
	return nil
}

func (r *itemRepo) GetByItemID(ctx context.Context, itemID string) (*item.Item, error) {
	for id := range r.s.items {
		if r.s.items[id].ItemID == itemID {
			it := r.s.items[id]
			return &it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *itemRepo) GetByID(ctx context.Context, id uint64) (*item.Item, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &it, nil
}

func (r *itemRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*item.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) GetByItemIDForUpdate(ctx context.Context, itemID string) (*item.Item, error) {
	return r.GetByItemID(ctx, itemID)
}

func (r *itemRepo) List(ctx context.Context, f item.ListFilter) ([]item.Item, error) {
	var out []item.Item
	for id := range r.s.items {
		it := r.s.items[id]
		if f.AvailableOnly && it.AvailableStock <= 0 {
			continue
		}
		if f.ItemType != "" && it.ItemType != f.ItemType {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *itemRepo) Delete(ctx context.Context, it *item.Item) error {
	delete(r.s.items, it.ID)
	return nil
}

type requestRepo struct{ s *Store }

func (r *requestRepo) Create(ctx context.Context, req *request.BorrowRequest) error {
	r.s.nextID++
	req.ID = r.s.nextID
	r.s.requests[req.ID] = *req
	return nil
}

func (r *requestRepo) Save(ctx context.Context, req *request.BorrowRequest) error {
	if _, ok := r.s.requests[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.requests[req.ID] = *req
	return nil
}

func (r *requestRepo) GetByRequestID(ctx context.Context, requestID string) (*request.BorrowRequest, error) {
	for id := range r.s.requests {
		if r.s.requests[id].RequestID == requestID {
			req := r.s.requests[id]
			return &req, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *requestRepo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*request.BorrowRequest, error) {
	return r.GetByRequestID(ctx, requestID)
}

func (r *requestRepo) List(ctx context.Context, f request.ListFilter) ([]request.BorrowRequest, error) {
	var out []request.BorrowRequest
	for id := range r.s.requests {
		req := r.s.requests[id]
		if f.UserID != "" && req.UserID != f.UserID {
			continue
		}
		if f.ItemID != 0 && req.ItemID != f.ItemID {
			continue
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *requestRepo) CountPendingByItemID(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	for id := range r.s.requests {
		if r.s.requests[id].ItemID == itemID && r.s.requests[id].Status == request.StatusPending {
			n++
		}
	}
	return n, nil
}

type borrowRepo struct{ s *Store }

func (r *borrowRepo) Create(ctx context.Context, t *borrow.Transaction) error {
	r.s.nextID++
	t.ID = r.s.nextID
	r.s.borrows[t.ID] = *t
	return nil
}

func (r *borrowRepo) Save(ctx context.Context, t *borrow.Transaction) error {
	if _, ok := r.s.borrows[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.borrows[t.ID] = *t
	return nil
}

func (r *borrowRepo) GetByTransactionID(ctx context.Context, transactionID string) (*borrow.Transaction, error) {
	for id := range r.s.borrows {
		if r.s.borrows[id].TransactionID == transactionID {
			t := r.s.borrows[id]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *borrowRepo) GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*borrow.Transaction, error) {
	return r.GetByTransactionID(ctx, transactionID)
}

func (r *borrowRepo) List(ctx context.Context, f borrow.ListFilter) ([]borrow.Transaction, error) {
	var out []borrow.Transaction
	for id := range r.s.borrows {
		t := r.s.borrows[id]
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.ItemID != 0 && t.ItemID != f.ItemID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *borrowRepo) CountOpenByItemID(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	for id := range r.s.borrows {
		if r.s.borrows[id].ItemID == itemID && r.s.borrows[id].Status == borrow.StatusBorrowed {
			n++
		}
	}
	return n, nil
}

func (r *borrowRepo) SumOpenQuantityByItemID(ctx context.Context, itemID uint64) (int, error) {
	var sum int
	for id := range r.s.borrows {
		if r.s.borrows[id].ItemID == itemID && r.s.borrows[id].Status == borrow.StatusBorrowed {
			sum += r.s.borrows[id].Quantity
		}
	}
	return sum, nil
}

type requisitionRepo struct{ s *Store }

func (r *requisitionRepo) Create(ctx context.Context, t *requisition.Transaction) error {
	r.s.nextID++
	t.ID = r.s.nextID
	r.s.requisitions[t.ID] = *t
	return nil
}

func (r *requisitionRepo) Save(ctx context.Context, t *requisition.Transaction) error {
	if _, ok := r.s.requisitions[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.requisitions[t.ID] = *t
	return nil
}

func (r *requisitionRepo) GetByRequisitionID(ctx context.Context, requisitionID string) (*requisition.Transaction, error) {
	for id := range r.s.requisitions {
		if r.s.requisitions[id].RequisitionID == requisitionID {
			t := r.s.requisitions[id]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *requisitionRepo) GetByRequisitionIDForUpdate(ctx context.Context, requisitionID string) (*requisition.Transaction, error) {
	return r.GetByRequisitionID(ctx, requisitionID)
}

func (r *requisitionRepo) List(ctx context.Context, f requisition.ListFilter) ([]requisition.Transaction, error) {
	var out []requisition.Transaction
	for id := range r.s.requisitions {
		t := r.s.requisitions[id]
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.ItemID != 0 && t.ItemID != f.ItemID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *requisitionRepo) CountApprovedByItemID(ctx context.Context, itemID uint64) (int64, error) {
	var n int64
	for id := range r.s.requisitions {
		if r.s.requisitions[id].ItemID == itemID && r.s.requisitions[id].Status == requisition.StatusApproved {
			n++
		}
	}
	return n, nil
}
