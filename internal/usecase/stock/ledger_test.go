package stock

import (
	"context"
	"errors"
	"testing"

	domain "stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/testutil/itemmock"
)

func newItem(available, total int) *domain.Item {
	return &domain.Item{ID: 1, ItemID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", AvailableStock: available, TotalStock: total}
}

func TestDebitAvailable_Success(t *testing.T) {
	var saved *domain.Item
	repo := &itemmock.Repo{SaveFn: func(ctx context.Context, it *domain.Item) error {
		saved = it
		return nil
	}}
	it := newItem(5, 5)

	if err := NewLedger(nil).DebitAvailable(context.Background(), repo, it, 2); err != nil {
		t.Fatalf("DebitAvailable err: %v", err)
	}
	if it.AvailableStock != 3 || it.TotalStock != 5 {
		t.Fatalf("counters = %d/%d, want 3/5", it.AvailableStock, it.TotalStock)
	}
	if saved == nil {
		t.Fatal("item was not saved")
	}
}

func TestDebitAvailable_Insufficient(t *testing.T) {
	repo := &itemmock.Repo{SaveFn: func(ctx context.Context, it *domain.Item) error {
		t.Fatal("Save must not be called on insufficient stock")
		return nil
	}}
	it := newItem(1, 5)

	err := NewLedger(nil).DebitAvailable(context.Background(), repo, it, 2)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if it.AvailableStock != 1 {
		t.Fatalf("available mutated to %d on failed debit", it.AvailableStock)
	}
}

func TestDebitAvailable_RejectsNonPositiveQty(t *testing.T) {
	it := newItem(5, 5)
	if err := NewLedger(nil).DebitAvailable(context.Background(), &itemmock.Repo{}, it, 0); err == nil {
		t.Fatal("want error for qty 0")
	}
}

func TestCreditAvailable_Success(t *testing.T) {
	repo := &itemmock.Repo{}
	it := newItem(3, 5)
	if err := NewLedger(nil).CreditAvailable(context.Background(), repo, it, 2); err != nil {
		t.Fatalf("CreditAvailable err: %v", err)
	}
	if it.AvailableStock != 5 || it.TotalStock != 5 {
		t.Fatalf("counters = %d/%d, want 5/5", it.AvailableStock, it.TotalStock)
	}
}

func TestCreditAvailable_InvariantBreach(t *testing.T) {
	repo := &itemmock.Repo{SaveFn: func(ctx context.Context, it *domain.Item) error {
		t.Fatal("Save must not be called on invariant breach")
		return nil
	}}
	it := newItem(5, 5)

	err := NewLedger(nil).CreditAvailable(context.Background(), repo, it, 1)
	if !errors.Is(err, domain.ErrStockInvariant) {
		t.Fatalf("err = %v, want ErrStockInvariant", err)
	}
	if it.AvailableStock != 5 {
		t.Fatalf("available mutated to %d, must never clamp", it.AvailableStock)
	}
}

func TestDebitBoth_Success(t *testing.T) {
	it := newItem(5, 5)
	if err := NewLedger(nil).DebitBoth(context.Background(), &itemmock.Repo{}, it, 2); err != nil {
		t.Fatalf("DebitBoth err: %v", err)
	}
	if it.AvailableStock != 3 || it.TotalStock != 3 {
		t.Fatalf("counters = %d/%d, want 3/3", it.AvailableStock, it.TotalStock)
	}
}

func TestDebitBoth_Insufficient(t *testing.T) {
	it := newItem(1, 4) // 3 units out on loan
	err := NewLedger(nil).DebitBoth(context.Background(), &itemmock.Repo{}, it, 2)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
}

func TestCreditBoth_RestoresBothCounters(t *testing.T) {
	it := newItem(3, 3)
	if err := NewLedger(nil).CreditBoth(context.Background(), &itemmock.Repo{}, it, 2); err != nil {
		t.Fatalf("CreditBoth err: %v", err)
	}
	if it.AvailableStock != 5 || it.TotalStock != 5 {
		t.Fatalf("counters = %d/%d, want 5/5", it.AvailableStock, it.TotalStock)
	}
}
