package stock

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"stockroom-backend/internal/domain/item"
)

// Ledger is the only code path allowed to change the stock counters. Every
// method expects an item that the caller's transaction has already row-locked
// (uow.WithinItemTx or an explicit ForUpdate fetch) and a repository bound to
// that same transaction, so the mutation and its paired status transition
// commit together.
type Ledger struct {
	log *logrus.Logger
}

func NewLedger(log *logrus.Logger) *Ledger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Ledger{log: log}
}

// DebitAvailable reserves qty units for handover. TotalStock is untouched:
// the item still belongs to the institution while on loan.
func (l *Ledger) DebitAvailable(ctx context.Context, items item.Repository, it *item.Item, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("stock debit: quantity must be positive, got %d", qty)
	}
	if it.AvailableStock < qty {
		return item.ErrInsufficientStock
	}
	it.AvailableStock -= qty
	return items.Save(ctx, it)
}

// CreditAvailable restores qty units on check-in. Exceeding TotalStock is an
// invariant breach and fails the surrounding transaction, never clamps.
func (l *Ledger) CreditAvailable(ctx context.Context, items item.Repository, it *item.Item, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("stock credit: quantity must be positive, got %d", qty)
	}
	if it.AvailableStock+qty > it.TotalStock {
		l.log.WithFields(logrus.Fields{
			"item_id":   it.ItemID,
			"available": it.AvailableStock,
			"total":     it.TotalStock,
			"credit":    qty,
		}).Error("stock invariant breach: credit would push available above total")
		return item.ErrStockInvariant
	}
	it.AvailableStock += qty
	return items.Save(ctx, it)
}

// DebitBoth removes qty units from inventory entirely (requisition approval:
// the stock permanently leaves once picked up).
func (l *Ledger) DebitBoth(ctx context.Context, items item.Repository, it *item.Item, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("stock debit: quantity must be positive, got %d", qty)
	}
	if it.AvailableStock < qty {
		return item.ErrInsufficientStock
	}
	it.AvailableStock -= qty
	it.TotalStock -= qty
	return items.Save(ctx, it)
}

// CreditBoth restores qty units to inventory (requisition cancellation).
func (l *Ledger) CreditBoth(ctx context.Context, items item.Repository, it *item.Item, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("stock credit: quantity must be positive, got %d", qty)
	}
	it.AvailableStock += qty
	it.TotalStock += qty
	if !it.StockValid() {
		l.log.WithFields(logrus.Fields{
			"item_id":   it.ItemID,
			"available": it.AvailableStock,
			"total":     it.TotalStock,
		}).Error("stock invariant breach after double credit")
		return item.ErrStockInvariant
	}
	return items.Save(ctx, it)
}
