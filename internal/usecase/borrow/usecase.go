package borrow

import (
	"context"
	"errors"

	domainBorrow "stockroom-backend/internal/domain/borrow"
	domainItem "stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/domain/uow"
	"stockroom-backend/internal/usecase/fee"
	"stockroom-backend/internal/usecase/stock"
	"stockroom-backend/pkg/clock"
)

type Usecase struct {
	items   domainItem.Repository
	borrows domainBorrow.Repository
	uow     uow.UnitOfWork
	ledger  *stock.Ledger
	clk     clock.Clock
}

func NewUsecase(items domainItem.Repository, borrows domainBorrow.Repository, tx uow.UnitOfWork, ledger *stock.Ledger, clk clock.Clock) *Usecase {
	if clk == nil {
		clk = clock.System{}
	}
	return &Usecase{items: items, borrows: borrows, uow: tx, ledger: ledger, clk: clk}
}

// Renew extends the loan by one full borrow period from the later of the
// current due date or a prior extension. Overdue loans may still renew.
func (u *Usecase) Renew(ctx context.Context, transactionID string) (*TransactionDTO, error) {
	var dto *TransactionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		txn, err := r.Borrows.GetByTransactionIDForUpdate(ctx, transactionID)
		if err != nil {
			return domainBorrow.ErrNotFound
		}
		if txn.Status != domainBorrow.StatusBorrowed {
			return domainBorrow.ErrStateConflict
		}

		it, err := r.Items.GetByID(ctx, txn.ItemID)
		if err != nil {
			return domainItem.ErrNotFound
		}
		if it.RenewableCount != nil && txn.RenewalCount >= *it.RenewableCount {
			return domainBorrow.ErrRenewalLimit
		}

		txn.RenewalCount++
		// With an unlimited borrow period there is no date to extend; the
		// renewal is bookkeeping only.
		if it.MaxBorrowDays != nil {
			// Loans approved under an unlimited policy have no due date; a
			// policy added later starts the clock at this renewal.
			base := u.clk.Now()
			if txn.DueDate != nil {
				base = *txn.DueDate
			}
			if txn.ExtendedUntil != nil && txn.ExtendedUntil.After(base) {
				base = *txn.ExtendedUntil
			}
			ext := base.AddDate(0, 0, *it.MaxBorrowDays)
			txn.ExtendedUntil = &ext
		}
		if err := r.Borrows.Save(ctx, txn); err != nil {
			return err
		}
		dto = u.toDTO(txn, it.ItemID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CheckIn closes the loan: fee breakdown, condition, returned status and the
// available-stock credit commit together. TotalStock is never touched here,
// even for damaged or lost returns; those are reconciled through an explicit
// catalog stock adjustment.
func (u *Usecase) CheckIn(ctx context.Context, in CheckInInput) (*CheckInResult, error) {
	if !in.ConditionOnReturn.Valid() {
		return nil, errors.New("invalid return condition")
	}
	if in.DamageFee.IsNegative() {
		return nil, errors.New("damage fee must not be negative")
	}

	var out *CheckInResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		txn, err := r.Borrows.GetByTransactionIDForUpdate(ctx, in.TransactionID)
		if err != nil {
			return domainBorrow.ErrNotFound
		}
		if txn.Status != domainBorrow.StatusBorrowed {
			return domainBorrow.ErrStateConflict
		}

		it, err := r.Items.GetByIDForUpdate(ctx, txn.ItemID)
		if err != nil {
			return domainItem.ErrNotFound
		}

		now := u.clk.Now()
		bd := fee.Compute(txn.EffectiveDueDate(), now, it.LateFeePerDay, in.DamageFee)

		txn.Status = domainBorrow.StatusReturned
		txn.ConditionOnReturn = in.ConditionOnReturn
		txn.ReturnNotes = in.Notes
		txn.LateFee = bd.LateFee
		txn.DamageFee = bd.DamageFee
		txn.TotalFee = bd.TotalFee
		txn.FeePaid = false // collection is external
		txn.ReturnedDate = &now

		if err := u.ledger.CreditAvailable(ctx, r.Items, it, txn.Quantity); err != nil {
			return err
		}
		if err := r.Borrows.Save(ctx, txn); err != nil {
			return err
		}

		out = &CheckInResult{Transaction: *u.toDTO(txn, it.ItemID), Fees: bd}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List is a read model. OverdueOnly filters on the derived overdue state.
func (u *Usecase) List(ctx context.Context, f ListInput) ([]TransactionDTO, error) {
	filter := domainBorrow.ListFilter{UserID: f.UserID, ItemID: f.ItemID, Status: f.Status}
	if f.OverdueOnly {
		filter.Status = domainBorrow.StatusBorrowed
	}
	txns, err := u.borrows.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := u.clk.Now()
	out := make([]TransactionDTO, 0, len(txns))
	for i := range txns {
		if f.OverdueOnly && !txns[i].OverdueAsOf(now) {
			continue
		}
		out = append(out, *u.toDTO(&txns[i], u.lookupItemID(ctx, txns[i].ItemID)))
	}
	return out, nil
}

func (u *Usecase) lookupItemID(ctx context.Context, numericID uint64) string {
	it, err := u.items.GetByID(ctx, numericID)
	if err != nil {
		return ""
	}
	return it.ItemID
}

func (u *Usecase) toDTO(t *domainBorrow.Transaction, itemID string) *TransactionDTO {
	status := string(t.Status)
	if t.OverdueAsOf(u.clk.Now()) {
		status = "overdue" // derived overlay, never persisted
	}
	return &TransactionDTO{
		TransactionID:     t.TransactionID,
		ItemID:            itemID,
		UserID:            t.UserID,
		Quantity:          t.Quantity,
		Status:            status,
		BorrowedDate:      t.BorrowedDate,
		DueDate:           t.DueDate,
		RenewalCount:      t.RenewalCount,
		ExtendedUntil:     t.ExtendedUntil,
		ConditionOnBorrow: string(t.ConditionOnBorrow),
		ConditionOnReturn: string(t.ConditionOnReturn),
		LateFee:           t.LateFee,
		DamageFee:         t.DamageFee,
		TotalFee:          t.TotalFee,
		FeePaid:           t.FeePaid,
		ReturnedDate:      t.ReturnedDate,
	}
}
