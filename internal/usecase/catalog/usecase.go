package catalog

import (
	"context"
	"errors"
	"fmt"

	domainItem "stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/domain/uow"
	"stockroom-backend/pkg/id"
)

type Usecase struct {
	items domainItem.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(items domainItem.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{items: items, uow: tx}
}

func (u *Usecase) Create(ctx context.Context, in CreateItemInput) (*ItemDTO, error) {
	if in.Title == "" {
		return nil, errors.New("title is required")
	}
	if !in.Mode.Valid() {
		return nil, fmt.Errorf("invalid item mode %q", in.Mode)
	}
	if !in.ItemType.Valid() {
		return nil, fmt.Errorf("invalid item type %q", in.ItemType)
	}
	if in.TotalStock < 0 {
		return nil, errors.New("total stock must not be negative")
	}
	if in.LateFeePerDay.IsNegative() {
		return nil, errors.New("late fee per day must not be negative")
	}

	// New items start fully available unless told otherwise.
	available := in.TotalStock
	if in.AvailableStock != nil {
		available = *in.AvailableStock
	}
	if available < 0 || available > in.TotalStock {
		return nil, errors.New("available stock must be between 0 and total stock")
	}

	it := &domainItem.Item{
		ItemID:           id.NewID32(),
		BranchID:         in.BranchID,
		Mode:             in.Mode,
		ItemType:         in.ItemType,
		Title:            in.Title,
		Author:           in.Author,
		ISBN:             in.ISBN,
		Category:         in.Category,
		CoverURL:         in.CoverURL,
		TotalStock:       in.TotalStock,
		AvailableStock:   available,
		MaxBorrowDays:    in.MaxBorrowDays,
		RenewableCount:   in.RenewableCount,
		LateFeePerDay:    in.LateFeePerDay,
		RequiresApproval: in.RequiresApproval,
	}
	if err := u.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return toDTO(it), nil
}

// Update applies catalog edits and operator stock adjustments under the item
// lock, so adjustments cannot interleave with ledger mutations.
func (u *Usecase) Update(ctx context.Context, itemID string, in UpdateItemInput) (*ItemDTO, error) {
	var dto *ItemDTO
	err := u.uow.WithinItemTx(ctx, itemID, func(r uow.Repos, it *domainItem.Item) error {
		if in.Title != nil {
			if *in.Title == "" {
				return errors.New("title must not be empty")
			}
			it.Title = *in.Title
		}
		if in.Author != nil {
			it.Author = *in.Author
		}
		if in.ISBN != nil {
			it.ISBN = *in.ISBN
		}
		if in.Category != nil {
			it.Category = *in.Category
		}
		if in.CoverURL != nil {
			it.CoverURL = *in.CoverURL
		}
		if in.ItemType != nil {
			if !in.ItemType.Valid() {
				return fmt.Errorf("invalid item type %q", *in.ItemType)
			}
			it.ItemType = *in.ItemType
		}
		if in.MaxBorrowDays != nil {
			it.MaxBorrowDays = *in.MaxBorrowDays
		}
		if in.RenewableCount != nil {
			it.RenewableCount = *in.RenewableCount
		}
		if in.LateFeePerDay != nil {
			if in.LateFeePerDay.IsNegative() {
				return errors.New("late fee per day must not be negative")
			}
			it.LateFeePerDay = *in.LateFeePerDay
		}
		if in.RequiresApproval != nil {
			it.RequiresApproval = *in.RequiresApproval
		}

		// Stock adjustment: only here and in the ledger do the counters move.
		if in.TotalStock != nil || in.AvailableStock != nil {
			if in.TotalStock != nil {
				it.TotalStock = *in.TotalStock
			}
			if in.AvailableStock != nil {
				it.AvailableStock = *in.AvailableStock
			}
			if !it.StockValid() {
				return errors.New("stock adjustment violates 0 <= available <= total")
			}
			// Units out on open loans come back through the check-in credit;
			// total must keep room for them or a legitimate check-in would
			// breach the invariant.
			onLoan, err := r.Borrows.SumOpenQuantityByItemID(ctx, it.ID)
			if err != nil {
				return err
			}
			if it.AvailableStock+onLoan > it.TotalStock {
				return fmt.Errorf("stock adjustment conflicts with %d unit(s) out on open loans", onLoan)
			}
		}

		if err := r.Items.Save(ctx, it); err != nil {
			return err
		}
		dto = toDTO(it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete soft-deletes an item, refusing while open requests, open loans or
// approved requisitions still reference it.
func (u *Usecase) Delete(ctx context.Context, itemID string) error {
	return u.uow.WithinItemTx(ctx, itemID, func(r uow.Repos, it *domainItem.Item) error {
		pending, err := r.Requests.CountPendingByItemID(ctx, it.ID)
		if err != nil {
			return err
		}
		open, err := r.Borrows.CountOpenByItemID(ctx, it.ID)
		if err != nil {
			return err
		}
		approved, err := r.Requisitions.CountApprovedByItemID(ctx, it.ID)
		if err != nil {
			return err
		}
		if pending+open+approved > 0 {
			return domainItem.ErrInUse
		}
		return r.Items.Delete(ctx, it)
	})
}

func (u *Usecase) Get(ctx context.Context, itemID string) (*ItemDTO, error) {
	it, err := u.items.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toDTO(it), nil
}

func (u *Usecase) List(ctx context.Context, f domainItem.ListFilter) ([]ItemDTO, error) {
	if f.ItemType != "" && !f.ItemType.Valid() {
		return nil, fmt.Errorf("invalid item type %q", f.ItemType)
	}
	items, err := u.items.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

func toDTO(it *domainItem.Item) *ItemDTO {
	return &ItemDTO{
		ItemID:           it.ItemID,
		BranchID:         it.BranchID,
		Mode:             string(it.Mode),
		ItemType:         string(it.ItemType),
		Title:            it.Title,
		Author:           it.Author,
		ISBN:             it.ISBN,
		Category:         it.Category,
		CoverURL:         it.CoverURL,
		TotalStock:       it.TotalStock,
		AvailableStock:   it.AvailableStock,
		MaxBorrowDays:    it.MaxBorrowDays,
		RenewableCount:   it.RenewableCount,
		LateFeePerDay:    it.LateFeePerDay,
		RequiresApproval: it.RequiresApproval,
		CreatedAt:        it.CreatedAt,
	}
}
