package request

import (
	"context"
	"errors"
	"time"

	domainBorrow "stockroom-backend/internal/domain/borrow"
	domainItem "stockroom-backend/internal/domain/item"
	domainRequest "stockroom-backend/internal/domain/request"
	"stockroom-backend/internal/domain/uow"
	"stockroom-backend/internal/usecase/stock"
	"stockroom-backend/pkg/clock"
	"stockroom-backend/pkg/id"
)

type Usecase struct {
	items    domainItem.Repository
	requests domainRequest.Repository
	uow      uow.UnitOfWork
	ledger   *stock.Ledger
	clk      clock.Clock
}

func NewUsecase(items domainItem.Repository, requests domainRequest.Repository, tx uow.UnitOfWork, ledger *stock.Ledger, clk clock.Clock) *Usecase {
	if clk == nil {
		clk = clock.System{}
	}
	return &Usecase{items: items, requests: requests, uow: tx, ledger: ledger, clk: clk}
}

// Create files a reservation intent. The availability check here is advisory
// only; stock can change before approval, where the authoritative check runs
// under the item lock.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*RequestDTO, error) {
	if in.UserID == "" {
		return nil, errors.New("user id is required")
	}
	if in.Quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}
	if in.ScheduledReturnDate.Before(in.ScheduledPickupDate) {
		return nil, errors.New("pickup date must not be after return date")
	}

	it, err := u.items.GetByItemID(ctx, in.ItemID)
	if err != nil {
		return nil, domainItem.ErrNotFound
	}
	if it.Mode != domainItem.ModeBorrowable {
		return nil, errors.New("item is not borrowable")
	}
	if in.Quantity > it.AvailableStock {
		return nil, domainItem.ErrInsufficientStock
	}

	r := &domainRequest.BorrowRequest{
		RequestID:           id.NewID32(),
		ItemID:              it.ID,
		UserID:              in.UserID,
		Quantity:            in.Quantity,
		Status:              domainRequest.StatusPending,
		ScheduledPickupDate: in.ScheduledPickupDate,
		ScheduledReturnDate: in.ScheduledReturnDate,
		RequestNotes:        in.Notes,
	}
	if err := u.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	return toDTO(r, it.ItemID), nil
}

// Approve debits stock and opens the loan in one transaction: either the
// request flips to approved, stock drops and the transaction row exists, or
// none of it happened.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*ApproveResult, error) {
	var out *ApproveResult

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, in.RequestID)
		if err != nil {
			return domainRequest.ErrNotFound
		}
		if req.Terminal() {
			return domainRequest.ErrStateConflict
		}

		it, err := r.Items.GetByIDForUpdate(ctx, req.ItemID)
		if err != nil {
			return domainItem.ErrNotFound
		}
		if err := u.ledger.DebitAvailable(ctx, r.Items, it, req.Quantity); err != nil {
			return err
		}

		now := u.clk.Now()
		var due *time.Time
		if it.MaxBorrowDays != nil {
			d := now.AddDate(0, 0, *it.MaxBorrowDays)
			due = &d
		}

		txn := &domainBorrow.Transaction{
			TransactionID:     id.NewID32(),
			RequestID:         req.ID,
			ItemID:            it.ID,
			UserID:            req.UserID,
			Quantity:          req.Quantity,
			Status:            domainBorrow.StatusBorrowed,
			BorrowedDate:      now,
			DueDate:           due,
			ConditionOnBorrow: domainBorrow.ConditionGood,
		}
		if err := r.Borrows.Create(ctx, txn); err != nil {
			return err
		}

		req.Status = domainRequest.StatusApproved
		req.ReviewedBy = &in.ReviewerID
		req.ReviewNotes = in.Notes
		req.ReviewedAt = &now
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		out = &ApproveResult{
			Request:       *toDTO(req, it.ItemID),
			TransactionID: txn.TransactionID,
			BorrowedDate:  txn.BorrowedDate,
			DueDate:       txn.DueDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reject requires a non-empty justification. No stock effect.
func (u *Usecase) Reject(ctx context.Context, in ReviewInput) (*RequestDTO, error) {
	if in.Notes == "" {
		return nil, errors.New("rejection requires review notes")
	}
	return u.review(ctx, in.RequestID, func(req *domainRequest.BorrowRequest) {
		now := u.clk.Now()
		req.Status = domainRequest.StatusRejected
		req.ReviewedBy = &in.ReviewerID
		req.ReviewNotes = in.Notes
		req.ReviewedAt = &now
	})
}

// Cancel is requester-initiated; only the owner may cancel, and only while
// pending. No stock effect (nothing was debited yet).
func (u *Usecase) Cancel(ctx context.Context, requestID, actorID string) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			return domainRequest.ErrNotFound
		}
		if req.UserID != actorID {
			return domainRequest.ErrNotOwner
		}
		if req.Terminal() {
			return domainRequest.ErrStateConflict
		}
		req.Status = domainRequest.StatusCancelled
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		dto = toDTO(req, u.publicItemID(ctx, r, req.ItemID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) List(ctx context.Context, f domainRequest.ListFilter) ([]RequestDTO, error) {
	reqs, err := u.requests.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(reqs))
	for i := range reqs {
		out = append(out, *toDTO(&reqs[i], u.lookupItemID(ctx, reqs[i].ItemID)))
	}
	return out, nil
}

func (u *Usecase) review(ctx context.Context, requestID string, apply func(*domainRequest.BorrowRequest)) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			return domainRequest.ErrNotFound
		}
		if req.Terminal() {
			return domainRequest.ErrStateConflict
		}
		apply(req)
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		dto = toDTO(req, u.publicItemID(ctx, r, req.ItemID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) publicItemID(ctx context.Context, r uow.Repos, numericID uint64) string {
	it, err := r.Items.GetByID(ctx, numericID)
	if err != nil {
		return ""
	}
	return it.ItemID
}

func (u *Usecase) lookupItemID(ctx context.Context, numericID uint64) string {
	it, err := u.items.GetByID(ctx, numericID)
	if err != nil {
		return ""
	}
	return it.ItemID
}

func toDTO(r *domainRequest.BorrowRequest, itemID string) *RequestDTO {
	return &RequestDTO{
		RequestID:           r.RequestID,
		ItemID:              itemID,
		UserID:              r.UserID,
		Quantity:            r.Quantity,
		Status:              string(r.Status),
		ScheduledPickupDate: r.ScheduledPickupDate,
		ScheduledReturnDate: r.ScheduledReturnDate,
		RequestNotes:        r.RequestNotes,
		ReviewedBy:          r.ReviewedBy,
		ReviewNotes:         r.ReviewNotes,
		ReviewedAt:          r.ReviewedAt,
		CreatedAt:           r.CreatedAt,
	}
}
