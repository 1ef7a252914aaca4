package requisition

import (
	"context"
	"errors"
	"time"

	domainItem "stockroom-backend/internal/domain/item"
	domainRequisition "stockroom-backend/internal/domain/requisition"
	"stockroom-backend/internal/domain/uow"
	"stockroom-backend/internal/usecase/stock"
	"stockroom-backend/pkg/clock"
)

type Usecase struct {
	items        domainItem.Repository
	requisitions domainRequisition.Repository
	uow          uow.UnitOfWork
	ledger       *stock.Ledger
	clk          clock.Clock
}

func NewUsecase(items domainItem.Repository, requisitions domainRequisition.Repository, tx uow.UnitOfWork, ledger *stock.Ledger, clk clock.Clock) *Usecase {
	if clk == nil {
		clk = clock.System{}
	}
	return &Usecase{items: items, requisitions: requisitions, uow: tx, ledger: ledger, clk: clk}
}

// Complete marks the issued stock as picked up. No stock effect: both
// counters were already debited at the upstream approval step.
func (u *Usecase) Complete(ctx context.Context, requisitionID, notes string) (*RequisitionDTO, error) {
	var dto *RequisitionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		txn, err := r.Requisitions.GetByRequisitionIDForUpdate(ctx, requisitionID)
		if err != nil {
			return domainRequisition.ErrNotFound
		}
		if txn.Status != domainRequisition.StatusApproved {
			return domainRequisition.ErrStateConflict
		}
		now := u.clk.Now()
		txn.Status = domainRequisition.StatusPickedUp
		txn.CompletionNotes = notes
		txn.PickedUpAt = &now
		if err := r.Requisitions.Save(ctx, txn); err != nil {
			return err
		}
		dto = u.toDTO(ctx, r, txn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Cancel restores both stock counters and closes the requisition in one
// transaction. Once picked up the stock has left inventory and cannot be
// recalled through this operation.
func (u *Usecase) Cancel(ctx context.Context, requisitionID, reason string) (*RequisitionDTO, error) {
	if reason == "" {
		return nil, errors.New("cancellation requires a reason")
	}
	var dto *RequisitionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		txn, err := r.Requisitions.GetByRequisitionIDForUpdate(ctx, requisitionID)
		if err != nil {
			return domainRequisition.ErrNotFound
		}
		if txn.Status != domainRequisition.StatusApproved {
			return domainRequisition.ErrStateConflict
		}

		it, err := r.Items.GetByIDForUpdate(ctx, txn.ItemID)
		if err != nil {
			return domainItem.ErrNotFound
		}
		if err := u.ledger.CreditBoth(ctx, r.Items, it, txn.Quantity); err != nil {
			return err
		}

		now := u.clk.Now()
		txn.Status = domainRequisition.StatusCancelled
		txn.CancelReason = reason
		txn.CancelledAt = &now
		if err := r.Requisitions.Save(ctx, txn); err != nil {
			return err
		}
		dto = toDTOWithItem(txn, it.ItemID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) List(ctx context.Context, f domainRequisition.ListFilter) ([]RequisitionDTO, error) {
	txns, err := u.requisitions.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]RequisitionDTO, 0, len(txns))
	for i := range txns {
		itemID := ""
		if it, err := u.items.GetByID(ctx, txns[i].ItemID); err == nil {
			itemID = it.ItemID
		}
		out = append(out, *toDTOWithItem(&txns[i], itemID))
	}
	return out, nil
}

func (u *Usecase) toDTO(ctx context.Context, r uow.Repos, txn *domainRequisition.Transaction) *RequisitionDTO {
	itemID := ""
	if it, err := r.Items.GetByID(ctx, txn.ItemID); err == nil {
		itemID = it.ItemID
	}
	return toDTOWithItem(txn, itemID)
}

func toDTOWithItem(t *domainRequisition.Transaction, itemID string) *RequisitionDTO {
	return &RequisitionDTO{
		RequisitionID:   t.RequisitionID,
		ItemID:          itemID,
		UserID:          t.UserID,
		Quantity:        t.Quantity,
		Status:          string(t.Status),
		Purpose:         t.Purpose,
		CompletionNotes: t.CompletionNotes,
		PickedUpAt:      t.PickedUpAt,
		CancelReason:    t.CancelReason,
		CancelledAt:     t.CancelledAt,
		CreatedAt:       t.CreatedAt,
	}
}

type RequisitionDTO struct {
	RequisitionID   string     `json:"requisition_id"`
	ItemID          string     `json:"item_id"`
	UserID          string     `json:"user_id"`
	Quantity        int        `json:"quantity"`
	Status          string     `json:"status"`
	Purpose         string     `json:"purpose,omitempty"`
	CompletionNotes string     `json:"completion_notes,omitempty"`
	PickedUpAt      *time.Time `json:"picked_up_at,omitempty"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
