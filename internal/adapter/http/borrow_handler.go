package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainBorrow "stockroom-backend/internal/domain/borrow"
	"stockroom-backend/internal/usecase/borrow"
)

type BorrowHandler struct{ uc *borrow.Usecase }

func NewBorrowHandler(uc *borrow.Usecase) *BorrowHandler { return &BorrowHandler{uc: uc} }

func (h *BorrowHandler) RenewBorrow(c echo.Context) error {
	transactionID := c.Param("transaction_id")
	if transactionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing transaction_id path param"})
	}
	dto, err := h.uc.Renew(c.Request().Context(), transactionID)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type checkInReq struct {
	ConditionOnReturn string `json:"condition_on_return" validate:"required,oneof=excellent good fair poor damaged lost"`
	DamageFee         string `json:"damage_fee"          validate:"omitempty,money"`
	Notes             string `json:"notes"`
}

func (h *BorrowHandler) CheckInBorrow(c echo.Context) error {
	transactionID := c.Param("transaction_id")
	if transactionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing transaction_id path param"})
	}
	var req checkInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	damage := decimal.Zero
	if req.DamageFee != "" {
		damage, _ = decimal.NewFromString(req.DamageFee)
	}
	res, err := h.uc.CheckIn(c.Request().Context(), borrow.CheckInInput{
		TransactionID:     transactionID,
		ConditionOnReturn: domainBorrow.Condition(req.ConditionOnReturn),
		DamageFee:         damage,
		Notes:             req.Notes,
	})
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *BorrowHandler) ListTransactions(c echo.Context) error {
	f := borrow.ListInput{
		UserID:      c.QueryParam("user_id"),
		Status:      domainBorrow.Status(c.QueryParam("status")),
		OverdueOnly: c.QueryParam("overdue_only") == "true",
	}
	if v := c.QueryParam("item_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.ItemID = n
		}
	}
	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": out})
}
