package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	domainRequisition "stockroom-backend/internal/domain/requisition"
	"stockroom-backend/internal/usecase/requisition"
)

type RequisitionHandler struct{ uc *requisition.Usecase }

func NewRequisitionHandler(uc *requisition.Usecase) *RequisitionHandler {
	return &RequisitionHandler{uc: uc}
}

type completeRequisitionReq struct {
	Notes string `json:"notes"`
}

func (h *RequisitionHandler) CompleteRequisition(c echo.Context) error {
	requisitionID := c.Param("requisition_id")
	if requisitionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing requisition_id path param"})
	}
	var req completeRequisitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Complete(c.Request().Context(), requisitionID, req.Notes)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type cancelRequisitionReq struct {
	Reason string `json:"reason" validate:"required"` // cancellation must be justified
}

func (h *RequisitionHandler) CancelRequisition(c echo.Context) error {
	requisitionID := c.Param("requisition_id")
	if requisitionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing requisition_id path param"})
	}
	var req cancelRequisitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Cancel(c.Request().Context(), requisitionID, req.Reason)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequisitionHandler) ListRequisitions(c echo.Context) error {
	f := domainRequisition.ListFilter{
		UserID: c.QueryParam("user_id"),
		Status: domainRequisition.Status(c.QueryParam("status")),
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
	return c.JSON(http.StatusOK, map[string]any{"requisitions": out})
}
