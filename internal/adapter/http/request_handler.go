package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	domainRequest "stockroom-backend/internal/domain/request"
	"stockroom-backend/internal/usecase/request"
)

type RequestHandler struct{ uc *request.Usecase }

func NewRequestHandler(uc *request.Usecase) *RequestHandler { return &RequestHandler{uc: uc} }

type createBorrowRequestReq struct {
	ItemID     string `json:"item_id"     validate:"required,hex32"`
	UserID     string `json:"user_id"     validate:"required,hex32"`
	Quantity   int    `json:"quantity"    validate:"required,gte=1"`
	PickupDate string `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	ReturnDate string `json:"return_date" validate:"required,datetime=2006-01-02"`
	Notes      string `json:"notes"`
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var req createBorrowRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	pickup, _ := parseDate(req.PickupDate)
	ret, _ := parseDate(req.ReturnDate)

	dto, err := h.uc.Create(c.Request().Context(), request.CreateInput{
		ItemID:              req.ItemID,
		UserID:              req.UserID,
		Quantity:            req.Quantity,
		ScheduledPickupDate: pickup,
		ScheduledReturnDate: ret,
		Notes:               req.Notes,
	})
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

type reviewReq struct {
	ReviewerID string `json:"reviewer_id" validate:"required,hex32"`
	Notes      string `json:"notes"`
}

func (h *RequestHandler) ApproveRequest(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Approve(c.Request().Context(), request.ApproveInput{
		RequestID:  requestID,
		ReviewerID: req.ReviewerID,
		Notes:      req.Notes,
	})
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

type rejectReq struct {
	ReviewerID string `json:"reviewer_id" validate:"required,hex32"`
	Notes      string `json:"notes"       validate:"required"` // rejection must be justified
}

func (h *RequestHandler) RejectRequest(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Reject(c.Request().Context(), request.ReviewInput{
		RequestID:  requestID,
		ReviewerID: req.ReviewerID,
		Notes:      req.Notes,
	})
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

type cancelReq struct {
	UserID string `json:"user_id" validate:"required,hex32"`
}

func (h *RequestHandler) CancelRequest(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Cancel(c.Request().Context(), requestID, req.UserID)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) ListRequests(c echo.Context) error {
	f := domainRequest.ListFilter{
		UserID: c.QueryParam("user_id"),
		Status: domainRequest.Status(c.QueryParam("status")),
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
	return c.JSON(http.StatusOK, map[string]any{"requests": out})
}
