package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainItem "stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/usecase/catalog"
)

type ItemHandler struct{ uc *catalog.Usecase }

func NewItemHandler(uc *catalog.Usecase) *ItemHandler { return &ItemHandler{uc: uc} }

type createItemReq struct {
	BranchID         string `json:"branch_id"         validate:"omitempty,hex32"`
	Mode             string `json:"mode"              validate:"required,oneof=borrowable consumable"`
	ItemType         string `json:"item_type"         validate:"required,oneof=book equipment material other"`
	Title            string `json:"title"             validate:"required"`
	Author           string `json:"author"`
	ISBN             string `json:"isbn"`
	Category         string `json:"category"`
	CoverURL         string `json:"cover_url"         validate:"omitempty,url"`
	TotalStock       int    `json:"total_stock"       validate:"gte=0"`
	AvailableStock   *int   `json:"available_stock"`
	MaxBorrowDays    *int   `json:"max_borrow_days"   validate:"omitempty,gte=0"` // 0 = unlimited (legacy UI contract)
	RenewableCount   *int   `json:"renewable_count"   validate:"omitempty,gte=0"` // 0 = unlimited
	LateFeePerDay    string `json:"late_fee_per_day"  validate:"omitempty,money"`
	RequiresApproval bool   `json:"requires_approval"`
}

// zeroMeansUnlimited maps the legacy "0 = unlimited" client contract to NULL.
func zeroMeansUnlimited(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req createItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	perDay := decimal.Zero
	if req.LateFeePerDay != "" {
		perDay, _ = decimal.NewFromString(req.LateFeePerDay)
	}
	dto, err := h.uc.Create(c.Request().Context(), catalog.CreateItemInput{
		BranchID:         req.BranchID,
		Mode:             domainItem.Mode(req.Mode),
		ItemType:         domainItem.Type(req.ItemType),
		Title:            req.Title,
		Author:           req.Author,
		ISBN:             req.ISBN,
		Category:         req.Category,
		CoverURL:         req.CoverURL,
		TotalStock:       req.TotalStock,
		AvailableStock:   req.AvailableStock,
		MaxBorrowDays:    zeroMeansUnlimited(req.MaxBorrowDays),
		RenewableCount:   zeroMeansUnlimited(req.RenewableCount),
		LateFeePerDay:    perDay,
		RequiresApproval: req.RequiresApproval,
	})
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

type updateItemReq struct {
	Title            *string `json:"title"`
	Author           *string `json:"author"`
	ISBN             *string `json:"isbn"`
	Category         *string `json:"category"`
	CoverURL         *string `json:"cover_url"         validate:"omitempty,url"`
	ItemType         *string `json:"item_type"         validate:"omitempty,oneof=book equipment material other"`
	TotalStock       *int    `json:"total_stock"       validate:"omitempty,gte=0"`
	AvailableStock   *int    `json:"available_stock"   validate:"omitempty,gte=0"`
	MaxBorrowDays    *int    `json:"max_borrow_days"   validate:"omitempty,gte=0"`
	RenewableCount   *int    `json:"renewable_count"   validate:"omitempty,gte=0"`
	LateFeePerDay    *string `json:"late_fee_per_day"  validate:"omitempty,money"`
	RequiresApproval *bool   `json:"requires_approval"`
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	itemID := c.Param("item_id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing item_id path param"})
	}
	var req updateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := catalog.UpdateItemInput{
		Title:            req.Title,
		Author:           req.Author,
		ISBN:             req.ISBN,
		Category:         req.Category,
		CoverURL:         req.CoverURL,
		TotalStock:       req.TotalStock,
		AvailableStock:   req.AvailableStock,
		RequiresApproval: req.RequiresApproval,
	}
	if req.ItemType != nil {
		t := domainItem.Type(*req.ItemType)
		in.ItemType = &t
	}
	if req.MaxBorrowDays != nil {
		v := zeroMeansUnlimited(req.MaxBorrowDays)
		in.MaxBorrowDays = &v
	}
	if req.RenewableCount != nil {
		v := zeroMeansUnlimited(req.RenewableCount)
		in.RenewableCount = &v
	}
	if req.LateFeePerDay != nil {
		d, err := decimal.NewFromString(*req.LateFeePerDay)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid late_fee_per_day"})
		}
		in.LateFeePerDay = &d
	}

	dto, err := h.uc.Update(c.Request().Context(), itemID, in)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	itemID := c.Param("item_id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing item_id path param"})
	}
	if err := h.uc.Delete(c.Request().Context(), itemID); err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("item_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	f := domainItem.ListFilter{
		Search:        c.QueryParam("search"),
		ItemType:      domainItem.Type(c.QueryParam("item_type")),
		Category:      c.QueryParam("category"),
		BranchID:      c.QueryParam("branch_id"),
		AvailableOnly: c.QueryParam("available_only") == "true",
	}
	items, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}
