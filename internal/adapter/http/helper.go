package http

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"stockroom-backend/internal/domain/borrow"
	"stockroom-backend/internal/domain/item"
	"stockroom-backend/internal/domain/request"
	"stockroom-backend/internal/domain/requisition"
)

// errStatus maps domain errors to HTTP status codes. Unmatched errors are
// treated as bad input: validation happens before any mutation.
func errStatus(err error) int {
	switch {
	case errors.Is(err, item.ErrNotFound),
		errors.Is(err, request.ErrNotFound),
		errors.Is(err, borrow.ErrNotFound),
		errors.Is(err, requisition.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, item.ErrInsufficientStock),
		errors.Is(err, item.ErrInUse),
		errors.Is(err, request.ErrStateConflict),
		errors.Is(err, borrow.ErrStateConflict),
		errors.Is(err, borrow.ErrRenewalLimit),
		errors.Is(err, requisition.ErrStateConflict):
		return http.StatusConflict
	case errors.Is(err, request.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, item.ErrStockInvariant):
		// invariant breach is a bug, fail loudly
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
