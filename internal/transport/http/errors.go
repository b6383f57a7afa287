package http

import (
	"errors"
	"net/http"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
)

// writeError maps domain sentinel errors to HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the logging middleware carries
// the detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "item not found"})
	case errors.Is(err, domain.ErrItemNoSaleEnd):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "item has no sale end date"})
	case errors.Is(err, domain.ErrInvalidPageSize):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid page size"})
	case errors.Is(err, domain.ErrUnknownTier):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown tier"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
