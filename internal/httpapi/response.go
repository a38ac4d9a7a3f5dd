package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "method", "respondJSON", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// handleDomainError maps domain and storage errors to HTTP responses.
func handleDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		emptyCartErr *domain.EmptyCartError
		stockErr     *domain.InsufficientStockError
		storageErr   *domain.StorageError
	)

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
	case errors.As(err, &emptyCartErr):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.As(err, &stockErr):
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error: "insufficient stock",
			Code:  "insufficient_stock",
			Details: InsufficientStockDTO{
				ProductID: stockErr.ProductID.String(),
				Requested: stockErr.Requested,
				Available: stockErr.Available,
			},
		})
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, domain.ErrCurrencyMismatch):
		respondError(w, http.StatusUnprocessableEntity, "currency_mismatch", "cart mixes currencies")
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.As(err, &storageErr):
		logger.Error("Storage failure", "method", "handleDomainError", "op", storageErr.Op, "error", err)
		respondError(w, http.StatusInternalServerError, "storage_error", "internal server error")
	default:
		logger.Error("Unexpected failure", "method", "handleDomainError", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
