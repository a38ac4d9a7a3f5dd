package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
)

type CheckoutProcessor interface {
	Checkout(ctx context.Context, shopper domain.Shopper, shippingAddress string) (domain.Order, error)
}

type CheckoutHandler struct {
	processor CheckoutProcessor
	timeout   time.Duration
	logger    *slog.Logger
}

func NewCheckoutHandler(processor CheckoutProcessor, timeout time.Duration, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		processor: processor,
		timeout:   timeout,
		logger:    logger,
	}
}

type CheckoutRequestDTO struct {
	ShippingAddress string `json:"shipping_address"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	// the body is optional, an absent address is stored as empty
	var req CheckoutRequestDTO
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.processor.Checkout(ctx, shopper, req.ShippingAddress)
	if err != nil {
		handleDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapOrderToDTO(order))
}
