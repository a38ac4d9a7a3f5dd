package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/samber/lo"
)

type OrderHandler struct {
	orders  port.OrderRepository
	timeout time.Duration
	logger  *slog.Logger
}

func NewOrderHandler(orders port.OrderRepository, timeout time.Duration, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
		logger:  logger,
	}
}

// GET /api/v1/orders?status=PLACED
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	filter := domain.OrderFilter{
		OwnerIDs: []string{shopper.ID},
	}

	for _, s := range r.URL.Query()["status"] {
		status, err := domain.ToOrderStatus(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status "+s)
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	orders, err := h.orders.SearchOrders(ctx, filter)
	if err != nil {
		handleDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, lo.Map(orders, func(order domain.Order, _ int) OrderDTO {
		return mapOrderToDTO(order)
	}))
}

// GET /api/v1/orders/{order_id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	order, ok := loadVisibleOrder(ctx, w, r, h.orders, shopper, h.logger)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, mapOrderToDTO(order))
}

// loadVisibleOrder writes the error response itself. Orders of other shoppers are reported as not found.
func loadVisibleOrder(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	orders port.OrderRepository,
	shopper domain.Shopper,
	logger *slog.Logger,
) (domain.Order, bool) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return domain.Order{}, false
	}

	order, err := orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "order_not_found", "order not found")
			return domain.Order{}, false
		}
		handleDomainError(w, logger, err)
		return domain.Order{}, false
	}

	if order.OwnerID != shopper.ID && !shopper.IsAdmin() {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return domain.Order{}, false
	}

	return order, true
}
