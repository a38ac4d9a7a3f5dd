package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type StatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID uuid.UUID, entry domain.DeliveryStatusLog) (domain.Delivery, error)
}

type DeliveryHandler struct {
	orders     port.OrderRepository
	deliveries port.DeliveryRepository
	tracker    StatusUpdater
	timeout    time.Duration
	logger     *slog.Logger
}

func NewDeliveryHandler(
	orders port.OrderRepository,
	deliveries port.DeliveryRepository,
	tracker StatusUpdater,
	timeout time.Duration,
	logger *slog.Logger,
) *DeliveryHandler {
	return &DeliveryHandler{
		orders:     orders,
		deliveries: deliveries,
		tracker:    tracker,
		timeout:    timeout,
		logger:     logger,
	}
}

type UpdateDeliveryStatusRequestDTO struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// GET /api/v1/deliveries, admins see every delivery
func (h *DeliveryHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var filter domain.DeliveryFilter
	if !shopper.IsAdmin() {
		filter.OwnerIDs = []string{shopper.ID}
	}

	deliveries, err := h.deliveries.ListDeliveries(ctx, filter)
	if err != nil {
		handleDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, lo.Map(deliveries, func(delivery domain.Delivery, _ int) DeliveryDTO {
		return mapDeliveryToDTO(delivery)
	}))
}

// GET /api/v1/orders/{order_id}/delivery
func (h *DeliveryHandler) GetDelivery(w http.ResponseWriter, r *http.Request) {
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

	delivery, err := h.deliveries.GetDelivery(ctx, order.ID)
	if err != nil {
		handleDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapDeliveryToDTO(delivery))
}

// PUT /api/v1/orders/{order_id}/delivery/status, admin only
func (h *DeliveryHandler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	var req UpdateDeliveryStatusRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status, err := domain.ToDeliveryStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown delivery status "+req.Status)
		return
	}

	entry := domain.DeliveryStatusLog{
		Status:    status,
		Notes:     req.Notes,
		CreatedBy: lo.ToPtr(shopper.ID),
	}

	delivery, err := h.tracker.UpdateStatus(ctx, orderID, entry)
	if err != nil {
		handleDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("Delivery status updated",
		"method", "UpdateDeliveryStatus",
		"order_id", orderID,
		"status", status,
		"updated_by", shopper.ID)

	respondJSON(w, http.StatusOK, mapDeliveryToDTO(delivery))
}
