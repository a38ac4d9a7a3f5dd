package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type DeliveryRepository interface {
	// CreateDelivery creates the delivery of an order with its first status log entry.
	CreateDelivery(ctx context.Context, orderID uuid.UUID, entry domain.DeliveryStatusLog) error

	GetDelivery(ctx context.Context, orderID uuid.UUID) (domain.Delivery, error)

	// ListDeliveries returns matching deliveries with their logs, most recently updated first.
	ListDeliveries(ctx context.Context, filter domain.DeliveryFilter) ([]domain.Delivery, error)

	// UpdateDeliveryStatus appends the log entry and mirrors the status onto the order.
	// Empty notes are replaced with domain.StatusNotes. It returns the previous status.
	UpdateDeliveryStatus(ctx context.Context, orderID uuid.UUID, entry domain.DeliveryStatusLog) (domain.DeliveryStatus, error)
}
