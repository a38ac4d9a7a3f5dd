package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryStatusPlaced     DeliveryStatus = "PLACED"
	DeliveryStatusPacked     DeliveryStatus = "PACKED"
	DeliveryStatusDispatched DeliveryStatus = "DISPATCHED"
	DeliveryStatusInTransit  DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered  DeliveryStatus = "DELIVERED"
)

var validDeliveryStatuses = map[DeliveryStatus]struct{}{
	DeliveryStatusPlaced:     {},
	DeliveryStatusPacked:     {},
	DeliveryStatusDispatched: {},
	DeliveryStatusInTransit:  {},
	DeliveryStatusDelivered:  {},
}

func ToDeliveryStatus(s string) (DeliveryStatus, error) {
	status := DeliveryStatus(s)
	if _, ok := validDeliveryStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid delivery status")
}

// OrderStatus is the order status a delivery status is mirrored to.
func (s DeliveryStatus) OrderStatus() OrderStatus {
	return OrderStatus(s)
}

type Delivery struct {
	OrderID           uuid.UUID
	Status            DeliveryStatus
	EstimatedDelivery *time.Time
	Logs              []DeliveryStatusLog

	UpdatedAt time.Time
}

// DeliveryStatusLog is an append-only audit entry, CreatedBy is nil for system entries.
type DeliveryStatusLog struct {
	ID        int64
	Status    DeliveryStatus
	Notes     string
	CreatedBy *string

	CreatedAt time.Time
}

// DeliveryFilter without owner ids matches every delivery.
type DeliveryFilter struct {
	OwnerIDs []string
}

// StatusNotes is the log note recorded when a status change carries none.
func StatusNotes(from, to DeliveryStatus) string {
	return fmt.Sprintf("Status changed from %s to %s", from, to)
}

// StatusChange is a committed delivery status transition, Order reflects the new status.
type StatusChange struct {
	Order     Order
	From      DeliveryStatus
	To        DeliveryStatus
	Notes     string
	ChangedBy *string
}

func (c StatusChange) Changed() bool {
	return c.From != c.To
}
