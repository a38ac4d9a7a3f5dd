package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	CountOrders(ctx context.Context, ownerID string) (int64, error)

	// InsertOrder stores the order header and any items it already carries.
	InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error)
	InsertOrderItem(ctx context.Context, orderID uuid.UUID, item domain.OrderItem) error

	UpdateOrderTotal(ctx context.Context, orderID uuid.UUID, total domain.Money) error
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error
}
