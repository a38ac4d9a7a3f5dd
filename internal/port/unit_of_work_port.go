package port

import "context"

// Repositories are bound to a single transaction.
type Repositories struct {
	Carts      CartRepository
	Products   ProductRepository
	Orders     OrderRepository
	Deliveries DeliveryRepository
}

type UnitOfWork interface {
	// Do commits when fn returns nil and rolls back otherwise.
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
