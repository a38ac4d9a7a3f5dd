package httpapi

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/ratelimit"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type fakeCheckout struct {
	mu      sync.Mutex
	order   domain.Order
	err     error
	calls   int
	shopper domain.Shopper
	address string
}

func (f *fakeCheckout) Checkout(_ context.Context, shopper domain.Shopper, shippingAddress string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.shopper = shopper
	f.address = shippingAddress

	if f.err != nil {
		return domain.Order{}, f.err
	}
	return f.order, nil
}

func (f *fakeCheckout) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memoryCarts struct {
	mu    sync.Mutex
	items map[string][]domain.CartItem
}

func newMemoryCarts() *memoryCarts {
	return &memoryCarts{items: make(map[string][]domain.CartItem)}
}

func (c *memoryCarts) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Cart{OwnerID: ownerID, Items: slices.Clone(c.items[ownerID])}, nil
}

func (c *memoryCarts) LockCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	return c.GetCart(ctx, ownerID)
}

func (c *memoryCarts) AddItem(_ context.Context, ownerID string, item domain.CartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.items[ownerID] {
		if existing.ProductID == item.ProductID {
			c.items[ownerID][i].Quantity += item.Quantity
			return nil
		}
	}

	item.CreatedAt = time.Now().UTC()
	c.items[ownerID] = append(c.items[ownerID], item)
	return nil
}

func (c *memoryCarts) SetItemQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) (bool, error) {
	if quantity <= 0 {
		return c.DeleteItem(ctx, ownerID, productID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.items[ownerID] {
		if existing.ProductID == productID {
			c.items[ownerID][i].Quantity = quantity
			return true, nil
		}
	}
	return false, nil
}

func (c *memoryCarts) DeleteItem(_ context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items[ownerID])
	c.items[ownerID] = slices.DeleteFunc(c.items[ownerID], func(item domain.CartItem) bool {
		return item.ProductID == productID
	})
	return len(c.items[ownerID]) < before, nil
}

func (c *memoryCarts) ClearCart(_ context.Context, ownerID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items[ownerID])
	delete(c.items, ownerID)
	return int64(n), nil
}

type fakeProducts struct {
	port.ProductRepository
	products map[uuid.UUID]domain.Product
}

func (f fakeProducts) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

type fakeOrders struct {
	port.OrderRepository
	orders map[uuid.UUID]domain.Order
	err    error
}

func (f fakeOrders) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	if f.err != nil {
		return domain.Order{}, f.err
	}
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, repository.ErrNotFound
	}
	return order, nil
}

func (f fakeOrders) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}

	var result []domain.Order
	for _, order := range f.orders {
		if !slices.Contains(filter.OwnerIDs, order.OwnerID) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, order.Status) {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

// fakeDeliveries reads owners from orders.
type fakeDeliveries struct {
	mu         sync.Mutex
	deliveries map[uuid.UUID]domain.Delivery
	orders     map[uuid.UUID]domain.Order
}

func (f *fakeDeliveries) CreateDelivery(_ context.Context, orderID uuid.UUID, entry domain.DeliveryStatusLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deliveries[orderID] = domain.Delivery{
		OrderID: orderID,
		Status:  entry.Status,
		Logs:    []domain.DeliveryStatusLog{entry},
	}
	return nil
}

func (f *fakeDeliveries) GetDelivery(_ context.Context, orderID uuid.UUID) (domain.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delivery, ok := f.deliveries[orderID]
	if !ok {
		return domain.Delivery{}, repository.ErrNotFound
	}
	return delivery, nil
}

func (f *fakeDeliveries) ListDeliveries(_ context.Context, filter domain.DeliveryFilter) ([]domain.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.Delivery
	for orderID, delivery := range f.deliveries {
		if len(filter.OwnerIDs) > 0 && !slices.Contains(filter.OwnerIDs, f.orders[orderID].OwnerID) {
			continue
		}
		result = append(result, delivery)
	}
	return result, nil
}

func (f *fakeDeliveries) UpdateDeliveryStatus(_ context.Context, orderID uuid.UUID, entry domain.DeliveryStatusLog) (domain.DeliveryStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delivery, ok := f.deliveries[orderID]
	if !ok {
		return "", repository.ErrNotFound
	}

	previous := delivery.Status
	if entry.Notes == "" {
		entry.Notes = domain.StatusNotes(previous, entry.Status)
	}

	delivery.Status = entry.Status
	delivery.Logs = append([]domain.DeliveryStatusLog{entry}, delivery.Logs...)
	f.deliveries[orderID] = delivery
	return previous, nil
}

type recordingStatusNotifier struct {
	mu      sync.Mutex
	changes []domain.StatusChange
}

func (n *recordingStatusNotifier) NotifyStatusChange(_ context.Context, change domain.StatusChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.changes = append(n.changes, change)
	return nil
}

func (n *recordingStatusNotifier) received() []domain.StatusChange {
	n.mu.Lock()
	defer n.mu.Unlock()

	return slices.Clone(n.changes)
}

type fakeLimiter struct {
	mu          sync.Mutex
	result      ratelimit.Result
	err         error
	identifiers []string
}

func (f *fakeLimiter) Allow(_ context.Context, identifier string) (ratelimit.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.identifiers = append(f.identifiers, identifier)
	return f.result, f.err
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}

func placedOrder(ownerID string) domain.Order {
	return domain.Order{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Status:          domain.OrderStatusPlaced,
		PaymentStatus:   domain.PaymentStatusPaid,
		ShippingAddress: "1 Main St",
		Total:           usd("25.00"),
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: usd("10.00")},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: usd("5.00")},
		},
		CreatedAt: time.Now().UTC(),
	}
}
