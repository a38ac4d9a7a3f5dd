// Package checkout turns a shopper's cart into an order as one unit of work.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

const (
	defaultNotifyTimeout = 30 * time.Second

	orderPlacedNote = "Order placed"
)

type Processor struct {
	uow           port.UnitOfWork
	notifier      port.OrderNotifier
	logger        *slog.Logger
	notifyTimeout time.Duration

	wg sync.WaitGroup
}

type Option func(*Processor)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

func WithNotifyTimeout(timeout time.Duration) Option {
	return func(p *Processor) {
		p.notifyTimeout = timeout
	}
}

// NewProcessor creates a checkout processor, a nil notifier disables notifications.
func NewProcessor(uow port.UnitOfWork, notifier port.OrderNotifier, opts ...Option) (*Processor, error) {
	if uow == nil {
		return nil, errors.New("unit of work is nil")
	}

	p := &Processor{
		uow:           uow,
		notifier:      notifier,
		logger:        slog.Default(),
		notifyTimeout: defaultNotifyTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.notifyTimeout <= 0 {
		return nil, fmt.Errorf("notify timeout[%s] must be positive", p.notifyTimeout)
	}

	return p, nil
}

// Checkout converts the shopper's cart into a PLACED order: stock is decremented,
// unit prices are frozen, the total is computed and the cart is emptied.
// Either all of it is committed or nothing is.
//
// Returned errors are *domain.EmptyCartError, *domain.InsufficientStockError,
// domain.ErrUnauthenticated, domain.ErrProductNotFound, domain.ErrCurrencyMismatch
// or *domain.StorageError.
func (p *Processor) Checkout(ctx context.Context, shopper domain.Shopper, shippingAddress string) (domain.Order, error) {
	var o domain.Order

	if shopper.ID == "" {
		return o, domain.ErrUnauthenticated
	}

	var placed domain.Order

	err := p.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		order, err := placeOrder(ctx, repos, shopper, shippingAddress)
		if err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		p.logger.Warn("Checkout failed",
			"method", "Processor.Checkout",
			"owner_id", shopper.ID,
			"error", err)

		return o, classifyError(err)
	}

	p.logger.Info("Order placed",
		"method", "Processor.Checkout",
		"order_id", placed.ID,
		"owner_id", placed.OwnerID,
		"items", len(placed.Items),
		"total", placed.Total.String())

	p.notifyAsync(ctx, shopper, placed)

	return placed, nil
}

// Close waits for in-flight notifications.
func (p *Processor) Close() {
	p.wg.Wait()
}

func placeOrder(ctx context.Context, repos port.Repositories, shopper domain.Shopper, shippingAddress string) (domain.Order, error) {
	var o domain.Order

	ownerID := shopper.ID

	// concurrent checkouts of the same shopper queue here, later ones find the cart emptied
	cart, err := repos.Carts.LockCart(ctx, ownerID)
	if err != nil {
		return o, fmt.Errorf("repos.Carts.LockCart: %w", err)
	}

	if cart.IsEmpty() {
		return o, &domain.EmptyCartError{OwnerID: ownerID}
	}

	lockedProducts, err := repos.Products.LockProducts(ctx, cart.ProductIDs())
	if err != nil {
		return o, fmt.Errorf("repos.Products.LockProducts: %w", err)
	}

	products := lo.KeyBy(lockedProducts, func(p domain.Product) uuid.UUID {
		return p.ID
	})

	for _, item := range cart.Items {
		if _, ok := products[item.ProductID]; !ok {
			return o, fmt.Errorf("product[%s]: %w", item.ProductID, domain.ErrProductNotFound)
		}
	}

	total := domain.ZeroMoney(products[cart.Items[0].ProductID].Price.Currency)

	orderID, err := repos.Orders.InsertOrder(ctx, domain.Order{
		OwnerID:         ownerID,
		Status:          domain.OrderStatusPlaced,
		PaymentStatus:   domain.PaymentStatusPaid,
		ShippingAddress: shippingAddress,
		CustomerEmail:   shopper.Email,
		Total:           total,
	})
	if err != nil {
		return o, fmt.Errorf("repos.Orders.InsertOrder: %w", err)
	}

	for _, item := range cart.Items {
		product := products[item.ProductID]

		if item.Quantity > product.StockQuantity {
			return o, &domain.InsufficientStockError{
				ProductID: product.ID,
				Requested: item.Quantity,
				Available: product.StockQuantity,
			}
		}

		remaining, err := repos.Products.DecrementStock(ctx, product.ID, item.Quantity)
		if err != nil {
			return o, fmt.Errorf("repos.Products.DecrementStock: %w", err)
		}
		product.StockQuantity = remaining
		products[item.ProductID] = product

		orderItem := domain.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}

		if err := repos.Orders.InsertOrderItem(ctx, orderID, orderItem); err != nil {
			return o, fmt.Errorf("repos.Orders.InsertOrderItem: %w", err)
		}

		total, err = total.Add(orderItem.Subtotal())
		if err != nil {
			return o, fmt.Errorf("total.Add: %w", err)
		}
	}

	if err := repos.Orders.UpdateOrderTotal(ctx, orderID, total); err != nil {
		return o, fmt.Errorf("repos.Orders.UpdateOrderTotal: %w", err)
	}

	if err := repos.Deliveries.CreateDelivery(ctx, orderID, domain.DeliveryStatusLog{
		Status: domain.DeliveryStatusPlaced,
		Notes:  orderPlacedNote,
	}); err != nil {
		return o, fmt.Errorf("repos.Deliveries.CreateDelivery: %w", err)
	}

	cleared, err := repos.Carts.ClearCart(ctx, ownerID)
	if err != nil {
		return o, fmt.Errorf("repos.Carts.ClearCart: %w", err)
	}
	if cleared != int64(len(cart.Items)) {
		return o, fmt.Errorf("cart of owner[%s] changed during checkout: %d lines locked, %d cleared", ownerID, len(cart.Items), cleared)
	}

	order, err := repos.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return o, fmt.Errorf("repos.Orders.GetOrder: %w", err)
	}

	return order, nil
}

// classifyError keeps business errors as they are and wraps the rest into *domain.StorageError.
func classifyError(err error) error {
	var emptyCartErr *domain.EmptyCartError
	if errors.As(err, &emptyCartErr) {
		return emptyCartErr
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return stockErr
	}

	if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrCurrencyMismatch) {
		return err
	}

	return &domain.StorageError{Op: "checkout", Err: err}
}

// notifyAsync outlives the request, ctx only contributes its values.
func (p *Processor) notifyAsync(ctx context.Context, shopper domain.Shopper, order domain.Order) {
	if p.notifier == nil {
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.notifyTimeout)
		defer cancel()

		if err := p.notifier.Notify(ctx, shopper, order); err != nil {
			p.logger.Error("Order notification failed",
				"method", "Processor.notifyAsync",
				"order_id", order.ID,
				"owner_id", order.OwnerID,
				"error", err)
		}
	}()
}
