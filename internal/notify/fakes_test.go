package notify_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/wneessen/go-mail"
	"golang.org/x/text/currency"
)

type fakeNotifier struct {
	mu      sync.Mutex
	calls   int
	changes []domain.StatusChange
	err     error
}

func (n *fakeNotifier) Notify(context.Context, domain.Shopper, domain.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls++
	return n.err
}

func (n *fakeNotifier) NotifyStatusChange(_ context.Context, change domain.StatusChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls++
	n.changes = append(n.changes, change)
	return n.err
}

func (n *fakeNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.calls
}

type fakeMailSender struct {
	msgs []*mail.Msg
	err  error
}

func (s *fakeMailSender) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	s.msgs = append(s.msgs, msgs...)
	return s.err
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

// fakeProducts only knows product names.
type fakeProducts struct {
	port.ProductRepository

	names map[uuid.UUID]string
}

func (p fakeProducts) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	name, ok := p.names[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return domain.Product{ID: productID, Name: name}, nil
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.USD}
}

func placedOrder() domain.Order {
	return domain.Order{
		ID:              uuid.New(),
		OwnerID:         "shopper-1",
		Status:          domain.OrderStatusPlaced,
		PaymentStatus:   domain.PaymentStatusPaid,
		ShippingAddress: "1 Main St",
		Total:           usd("25.00"),
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: usd("10.00")},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: usd("5.00")},
		},
	}
}

func statusChange() domain.StatusChange {
	order := placedOrder()
	order.Status = domain.OrderStatusDispatched
	order.CustomerEmail = "jane@example.com"

	return domain.StatusChange{
		Order:     order,
		From:      domain.DeliveryStatusPacked,
		To:        domain.DeliveryStatusDispatched,
		Notes:     "Handed to courier",
		ChangedBy: lo.ToPtr("admin-1"),
	}
}
