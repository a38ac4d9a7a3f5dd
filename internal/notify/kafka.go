package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
	"github.com/segmentio/kafka-go"
)

const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
}

type OrderPlacedEvent struct {
	EventType       string            `json:"event_type"`
	OrderID         string            `json:"order_id"`
	OwnerID         string            `json:"owner_id"`
	Email           string            `json:"email,omitempty"`
	ShippingAddress string            `json:"shipping_address"`
	Items           []OrderPlacedItem `json:"items"`
	TotalAmount     string            `json:"total_amount"`
	Currency        string            `json:"currency"`
	PlacedAt        time.Time         `json:"placed_at"`
}

type OrderPlacedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type OrderStatusChangedEvent struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	OwnerID   string    `json:"owner_id"`
	Email     string    `json:"email,omitempty"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Notes     string    `json:"notes,omitempty"`
	ChangedBy string    `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

type KafkaNotifier struct {
	writer MessageWriter
}

func NewKafkaNotifier(writer MessageWriter) (*KafkaNotifier, error) {
	if writer == nil {
		return nil, errors.New("message writer is nil")
	}

	return &KafkaNotifier{writer: writer}, nil
}

// Notify publishes an order.placed event keyed by order id.
func (n *KafkaNotifier) Notify(ctx context.Context, shopper domain.Shopper, order domain.Order) error {
	payload, err := json.Marshal(mapOrderToEvent(shopper, order))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return n.write(ctx, order.ID.String(), EventTypeOrderPlaced, payload)
}

// NotifyStatusChange publishes an order.status_changed event keyed by order id,
// so it lands on the same partition as the order.placed event.
func (n *KafkaNotifier) NotifyStatusChange(ctx context.Context, change domain.StatusChange) error {
	payload, err := json.Marshal(mapStatusChangeToEvent(change))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return n.write(ctx, change.Order.ID.String(), EventTypeOrderStatusChanged, payload)
}

func (n *KafkaNotifier) write(ctx context.Context, key, eventType string, payload []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return nil
}

func mapStatusChangeToEvent(change domain.StatusChange) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		EventType: EventTypeOrderStatusChanged,
		OrderID:   change.Order.ID.String(),
		OwnerID:   change.Order.OwnerID,
		Email:     change.Order.CustomerEmail,
		OldStatus: string(change.From),
		NewStatus: string(change.To),
		Notes:     change.Notes,
		ChangedBy: lo.FromPtr(change.ChangedBy),
		ChangedAt: change.Order.UpdatedAt.UTC(),
	}
}

func mapOrderToEvent(shopper domain.Shopper, order domain.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventType:       EventTypeOrderPlaced,
		OrderID:         order.ID.String(),
		OwnerID:         order.OwnerID,
		Email:           shopper.Email,
		ShippingAddress: order.ShippingAddress,
		Items: lo.Map(order.Items, func(item domain.OrderItem, _ int) OrderPlacedItem {
			return OrderPlacedItem{
				ProductID: item.ProductID.String(),
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice.Amount.StringFixed(2),
			}
		}),
		TotalAmount: order.Total.Amount.StringFixed(2),
		Currency:    order.Total.Currency.String(),
		PlacedAt:    order.CreatedAt.UTC(),
	}
}
