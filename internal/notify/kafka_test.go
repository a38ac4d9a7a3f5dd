package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/notify"
	"github.com/nikolayk812/storefront/internal/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaNotifier_Notify(t *testing.T) {
	writer := &fakeWriter{}

	notifier, err := notify.NewKafkaNotifier(writer)
	require.NoError(t, err)

	order := placedOrder()
	order.CreatedAt = time.Date(2025, time.March, 7, 14, 5, 0, 0, time.UTC)
	shopper := domain.Shopper{ID: order.OwnerID, Email: "jane@example.com"}

	require.NoError(t, notifier.Notify(t.Context(), shopper, order))
	require.Len(t, writer.msgs, 1)

	msg := writer.msgs[0]
	assert.Equal(t, order.ID.String(), string(msg.Key))
	assert.Equal(t, []kafka.Header{{Key: "event_type", Value: []byte(notify.EventTypeOrderPlaced)}}, msg.Headers)

	var event notify.OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))

	assert.Equal(t, notify.EventTypeOrderPlaced, event.EventType)
	assert.Equal(t, order.ID.String(), event.OrderID)
	assert.Equal(t, "jane@example.com", event.Email)
	assert.Equal(t, "25.00", event.TotalAmount)
	assert.Equal(t, "USD", event.Currency)
	assert.True(t, order.CreatedAt.Equal(event.PlacedAt))
	require.Len(t, event.Items, 2)
	assert.Equal(t, "10.00", event.Items[0].UnitPrice)
	assert.Equal(t, 2, event.Items[0].Quantity)
}

func TestKafkaNotifier_NotifyStatusChange(t *testing.T) {
	writer := &fakeWriter{}

	notifier, err := notify.NewKafkaNotifier(writer)
	require.NoError(t, err)

	change := statusChange()
	change.Order.UpdatedAt = time.Date(2025, time.March, 8, 9, 30, 0, 0, time.UTC)

	require.NoError(t, notifier.NotifyStatusChange(t.Context(), change))
	require.Len(t, writer.msgs, 1)

	msg := writer.msgs[0]
	assert.Equal(t, change.Order.ID.String(), string(msg.Key))
	assert.Equal(t, []kafka.Header{{Key: "event_type", Value: []byte(notify.EventTypeOrderStatusChanged)}}, msg.Headers)

	var event notify.OrderStatusChangedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))

	assert.Equal(t, notify.OrderStatusChangedEvent{
		EventType: notify.EventTypeOrderStatusChanged,
		OrderID:   change.Order.ID.String(),
		OwnerID:   change.Order.OwnerID,
		Email:     "jane@example.com",
		OldStatus: "PACKED",
		NewStatus: "DISPATCHED",
		Notes:     "Handed to courier",
		ChangedBy: "admin-1",
		ChangedAt: change.Order.UpdatedAt,
	}, event)
}

func TestKafkaNotifier_WriteFailure(t *testing.T) {
	notifier, err := notify.NewKafkaNotifier(&fakeWriter{err: errors.New("leader not available")})
	require.NoError(t, err)

	err = notifier.Notify(t.Context(), domain.Shopper{ID: "shopper-1"}, placedOrder())
	assert.EqualError(t, err, "writer.WriteMessages: leader not available")
}

func TestKafkaNotifier_Broker(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a kafka container")
	}

	ctx := t.Context()

	container, broker, err := testutil.StartKafka(ctx)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, container.Terminate(ctx))
	}()

	const topic = "orders"

	writer := notify.NewKafkaWriter(topic, broker)
	defer writer.Close()

	notifier, err := notify.NewKafkaNotifier(writer)
	require.NoError(t, err)

	order := placedOrder()

	// the first write may race topic auto creation
	require.Eventually(t, func() bool {
		return notifier.Notify(ctx, domain.Shopper{ID: order.OwnerID}, order) == nil
	}, 30*time.Second, time.Second)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), string(msg.Key))

	var event notify.OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, order.ID.String(), event.OrderID)
}
