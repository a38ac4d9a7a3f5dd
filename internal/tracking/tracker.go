// Package tracking moves deliveries through their statuses and tells customers about it.
package tracking

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
)

const defaultNotifyTimeout = 30 * time.Second

type Tracker struct {
	deliveries    port.DeliveryRepository
	orders        port.OrderRepository
	notifier      port.StatusNotifier
	logger        *slog.Logger
	notifyTimeout time.Duration

	wg sync.WaitGroup
}

type Option func(*Tracker)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func WithNotifyTimeout(timeout time.Duration) Option {
	return func(t *Tracker) {
		t.notifyTimeout = timeout
	}
}

// NewTracker creates a tracker, a nil notifier disables status notifications.
func NewTracker(deliveries port.DeliveryRepository, orders port.OrderRepository, notifier port.StatusNotifier, opts ...Option) (*Tracker, error) {
	if deliveries == nil {
		return nil, errors.New("delivery repository is nil")
	}
	if orders == nil {
		return nil, errors.New("order repository is nil")
	}

	t := &Tracker{
		deliveries:    deliveries,
		orders:        orders,
		notifier:      notifier,
		logger:        slog.Default(),
		notifyTimeout: defaultNotifyTimeout,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.notifyTimeout <= 0 {
		return nil, fmt.Errorf("notify timeout[%s] must be positive", t.notifyTimeout)
	}

	return t, nil
}

// UpdateStatus records the entry and returns the delivery with it.
// The customer is notified after commit, and only when the status actually changed.
func (t *Tracker) UpdateStatus(ctx context.Context, orderID uuid.UUID, entry domain.DeliveryStatusLog) (domain.Delivery, error) {
	var d domain.Delivery

	previous, err := t.deliveries.UpdateDeliveryStatus(ctx, orderID, entry)
	if err != nil {
		return d, fmt.Errorf("deliveries.UpdateDeliveryStatus: %w", err)
	}

	t.logger.Info("Delivery status updated",
		"method", "Tracker.UpdateStatus",
		"order_id", orderID,
		"from", previous,
		"to", entry.Status)

	delivery, err := t.deliveries.GetDelivery(ctx, orderID)
	if err != nil {
		return d, fmt.Errorf("deliveries.GetDelivery: %w", err)
	}

	change := domain.StatusChange{
		From:      previous,
		To:        entry.Status,
		Notes:     entry.Notes,
		ChangedBy: entry.CreatedBy,
	}
	// logs are newest first, the stored note includes the generated default
	if len(delivery.Logs) > 0 {
		change.Notes = delivery.Logs[0].Notes
	}

	if change.Changed() {
		t.notifyAsync(ctx, orderID, change)
	}

	return delivery, nil
}

// Close waits for in-flight notifications.
func (t *Tracker) Close() {
	t.wg.Wait()
}

// notifyAsync outlives the request, ctx only contributes its values.
func (t *Tracker) notifyAsync(ctx context.Context, orderID uuid.UUID, change domain.StatusChange) {
	if t.notifier == nil {
		return
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.notifyTimeout)
		defer cancel()

		order, err := t.orders.GetOrder(ctx, orderID)
		if err != nil {
			t.logger.Error("Order lookup for status notification failed",
				"method", "Tracker.notifyAsync",
				"order_id", orderID,
				"error", err)
			return
		}
		change.Order = order

		if err := t.notifier.NotifyStatusChange(ctx, change); err != nil {
			t.logger.Error("Status notification failed",
				"method", "Tracker.notifyAsync",
				"order_id", orderID,
				"status", change.To,
				"error", err)
		}
	}()
}
