package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before letting a trial request through.
	OpenTimeout time.Duration
}

var DefaultBreakerSettings = BreakerSettings{
	ConsecutiveFailures: 5,
	OpenTimeout:         30 * time.Second,
}

// BreakerNotifier stops calling a failing notifier until OpenTimeout passes.
type BreakerNotifier struct {
	next port.Notifier
	cb   *gobreaker.CircuitBreaker[struct{}]
}

// NewBreakerNotifier shares one breaker between order and status notifications of next.
func NewBreakerNotifier(name string, next port.Notifier, settings BreakerSettings) (*BreakerNotifier, error) {
	if next == nil {
		return nil, errors.New("notifier is nil")
	}
	if settings.ConsecutiveFailures == 0 {
		return nil, errors.New("consecutive failures must be positive")
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Notifier circuit breaker state changed",
				"method", "BreakerNotifier.OnStateChange",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	})

	return &BreakerNotifier{next: next, cb: cb}, nil
}

func (n *BreakerNotifier) Notify(ctx context.Context, shopper domain.Shopper, order domain.Order) error {
	_, err := n.cb.Execute(func() (struct{}, error) {
		return struct{}{}, n.next.Notify(ctx, shopper, order)
	})
	if err != nil {
		return fmt.Errorf("breaker[%s]: %w", n.cb.Name(), err)
	}

	return nil
}

func (n *BreakerNotifier) NotifyStatusChange(ctx context.Context, change domain.StatusChange) error {
	_, err := n.cb.Execute(func() (struct{}, error) {
		return struct{}{}, n.next.NotifyStatusChange(ctx, change)
	})
	if err != nil {
		return fmt.Errorf("breaker[%s]: %w", n.cb.Name(), err)
	}

	return nil
}

func (n *BreakerNotifier) State() gobreaker.State {
	return n.cb.State()
}
