package notify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/notify"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerNotifier_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &fakeNotifier{err: errors.New("smtp is down")}

	notifier, err := notify.NewBreakerNotifier("email", next, notify.BreakerSettings{
		ConsecutiveFailures: 3,
		OpenTimeout:         100 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx := t.Context()
	shopper := domain.Shopper{ID: "shopper-1"}
	order := placedOrder()

	for range 3 {
		err := notifier.Notify(ctx, shopper, order)
		require.EqualError(t, err, "breaker[email]: smtp is down")
	}
	assert.Equal(t, gobreaker.StateOpen, notifier.State())

	err = notifier.Notify(ctx, shopper, order)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, next.callCount(), "open breaker must not call the notifier")

	// recovered notifier closes the breaker after the open timeout
	next.mu.Lock()
	next.err = nil
	next.mu.Unlock()

	require.Eventually(t, func() bool {
		return notifier.State() == gobreaker.StateHalfOpen
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, notifier.Notify(ctx, shopper, order))
	assert.Equal(t, gobreaker.StateClosed, notifier.State())
	assert.Equal(t, 4, next.callCount())
}

func TestBreakerNotifier_StatusChangesShareBreaker(t *testing.T) {
	next := &fakeNotifier{err: errors.New("smtp is down")}

	notifier, err := notify.NewBreakerNotifier("email", next, notify.BreakerSettings{
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
	})
	require.NoError(t, err)

	ctx := t.Context()

	require.Error(t, notifier.Notify(ctx, domain.Shopper{ID: "shopper-1"}, placedOrder()))
	require.EqualError(t, notifier.NotifyStatusChange(ctx, statusChange()), "breaker[email]: smtp is down")
	assert.Equal(t, gobreaker.StateOpen, notifier.State())

	err = notifier.NotifyStatusChange(ctx, statusChange())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, next.callCount())
}

func TestNewBreakerNotifier(t *testing.T) {
	_, err := notify.NewBreakerNotifier("email", nil, notify.DefaultBreakerSettings)
	assert.EqualError(t, err, "notifier is nil")

	_, err = notify.NewBreakerNotifier("email", &fakeNotifier{}, notify.BreakerSettings{})
	assert.EqualError(t, err, "consecutive failures must be positive")
}
