package notify

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/sync/errgroup"
)

// MultiNotifier calls every notifier concurrently, one failure does not stop the others.
type MultiNotifier struct {
	notifiers []port.Notifier
}

func NewMultiNotifier(notifiers ...port.Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (n *MultiNotifier) Notify(ctx context.Context, shopper domain.Shopper, order domain.Order) error {
	return n.fanOut(func(notifier port.Notifier) error {
		return notifier.Notify(ctx, shopper, order)
	})
}

func (n *MultiNotifier) NotifyStatusChange(ctx context.Context, change domain.StatusChange) error {
	return n.fanOut(func(notifier port.Notifier) error {
		return notifier.NotifyStatusChange(ctx, change)
	})
}

func (n *MultiNotifier) fanOut(call func(notifier port.Notifier) error) error {
	errs := make([]error, len(n.notifiers))

	var g errgroup.Group
	for i, notifier := range n.notifiers {
		g.Go(func() error {
			errs[i] = call(notifier)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (n *MultiNotifier) Len() int {
	return len(n.notifiers)
}
