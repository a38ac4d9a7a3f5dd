package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderNotifier interface {
	Notify(ctx context.Context, shopper domain.Shopper, order domain.Order) error
}

type StatusNotifier interface {
	// NotifyStatusChange is called after the change is committed.
	NotifyStatusChange(ctx context.Context, change domain.StatusChange) error
}

// Notifier is a channel that reports both placed orders and status changes.
type Notifier interface {
	OrderNotifier
	StatusNotifier
}
