// Package httpapi exposes checkout, orders, delivery tracking and the cart over REST.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/storefront/internal/port"
)

const defaultRequestTimeout = 30 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Checkout   CheckoutProcessor
	Carts      port.CartRepository
	Products   port.ProductRepository
	Orders     port.OrderRepository
	Deliveries port.DeliveryRepository
	Tracker    StatusUpdater

	// CheckoutLimiter is optional, checkout is not rate limited without it.
	CheckoutLimiter RateLimiter
	// Database is optional, health reports ok without it.
	Database Pinger

	JWTSecret      []byte
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

func (d Dependencies) validate() error {
	var errs []error

	if d.Checkout == nil {
		errs = append(errs, errors.New("checkout processor is nil"))
	}
	if d.Carts == nil {
		errs = append(errs, errors.New("cart repository is nil"))
	}
	if d.Products == nil {
		errs = append(errs, errors.New("product repository is nil"))
	}
	if d.Orders == nil {
		errs = append(errs, errors.New("order repository is nil"))
	}
	if d.Deliveries == nil {
		errs = append(errs, errors.New("delivery repository is nil"))
	}
	if d.Tracker == nil {
		errs = append(errs, errors.New("delivery tracker is nil"))
	}
	if len(d.JWTSecret) == 0 {
		errs = append(errs, errors.New("jwt secret is empty"))
	}

	return errors.Join(errs...)
}

func NewRouter(deps Dependencies) (http.Handler, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = defaultRequestTimeout
	}

	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.RequestTimeout, deps.Logger)
	orderHandler := NewOrderHandler(deps.Orders, deps.RequestTimeout, deps.Logger)
	deliveryHandler := NewDeliveryHandler(deps.Orders, deps.Deliveries, deps.Tracker, deps.RequestTimeout, deps.Logger)
	cartHandler := NewCartHandler(deps.Carts, deps.Products, deps.RequestTimeout, deps.Logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(deps.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.Database != nil {
			if err := deps.Database.Ping(r.Context()); err != nil {
				deps.Logger.Error("Health check failed", "method", "health", "error", err)
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticate(deps.JWTSecret, deps.Logger))

		r.Group(func(r chi.Router) {
			if deps.CheckoutLimiter != nil {
				r.Use(RateLimit(deps.CheckoutLimiter, deps.Logger))
			}
			r.Post("/checkout", checkoutHandler.Checkout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{order_id}", orderHandler.GetOrder)
			r.Get("/{order_id}/delivery", deliveryHandler.GetDelivery)
			r.With(RequireAdmin).Put("/{order_id}/delivery/status", deliveryHandler.UpdateDeliveryStatus)
		})

		r.Get("/deliveries", deliveryHandler.ListDeliveries)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
	})

	return r, nil
}
