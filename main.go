package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/db/migrations"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/notify"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/ratelimit"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/template"
	"github.com/nikolayk812/storefront/internal/tracking"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Service stopped", "method", "main", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	ctx := context.Background()

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close redis client", "method", "run", "error", err)
		}
	}()

	limiter, err := ratelimit.NewFixedWindow(redisClient, "ratelimit:checkout", cfg.RateLimitRequests, cfg.RateLimitWindow)
	if err != nil {
		return fmt.Errorf("ratelimit.NewFixedWindow: %w", err)
	}

	products := repository.NewProduct(pool)

	notifier, kafkaWriter, err := buildNotifier(cfg, products)
	if err != nil {
		return fmt.Errorf("buildNotifier: %w", err)
	}
	if kafkaWriter != nil {
		defer func() {
			if err := kafkaWriter.Close(); err != nil {
				logger.Error("Failed to close kafka writer", "method", "run", "error", err)
			}
		}()
	}

	processor, err := checkout.NewProcessor(repository.NewUnitOfWork(pool), notifier,
		checkout.WithLogger(logger),
		checkout.WithNotifyTimeout(cfg.NotifyTimeout))
	if err != nil {
		return fmt.Errorf("checkout.NewProcessor: %w", err)
	}
	// runs before the writer and pool are closed
	defer processor.Close()

	orders := repository.NewOrder(pool)
	deliveries := repository.NewDelivery(pool)

	tracker, err := tracking.NewTracker(deliveries, orders, notifier,
		tracking.WithLogger(logger),
		tracking.WithNotifyTimeout(cfg.NotifyTimeout))
	if err != nil {
		return fmt.Errorf("tracking.NewTracker: %w", err)
	}
	defer tracker.Close()

	router, err := httpapi.NewRouter(httpapi.Dependencies{
		Checkout:        processor,
		Carts:           repository.NewCart(pool),
		Products:        products,
		Orders:          orders,
		Deliveries:      deliveries,
		Tracker:         tracker,
		CheckoutLimiter: limiter,
		Database:        pool,
		JWTSecret:       []byte(cfg.JWTSecret),
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("httpapi.NewRouter: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 40 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "method", "run", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Shutting down", "method", "run", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	logger.Info("Server exited", "method", "run")

	return nil
}

// buildNotifier wires the enabled channels, each behind its own circuit breaker.
// A nil notifier is returned when no channel is configured.
func buildNotifier(cfg config.Config, products port.ProductRepository) (port.Notifier, *kafka.Writer, error) {
	var (
		notifiers []port.Notifier
		writer    *kafka.Writer
	)

	if cfg.EmailEnabled() {
		client, err := notify.NewSMTPClient(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewSMTPClient: %w", err)
		}

		engine, err := template.NewEngine()
		if err != nil {
			return nil, nil, fmt.Errorf("template.NewEngine: %w", err)
		}

		email, err := notify.NewEmailNotifier(client, engine, products, cfg.MailFrom, cfg.CompanyName)
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewEmailNotifier: %w", err)
		}

		breaker, err := notify.NewBreakerNotifier("email", email, notify.DefaultBreakerSettings)
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewBreakerNotifier[email]: %w", err)
		}

		notifiers = append(notifiers, breaker)
	}

	if cfg.KafkaEnabled() {
		writer = notify.NewKafkaWriter(cfg.KafkaTopic, cfg.KafkaBrokers...)

		events, err := notify.NewKafkaNotifier(writer)
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewKafkaNotifier: %w", err)
		}

		breaker, err := notify.NewBreakerNotifier("kafka", events, notify.DefaultBreakerSettings)
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewBreakerNotifier[kafka]: %w", err)
		}

		notifiers = append(notifiers, breaker)
	}

	if len(notifiers) == 0 {
		return nil, nil, nil
	}

	return notify.NewMultiNotifier(notifiers...), writer, nil
}
