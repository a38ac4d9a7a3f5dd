// Package testutil starts the containers integration suites run against.
package testutil

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/db/migrations"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:17-alpine"

// StartPostgres starts a postgres container with all migrations applied.
func StartPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	if err := migrations.Up(connStr); err != nil {
		return container, "", fmt.Errorf("migrations.Up: %w", err)
	}

	return container, connStr, nil
}
