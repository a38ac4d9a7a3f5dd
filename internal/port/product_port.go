package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	// LockProducts locks the rows in id order until the surrounding transaction ends.
	// Unknown ids are skipped.
	LockProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)

	// DecrementStock never drives stock below zero, it returns the remaining stock.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (int, error)

	UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money) error
}
