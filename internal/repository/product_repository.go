package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q: db.New(tx),
	}
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	if product.StockQuantity < 0 {
		return uuid.Nil, fmt.Errorf("stock quantity[%d] is negative", product.StockQuantity)
	}

	stock, err := toInt32("stock quantity", product.StockQuantity)
	if err != nil {
		return uuid.Nil, err
	}

	productID, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		Name:          product.Name,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		StockQuantity: stock,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.CreateProduct: %w", err)
	}

	return productID, nil
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetProduct: %w", domain.ErrProductNotFound)
		}
		return p, fmt.Errorf("q.GetProduct: %w", err)
	}

	p, err = mapDBProductToDomain(dbProduct)
	if err != nil {
		return p, fmt.Errorf("mapDBProductToDomain: %w", err)
	}

	return p, nil
}

func (r *productRepository) LockProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	dbProducts, err := r.q.LockProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("q.LockProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(dbProducts))
	for _, dbProduct := range dbProducts {
		p, err := mapDBProductToDomain(dbProduct)
		if err != nil {
			return nil, fmt.Errorf("mapDBProductToDomain: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("quantity[%d] must be positive", quantity)
	}

	dbQuantity, err := toInt32("quantity", quantity)
	if err != nil {
		return 0, err
	}

	remaining, err := r.q.DecrementStock(ctx, db.DecrementStockParams{
		Quantity: dbQuantity,
		ID:       productID,
	})
	if err == nil {
		return int(remaining), nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("q.DecrementStock: %w", err)
	}

	// no row matched: either the product is gone or its stock is too low
	p, err := r.GetProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("r.GetProduct: %w", err)
	}

	return 0, &domain.InsufficientStockError{
		ProductID: productID,
		Requested: quantity,
		Available: p.StockQuantity,
	}
}

func (r *productRepository) UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money) error {
	if price.Amount.IsNegative() {
		return fmt.Errorf("price[%s] is negative", price)
	}

	cmdTag, err := r.q.UpdateProductPrice(ctx, db.UpdateProductPriceParams{
		ID:            productID,
		PriceAmount:   price.Amount,
		PriceCurrency: price.Currency.String(),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateProductPrice: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateProductPrice: %w", domain.ErrProductNotFound)
	}

	return nil
}

func mapDBProductToDomain(dbProduct db.Product) (domain.Product, error) {
	price, err := mapMoneyToDomain(dbProduct.PriceAmount, dbProduct.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapMoneyToDomain: %w", err)
	}

	return domain.Product{
		ID:            dbProduct.ID,
		Name:          dbProduct.Name,
		Price:         price,
		StockQuantity: int(dbProduct.StockQuantity),
		CreatedAt:     dbProduct.CreatedAt,
		UpdatedAt:     dbProduct.UpdatedAt,
	}, nil
}
