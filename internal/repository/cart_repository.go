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
	"github.com/samber/lo"
)

type cartRepository struct {
	q *db.Queries
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q: db.New(pool),
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q: db.New(tx),
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	var c domain.Cart

	if ownerID == "" {
		return c, errors.New("ownerID is empty")
	}

	dbCartItems, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return c, fmt.Errorf("q.GetCart: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   lo.Map(dbCartItems, mapGetCartRowToDomain),
	}, nil
}

// LockCart reads the cart lines and locks them until the surrounding transaction ends.
func (r *cartRepository) LockCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	var c domain.Cart

	if ownerID == "" {
		return c, errors.New("ownerID is empty")
	}

	dbCartItems, err := r.q.LockCart(ctx, ownerID)
	if err != nil {
		return c, fmt.Errorf("q.LockCart: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items: lo.Map(dbCartItems, func(row db.LockCartRow, i int) domain.CartItem {
			return mapGetCartRowToDomain(db.GetCartRow(row), i)
		}),
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID string, item domain.CartItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity[%d] must be positive", item.Quantity)
	}

	quantity, err := toInt32("quantity", item.Quantity)
	if err != nil {
		return err
	}

	arg := db.AddItemParams{
		OwnerID:   ownerID,
		ProductID: item.ProductID,
		Quantity:  quantity,
	}

	if err := r.q.AddItem(ctx, arg); err != nil {
		return fmt.Errorf("q.AddItem: %w", err)
	}

	return nil
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) (bool, error) {
	if quantity <= 0 {
		return r.DeleteItem(ctx, ownerID, productID)
	}

	dbQuantity, err := toInt32("quantity", quantity)
	if err != nil {
		return false, err
	}

	arg := db.SetItemQuantityParams{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  dbQuantity,
	}

	rowsAffected, err := r.q.SetItemQuantity(ctx, arg)
	if err != nil {
		return false, fmt.Errorf("q.SetItemQuantity: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	arg := db.DeleteItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
	}

	rowsAffected, err := r.q.DeleteItem(ctx, arg)
	if err != nil {
		return false, fmt.Errorf("q.DeleteItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, ownerID string) (int64, error) {
	rowsAffected, err := r.q.ClearCart(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("q.ClearCart: %w", err)
	}

	return rowsAffected, nil
}

func mapGetCartRowToDomain(row db.GetCartRow, _ int) domain.CartItem {
	return domain.CartItem{
		ProductID: row.ProductID,
		Quantity:  int(row.Quantity),
		CreatedAt: row.CreatedAt,
	}
}
