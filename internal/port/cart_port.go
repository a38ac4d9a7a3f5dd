package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)

	// LockCart reads the cart and locks its lines until the surrounding transaction ends.
	LockCart(ctx context.Context, ownerID string) (domain.Cart, error)

	// AddItem adds the item quantity to the existing line, if any.
	AddItem(ctx context.Context, ownerID string, item domain.CartItem) error

	// SetItemQuantity removes the line when quantity is not positive.
	SetItemQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) (bool, error)

	DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error)

	ClearCart(ctx context.Context, ownerID string) (int64, error)
}
