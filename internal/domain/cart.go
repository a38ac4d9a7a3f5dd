package domain

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Cart is owned one-to-one by a shopper, a cart without items is the empty cart.
type Cart struct {
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	ProductID uuid.UUID
	Quantity  int

	CreatedAt time.Time
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ProductIDs returns unique product ids in byte order, which is the order postgres sorts uuids in.
func (c Cart) ProductIDs() []uuid.UUID {
	ids := lo.Uniq(lo.Map(c.Items, func(item CartItem, _ int) uuid.UUID {
		return item.ProductID
	}))

	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	return ids
}
