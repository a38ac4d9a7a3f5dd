package domain

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID              uuid.UUID
	OwnerID         string
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	ShippingAddress string
	// CustomerEmail is where status updates are sent, empty when the shopper had none.
	CustomerEmail string
	Total         Money
	Items         []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is never mutated after creation, UnitPrice is the product price at checkout time.
type OrderItem struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice Money

	CreatedAt time.Time
}

func (i OrderItem) Subtotal() Money {
	return i.UnitPrice.Mul(i.Quantity)
}

// ItemsTotal sums quantity x unit price over the order items.
func (o Order) ItemsTotal() (Money, error) {
	total := ZeroMoney(o.Total.Currency)

	for _, item := range o.Items {
		var err error
		total, err = total.Add(item.Subtotal())
		if err != nil {
			return Money{}, err
		}
	}

	return total, nil
}
