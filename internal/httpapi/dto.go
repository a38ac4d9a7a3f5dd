package httpapi

import (
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

type MoneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type OrderItemDTO struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice MoneyDTO `json:"unit_price"`
	Subtotal  MoneyDTO `json:"subtotal"`
}

type OrderDTO struct {
	ID              string         `json:"id"`
	Status          string         `json:"status"`
	PaymentStatus   string         `json:"payment_status"`
	ShippingAddress string         `json:"shipping_address"`
	Total           MoneyDTO       `json:"total"`
	Items           []OrderItemDTO `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
}

type CartItemDTO struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type CartDTO struct {
	Items      []CartItemDTO `json:"items"`
	TotalItems int           `json:"total_items"`
}

type DeliveryLogDTO struct {
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DeliveryDTO struct {
	OrderID           string           `json:"order_id"`
	Status            string           `json:"status"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery,omitempty"`
	Logs              []DeliveryLogDTO `json:"logs"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type InsufficientStockDTO struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func mapMoneyToDTO(m domain.Money) MoneyDTO {
	return MoneyDTO{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
	}
}

func mapOrderToDTO(order domain.Order) OrderDTO {
	return OrderDTO{
		ID:              order.ID.String(),
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		ShippingAddress: order.ShippingAddress,
		Total:           mapMoneyToDTO(order.Total),
		Items: lo.Map(order.Items, func(item domain.OrderItem, _ int) OrderItemDTO {
			return OrderItemDTO{
				ProductID: item.ProductID.String(),
				Quantity:  item.Quantity,
				UnitPrice: mapMoneyToDTO(item.UnitPrice),
				Subtotal:  mapMoneyToDTO(item.Subtotal()),
			}
		}),
		CreatedAt: order.CreatedAt,
	}
}

func mapCartToDTO(cart domain.Cart) CartDTO {
	items := lo.Map(cart.Items, func(item domain.CartItem, _ int) CartItemDTO {
		return CartItemDTO{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			AddedAt:   item.CreatedAt,
		}
	})

	return CartDTO{
		Items: items,
		TotalItems: lo.SumBy(cart.Items, func(item domain.CartItem) int {
			return item.Quantity
		}),
	}
}

func mapDeliveryToDTO(delivery domain.Delivery) DeliveryDTO {
	return DeliveryDTO{
		OrderID:           delivery.OrderID.String(),
		Status:            string(delivery.Status),
		EstimatedDelivery: delivery.EstimatedDelivery,
		Logs: lo.Map(delivery.Logs, func(entry domain.DeliveryStatusLog, _ int) DeliveryLogDTO {
			return DeliveryLogDTO{
				Status:    string(entry.Status),
				Notes:     entry.Notes,
				CreatedBy: entry.CreatedBy,
				CreatedAt: entry.CreatedAt,
			}
		}),
		UpdatedAt: delivery.UpdatedAt,
	}
}
