package template

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
)

const (
	orderDateLayout    = "January 02, 2006 at 03:04 PM"
	addressNotProvided = "Not provided"
)

type OrderConfirmationData struct {
	OrderID         string
	OrderDate       string
	OrderStatus     string
	CustomerEmail   string
	ShippingAddress string
	Items           []OrderConfirmationItem
	Total           string
	Currency        string
	CompanyName     string
}

type OrderConfirmationItem struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// BuildOrderConfirmationData falls back to the product id for products missing in productNames.
func BuildOrderConfirmationData(
	order domain.Order,
	shopper domain.Shopper,
	productNames map[uuid.UUID]string,
	companyName string,
) OrderConfirmationData {
	items := lo.Map(order.Items, func(item domain.OrderItem, _ int) OrderConfirmationItem {
		name, ok := productNames[item.ProductID]
		if !ok {
			name = item.ProductID.String()
		}

		return OrderConfirmationItem{
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount.StringFixed(2),
			Subtotal:    item.Subtotal().Amount.StringFixed(2),
		}
	})

	return OrderConfirmationData{
		OrderID:         order.ID.String(),
		OrderDate:       order.CreatedAt.Format(orderDateLayout),
		OrderStatus:     string(order.Status),
		CustomerEmail:   shopper.Email,
		ShippingAddress: lo.CoalesceOrEmpty(order.ShippingAddress, addressNotProvided),
		Items:           items,
		Total:           order.Total.Amount.StringFixed(2),
		Currency:        order.Total.Currency.String(),
		CompanyName:     companyName,
	}
}
