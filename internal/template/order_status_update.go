package template

import (
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const OrderStatusUpdate = "order_status_update"

var statusMessages = map[domain.DeliveryStatus]string{
	domain.DeliveryStatusPlaced:     "Your order has been received and is being prepared.",
	domain.DeliveryStatusPacked:     "Your order has been packed and is ready for dispatch.",
	domain.DeliveryStatusDispatched: "Your order has been dispatched and is on its way to you!",
	domain.DeliveryStatusInTransit:  "Your order is currently in transit and will arrive soon.",
	domain.DeliveryStatusDelivered:  "Your order has been delivered successfully. Enjoy your purchase!",
}

type OrderStatusUpdateData struct {
	OrderID       string
	OrderDate     string
	CustomerEmail string
	OldStatus     string
	NewStatus     string
	StatusMessage string
	Notes         string
	Total         string
	Currency      string
	CompanyName   string
}

func BuildOrderStatusUpdateData(change domain.StatusChange, companyName string) OrderStatusUpdateData {
	order := change.Order

	return OrderStatusUpdateData{
		OrderID:       order.ID.String(),
		OrderDate:     order.CreatedAt.Format(orderDateLayout),
		CustomerEmail: order.CustomerEmail,
		OldStatus:     StatusDisplay(change.From),
		NewStatus:     StatusDisplay(change.To),
		StatusMessage: statusMessages[change.To],
		Notes:         change.Notes,
		Total:         order.Total.Amount.StringFixed(2),
		Currency:      order.Total.Currency.String(),
		CompanyName:   companyName,
	}
}

// StatusDisplay turns IN_TRANSIT into In Transit.
func StatusDisplay(status domain.DeliveryStatus) string {
	words := strings.ReplaceAll(strings.ToLower(string(status)), "_", " ")
	return cases.Title(language.English).String(words)
}
