package domain

import "errors"

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusPacked     OrderStatus = "PACKED"
	OrderStatusDispatched OrderStatus = "DISPATCHED"
	OrderStatusInTransit  OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPlaced:     {},
	OrderStatusPacked:     {},
	OrderStatusDispatched: {},
	OrderStatusInTransit:  {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}

type PaymentStatus string

// no payment gateway is integrated, every placed order is recorded as paid
const PaymentStatusPaid PaymentStatus = "PAID"

func ToPaymentStatus(s string) (PaymentStatus, error) {
	if PaymentStatus(s) == PaymentStatusPaid {
		return PaymentStatusPaid, nil
	}

	return "", errors.New("invalid payment status")
}
