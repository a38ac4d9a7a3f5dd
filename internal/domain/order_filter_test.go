package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestOrderFilter_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		filter  OrderFilter
		wantErr string
	}{
		{
			name:    "empty",
			wantErr: "all fields are empty",
		},
		{
			name:   "owner only",
			filter: OrderFilter{OwnerIDs: []string{"owner"}},
		},
		{
			name:   "ids and statuses",
			filter: OrderFilter{IDs: []uuid.UUID{uuid.New()}, Statuses: []OrderStatus{OrderStatusPlaced, OrderStatusDelivered}},
		},
		{
			name:    "unknown status",
			filter:  OrderFilter{Statuses: []OrderStatus{"LOST"}},
			wantErr: "status[LOST]: invalid order status",
		},
		{
			name:    "empty time range",
			filter:  OrderFilter{CreatedAt: &TimeRange{}},
			wantErr: "createdAt: both Before and After are nil",
		},
		{
			name: "inverted time range",
			filter: OrderFilter{CreatedAt: &TimeRange{
				Before: lo.ToPtr(now.Add(-time.Hour)),
				After:  lo.ToPtr(now),
			}},
			wantErr: "createdAt: Before is earlier than After",
		},
		{
			name: "open time range",
			filter: OrderFilter{CreatedAt: &TimeRange{
				After: lo.ToPtr(now),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestToOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses() {
		got, err := ToOrderStatus(string(status))
		assert.NoError(t, err)
		assert.Equal(t, status, got)
	}

	_, err := ToOrderStatus("placed")
	assert.Error(t, err)
}

func TestToDeliveryStatus(t *testing.T) {
	got, err := ToDeliveryStatus("IN_TRANSIT")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusInTransit, got.OrderStatus())

	_, err = ToDeliveryStatus(string(OrderStatusCancelled))
	assert.Error(t, err)
}

func TestToPaymentStatus(t *testing.T) {
	got, err := ToPaymentStatus("PAID")
	assert.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, got)

	_, err = ToPaymentStatus("REFUNDED")
	assert.Error(t, err)
}

func TestShopper_IsAdmin(t *testing.T) {
	assert.True(t, Shopper{ID: "1", Role: RoleAdmin}.IsAdmin())
	assert.False(t, Shopper{ID: "1"}.IsAdmin())
}
