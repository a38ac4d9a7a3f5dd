package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func money(amount string, unit currency.Unit) Money {
	return Money{Amount: decimal.RequireFromString(amount), Currency: unit}
}

func TestMoney_Add(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		want    Money
		wantErr error
	}{
		{
			name: "same currency",
			a:    money("10.00", currency.USD),
			b:    money("5.25", currency.USD),
			want: money("15.25", currency.USD),
		},
		{
			name: "zero",
			a:    ZeroMoney(currency.EUR),
			b:    money("0.01", currency.EUR),
			want: money("0.01", currency.EUR),
		},
		{
			name:    "currency mismatch",
			a:       money("10.00", currency.USD),
			b:       money("10.00", currency.EUR),
			wantErr: ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestMoney_Mul(t *testing.T) {
	got := money("10.00", currency.USD).Mul(3)

	assert.True(t, money("30", currency.USD).Equal(got))
	assert.Equal(t, "30.00 USD", got.String())
}

func TestMoney_Equal(t *testing.T) {
	assert.True(t, money("1.5", currency.GBP).Equal(money("1.50", currency.GBP)))
	assert.False(t, money("1.50", currency.GBP).Equal(money("1.50", currency.CHF)))
	assert.False(t, money("1.50", currency.GBP).Equal(money("1.51", currency.GBP)))
}

func TestOrder_ItemsTotal(t *testing.T) {
	order := Order{
		Total: ZeroMoney(currency.USD),
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: money("10.00", currency.USD)},
			{Quantity: 1, UnitPrice: money("5.00", currency.USD)},
		},
	}

	total, err := order.ItemsTotal()
	require.NoError(t, err)
	assert.Equal(t, "25.00 USD", total.String())

	order.Items = append(order.Items, OrderItem{Quantity: 1, UnitPrice: money("1.00", currency.EUR)})

	_, err = order.ItemsTotal()
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}
