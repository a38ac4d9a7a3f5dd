package repository_test

import (
	"bytes"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

var currencies = []string{"USD", "EUR", "GBP", "CHF"}

func fakeMoney(unit currency.Unit) domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: unit,
	}
}

func fakeCurrency() currency.Unit {
	return currency.MustParseISO(gofakeit.RandomString(currencies))
}

func fakeProduct(stock int) domain.Product {
	return domain.Product{
		Name:          gofakeit.ProductName(),
		Price:         fakeMoney(fakeCurrency()),
		StockQuantity: stock,
	}
}

func assertCart(t *testing.T, expected domain.Cart, actual domain.Cart) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartItem{}, "CreatedAt"),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}

func assertProduct(t *testing.T, expected domain.Product, actual domain.Product) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "CreatedAt", "UpdatedAt"),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}

func assertOrder(t *testing.T, expected domain.Order, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "CreatedAt", "UpdatedAt"),
		cmpopts.IgnoreFields(domain.OrderItem{}, "CreatedAt"),
		cmpopts.SortSlices(func(a, b domain.OrderItem) bool {
			return bytes.Compare(a.ProductID[:], b.ProductID[:]) < 0
		}),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
