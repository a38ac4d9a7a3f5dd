package repository

import (
	"errors"
	"fmt"
	"math"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrNotFound = errors.New("not found")

func mapMoneyToDomain(amount decimal.Decimal, code string) (domain.Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.Money{Amount: amount, Currency: unit}, nil
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}

// toInt32 rejects values the INTEGER columns cannot hold instead of wrapping them.
func toInt32(name string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%s[%d] is out of range", name, v)
	}
	return int32(v), nil
}
