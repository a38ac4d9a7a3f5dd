package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, testutil.ContainerLeakOptions()...)
}

type failingUnitOfWork struct {
	err   error
	calls int
}

func (u *failingUnitOfWork) Do(_ context.Context, _ func(ctx context.Context, repos port.Repositories) error) error {
	u.calls++
	return u.err
}

func TestNewProcessor(t *testing.T) {
	tests := []struct {
		name      string
		uow       port.UnitOfWork
		opts      []Option
		wantError string
	}{
		{
			name: "defaults: ok",
			uow:  &failingUnitOfWork{},
		},
		{
			name:      "nil unit of work: fail",
			wantError: "unit of work is nil",
		},
		{
			name:      "zero notify timeout: fail",
			uow:       &failingUnitOfWork{},
			opts:      []Option{WithNotifyTimeout(0)},
			wantError: "notify timeout[0s] must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProcessor(tt.uow, nil, tt.opts...)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, defaultNotifyTimeout, p.notifyTimeout)
		})
	}
}

func TestCheckout_FailsClosedWithoutShopper(t *testing.T) {
	uow := &failingUnitOfWork{}

	p, err := NewProcessor(uow, nil)
	require.NoError(t, err)

	_, err = p.Checkout(t.Context(), domain.Shopper{Email: "nobody@example.com"}, "")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Zero(t, uow.calls)
}

func TestClassifyError(t *testing.T) {
	productID := uuid.New()
	stockErr := &domain.InsufficientStockError{ProductID: productID, Requested: 2, Available: 1}
	emptyCartErr := &domain.EmptyCartError{OwnerID: "owner"}
	connErr := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		assert func(t *testing.T, err error)
	}{
		{
			name: "empty cart is unwrapped: ok",
			err:  fmt.Errorf("tx: %w", emptyCartErr),
			assert: func(t *testing.T, err error) {
				assert.Same(t, emptyCartErr, err)
			},
		},
		{
			name: "insufficient stock joined with rollback failure: ok",
			err:  errors.Join(stockErr, errors.New("tx.Rollback: conn closed")),
			assert: func(t *testing.T, err error) {
				assert.Same(t, stockErr, err)
			},
		},
		{
			name: "product not found stays matchable: ok",
			err:  fmt.Errorf("product[%s]: %w", productID, domain.ErrProductNotFound),
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrProductNotFound)
				var storageErr *domain.StorageError
				assert.False(t, errors.As(err, &storageErr))
			},
		},
		{
			name: "anything else is a storage error: ok",
			err:  fmt.Errorf("tx.Commit: %w", connErr),
			assert: func(t *testing.T, err error) {
				var storageErr *domain.StorageError
				require.ErrorAs(t, err, &storageErr)
				assert.Equal(t, "checkout", storageErr.Op)
				assert.ErrorIs(t, err, connErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assert(t, classifyError(tt.err))
		})
	}
}

func TestCheckout_StorageErrorFromUnitOfWork(t *testing.T) {
	uow := &failingUnitOfWork{err: errors.New("pool.BeginTx: too many clients")}

	p, err := NewProcessor(uow, nil)
	require.NoError(t, err)

	_, err = p.Checkout(t.Context(), domain.Shopper{ID: "shopper"}, "")

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.EqualError(t, err, "checkout: pool.BeginTx: too many clients")
	assert.Equal(t, 1, uow.calls)
}
