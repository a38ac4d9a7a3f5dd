package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("shopper identity is missing")
	ErrProductNotFound = errors.New("product not found")
)

type EmptyCartError struct {
	OwnerID string
}

func (e *EmptyCartError) Error() string {
	return fmt.Sprintf("cart of owner[%s] is empty", e.OwnerID)
}

type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product[%s]: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// StorageError wraps any transaction or commit failure, the whole operation has been rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
