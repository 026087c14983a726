package repository

import (
	"context"
	"errors"

	"carwash-api/internal/domain/entity"
	"carwash-api/pkg/pagination"
)

// ErrInsufficientStock is returned by AdjustStock when the delta would drive
// the stock level negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines the interface for inventory products
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Product, int64, error)
	// AdjustStock atomically adds delta to the stock level and fails when the
	// result would go negative.
	AdjustStock(ctx context.Context, id uint, delta int) error
}
