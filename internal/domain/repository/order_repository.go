package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uint) (*entity.Order, error)
	// GetByPublicID loads an order with its items, payments and earnings by
	// the public-facing UUID.
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uint) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// Delete cascades into items, payments, earnings and order-linked
	// notifications.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// AssignWasher bulk-reassigns every item of the order to the washer.
	AssignWasher(ctx context.Context, orderID uint, washerID uuid.UUID) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	VehicleID  *uint
	WasherID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
	SortBy     string
	SortOrder  string
}
