package repository

import (
	"context"

	"carwash-api/internal/domain/entity"
	"carwash-api/pkg/pagination"
)

// VehicleRepository defines the interface for vehicle data operations
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id uint) (*entity.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Vehicle, int64, error)
}

// VehicleCategoryRepository defines the interface for vehicle categories
type VehicleCategoryRepository interface {
	Create(ctx context.Context, category *entity.VehicleCategory) error
	GetByID(ctx context.Context, id uint) (*entity.VehicleCategory, error)
	GetByCode(ctx context.Context, code string) (*entity.VehicleCategory, error)
	List(ctx context.Context) ([]entity.VehicleCategory, error)
	Update(ctx context.Context, category *entity.VehicleCategory) error
	Delete(ctx context.Context, id uint) error
}
