package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"carwash-api/internal/domain/entity"
	domainRepo "carwash-api/internal/domain/repository"
	"carwash-api/pkg/pagination"
)

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) domainRepo.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	return dbFrom(ctx, r.db).Create(vehicle).Error
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := dbFrom(ctx, r.db).Preload("Category").First(&vehicle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := dbFrom(ctx, r.db).Preload("Category").First(&vehicle, "plate = ?", plate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	return dbFrom(ctx, r.db).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.Vehicle{}, "id = ?", id).Error
}

func (r *vehicleRepository) List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Vehicle, int64, error) {
	var vehicles []entity.Vehicle
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Vehicle{})
	if search != "" {
		query = query.Where("plate ILIKE ? OR owner_name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Category").
		Order("created_at DESC").
		Find(&vehicles).Error

	return vehicles, total, err
}

type vehicleCategoryRepository struct {
	db *gorm.DB
}

// NewVehicleCategoryRepository creates a new vehicle category repository
func NewVehicleCategoryRepository(db *gorm.DB) domainRepo.VehicleCategoryRepository {
	return &vehicleCategoryRepository{db: db}
}

func (r *vehicleCategoryRepository) Create(ctx context.Context, category *entity.VehicleCategory) error {
	return dbFrom(ctx, r.db).Create(category).Error
}

func (r *vehicleCategoryRepository) GetByID(ctx context.Context, id uint) (*entity.VehicleCategory, error) {
	var category entity.VehicleCategory
	err := dbFrom(ctx, r.db).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *vehicleCategoryRepository) GetByCode(ctx context.Context, code string) (*entity.VehicleCategory, error) {
	var category entity.VehicleCategory
	err := dbFrom(ctx, r.db).First(&category, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *vehicleCategoryRepository) List(ctx context.Context) ([]entity.VehicleCategory, error) {
	var categories []entity.VehicleCategory
	err := dbFrom(ctx, r.db).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *vehicleCategoryRepository) Update(ctx context.Context, category *entity.VehicleCategory) error {
	return dbFrom(ctx, r.db).Save(category).Error
}

func (r *vehicleCategoryRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.VehicleCategory{}, "id = ?", id).Error
}
