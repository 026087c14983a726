package service

import (
	"context"
	"strings"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/repository"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/pagination"
)

// VehicleService manages registered vehicles and their categories. Plates are
// normalized to uppercase so the unique index deduplicates case variants.
type VehicleService struct {
	vehicleRepo  repository.VehicleRepository
	categoryRepo repository.VehicleCategoryRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo repository.VehicleRepository, categoryRepo repository.VehicleCategoryRepository) *VehicleService {
	return &VehicleService{
		vehicleRepo:  vehicleRepo,
		categoryRepo: categoryRepo,
	}
}

// Create registers a vehicle
func (s *VehicleService) Create(ctx context.Context, input *VehicleInput) (*entity.Vehicle, error) {
	plate := strings.ToUpper(strings.TrimSpace(input.Plate))

	existing, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A vehicle with this plate already exists")
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Vehicle category")
	}

	vehicle := &entity.Vehicle{
		Plate:      plate,
		Brand:      input.Brand,
		Model:      input.Model,
		Color:      input.Color,
		CategoryID: input.CategoryID,
		OwnerName:  input.OwnerName,
		OwnerPhone: input.OwnerPhone,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Get returns one vehicle
func (s *VehicleService) Get(ctx context.Context, id uint) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

// List returns a page of vehicles matching the plate/owner search
func (s *VehicleService) List(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Vehicle], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	vehicles, total, err := s.vehicleRepo.List(ctx, search, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(vehicles, pag), nil
}

// Update applies changes to a vehicle
func (s *VehicleService) Update(ctx context.Context, id uint, input *VehicleInput) (*entity.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	plate := strings.ToUpper(strings.TrimSpace(input.Plate))
	if plate != vehicle.Plate {
		existing, err := s.vehicleRepo.GetByPlate(ctx, plate)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("A vehicle with this plate already exists")
		}
	}

	vehicle.Plate = plate
	vehicle.Brand = input.Brand
	vehicle.Model = input.Model
	vehicle.Color = input.Color
	vehicle.CategoryID = input.CategoryID
	vehicle.OwnerName = input.OwnerName
	vehicle.OwnerPhone = input.OwnerPhone

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete removes a vehicle
func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.vehicleRepo.Delete(ctx, id)
}

// ListCategories returns all vehicle categories
func (s *VehicleService) ListCategories(ctx context.Context) ([]entity.VehicleCategory, error) {
	return s.categoryRepo.List(ctx)
}

// CategoryInput creates or updates a vehicle category
type CategoryInput struct {
	Code string `json:"code" binding:"required,max=50"`
	Name string `json:"name" binding:"required,max=200"`
}

// CreateCategory adds a vehicle category
func (s *VehicleService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.VehicleCategory, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))

	existing, err := s.categoryRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A category with this code already exists")
	}

	category := &entity.VehicleCategory{Code: code, Name: input.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a vehicle category
func (s *VehicleService) UpdateCategory(ctx context.Context, id uint, input *CategoryInput) (*entity.VehicleCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Vehicle category")
	}

	category.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	category.Name = input.Name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a vehicle category
func (s *VehicleService) DeleteCategory(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Vehicle category")
	}
	return s.categoryRepo.Delete(ctx, id)
}
