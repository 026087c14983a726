package service

import (
	"context"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/repository"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/money"
)

// WashServiceInput creates or updates a catalog entry. Price is decimal USD;
// it is stored in cents.
type WashServiceInput struct {
	Name              string  `json:"name" binding:"required,max=200"`
	Price             float64 `json:"price" binding:"required,gt=0"`
	CommissionPercent float64 `json:"commission_percent" binding:"gte=0,lte=100"`
	Active            *bool   `json:"active"`
}

// CatalogService manages the sellable wash service catalog. Edits here never
// touch historical orders; orders snapshot price and commission at creation.
type CatalogService struct {
	washServiceRepo repository.WashServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(washServiceRepo repository.WashServiceRepository) *CatalogService {
	return &CatalogService{washServiceRepo: washServiceRepo}
}

// Create adds a catalog entry
func (s *CatalogService) Create(ctx context.Context, input *WashServiceInput) (*entity.WashService, error) {
	svc := &entity.WashService{
		Name:              input.Name,
		PriceCents:        money.DecimalToCents(input.Price),
		CommissionPercent: input.CommissionPercent,
		Active:            true,
	}
	if input.Active != nil {
		svc.Active = *input.Active
	}
	if err := s.washServiceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Get returns one catalog entry
func (s *CatalogService) Get(ctx context.Context, id uint) (*entity.WashService, error) {
	svc, err := s.washServiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Wash service")
	}
	return svc, nil
}

// List returns the catalog, optionally restricted to active entries
func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]entity.WashService, error) {
	return s.washServiceRepo.List(ctx, activeOnly)
}

// Update applies changes to a catalog entry
func (s *CatalogService) Update(ctx context.Context, id uint, input *WashServiceInput) (*entity.WashService, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.Name = input.Name
	svc.PriceCents = money.DecimalToCents(input.Price)
	svc.CommissionPercent = input.CommissionPercent
	if input.Active != nil {
		svc.Active = *input.Active
	}

	if err := s.washServiceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete removes a catalog entry. Existing orders keep their snapshots.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.washServiceRepo.Delete(ctx, id)
}
