package service

import (
	"context"
	"errors"
	"strings"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/repository"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/money"
	"carwash-api/pkg/pagination"
)

// ProductInput creates or updates an inventory product
type ProductInput struct {
	Name         string  `json:"name" binding:"required,max=200"`
	Code         string  `json:"code" binding:"required,max=100"`
	Stock        int     `json:"stock" binding:"gte=0"`
	UnitCost     float64 `json:"unit_cost" binding:"gte=0"`
	ReorderLevel int     `json:"reorder_level" binding:"gte=0"`
}

// StockAdjustmentInput adjusts a product's stock level by a signed delta
type StockAdjustmentInput struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductService manages consumable inventory
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create adds an inventory product
func (s *ProductService) Create(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:          input.Name,
		Code:          strings.ToUpper(strings.TrimSpace(input.Code)),
		Stock:         input.Stock,
		UnitCostCents: money.DecimalToCents(input.UnitCost),
		ReorderLevel:  input.ReorderLevel,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// List returns a page of products matching the name/code search
func (s *ProductService) List(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	products, total, err := s.productRepo.List(ctx, search, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// Update applies changes to a product
func (s *ProductService) Update(ctx context.Context, id uint, input *ProductInput) (*entity.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	product.Stock = input.Stock
	product.UnitCostCents = money.DecimalToCents(input.UnitCost)
	product.ReorderLevel = input.ReorderLevel

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustStock applies a signed stock delta. The repository guards against
// driving stock negative; that surfaces here as a conflict.
func (s *ProductService) AdjustStock(ctx context.Context, id uint, input *StockAdjustmentInput) (*entity.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.productRepo.AdjustStock(ctx, id, input.Delta); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperror.NewConflictError("Stock cannot go negative")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
