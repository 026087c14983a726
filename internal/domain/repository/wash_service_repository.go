package repository

import (
	"context"

	"carwash-api/internal/domain/entity"
)

// WashServiceRepository defines the interface for the service catalog
type WashServiceRepository interface {
	Create(ctx context.Context, svc *entity.WashService) error
	GetByID(ctx context.Context, id uint) (*entity.WashService, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.WashService, error)
	Update(ctx context.Context, svc *entity.WashService) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]entity.WashService, error)
}
