package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"carwash-api/internal/domain/entity"
	domainRepo "carwash-api/internal/domain/repository"
)

type washServiceRepository struct {
	db *gorm.DB
}

// NewWashServiceRepository creates a new wash service repository
func NewWashServiceRepository(db *gorm.DB) domainRepo.WashServiceRepository {
	return &washServiceRepository{db: db}
}

func (r *washServiceRepository) Create(ctx context.Context, svc *entity.WashService) error {
	return dbFrom(ctx, r.db).Create(svc).Error
}

func (r *washServiceRepository) GetByID(ctx context.Context, id uint) (*entity.WashService, error) {
	var svc entity.WashService
	err := dbFrom(ctx, r.db).First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &svc, err
}

func (r *washServiceRepository) GetByIDs(ctx context.Context, ids []uint) ([]entity.WashService, error) {
	var services []entity.WashService
	err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&services).Error
	return services, err
}

func (r *washServiceRepository) Update(ctx context.Context, svc *entity.WashService) error {
	return dbFrom(ctx, r.db).Save(svc).Error
}

func (r *washServiceRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.WashService{}, "id = ?", id).Error
}

func (r *washServiceRepository) List(ctx context.Context, activeOnly bool) ([]entity.WashService, error) {
	var services []entity.WashService
	query := dbFrom(ctx, r.db).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&services).Error
	return services, err
}
