package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-api/internal/domain/entity"
	domainRepo "carwash-api/internal/domain/repository"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return dbFrom(ctx, r.db).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	err := dbFrom(ctx, r.db).
		Preload("Vehicle.Category").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.detailQuery(ctx).First(&order, "public_id = ?", publicID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	err := r.detailQuery(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) detailQuery(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).
		Preload("Vehicle.Category").
		Preload("Supervisor").
		Preload("Items.Washer").
		Preload("Items.Earning").
		Preload("Payments")
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return dbFrom(ctx, r.db).Save(order).Error
}

// Delete removes the order and everything hanging off it. Earnings and
// notifications reference the order by id only, so they are swept explicitly.
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("order_id = ?", id).Delete(&entity.Earning{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id).Delete(&entity.Payment{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id).Delete(&entity.Notification{}).Error; err != nil {
		return err
	}
	return db.Delete(&entity.Order{}, "id = ?", id).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Order{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *params.VehicleID)
	}
	if params.WasherID != nil {
		query = query.Where("id IN (?)",
			dbFrom(ctx, r.db).Model(&entity.OrderItem{}).
				Select("order_id").
				Where("washer_id = ?", *params.WasherID))
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}
	if params.Search != "" {
		query = query.Where("vehicle_id IN (?)",
			dbFrom(ctx, r.db).Model(&entity.Vehicle{}).
				Select("id").
				Where("plate ILIKE ?", "%"+params.Search+"%"))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Vehicle.Category").
		Preload("Items").
		Preload("Payments").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) AssignWasher(ctx context.Context, orderID uint, washerID uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.OrderItem{}).
		Where("order_id = ?", orderID).
		Update("washer_id", washerID).Error
}
