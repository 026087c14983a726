package repository

import (
	"context"

	"gorm.io/gorm"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	domainRepo "carwash-api/internal/domain/repository"
	"carwash-api/pkg/pagination"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) domainRepo.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return dbFrom(ctx, r.db).Create(notification).Error
}

func (r *notificationRepository) ListByRole(ctx context.Context, role enum.Role, unreadOnly bool, params *pagination.PaginationParams) ([]entity.Notification, int64, error) {
	var notifications []entity.Notification
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Notification{}).Where("role = ?", role)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&notifications).Error

	return notifications, total, err
}

func (r *notificationRepository) ListByOrder(ctx context.Context, orderID uint) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := dbFrom(ctx, r.db).
		Where("order_id = ? AND role IS NULL", orderID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Model(&entity.Notification{}).
		Where("id IN ?", ids).
		Update("read", true).Error
}
