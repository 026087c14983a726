package repository

import (
	"context"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/pkg/pagination"
)

// NotificationRepository defines the interface for persisted notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByRole(ctx context.Context, role enum.Role, unreadOnly bool, params *pagination.PaginationParams) ([]entity.Notification, int64, error)
	ListByOrder(ctx context.Context, orderID uint) ([]entity.Notification, error)
	MarkRead(ctx context.Context, ids []uint) error
}
