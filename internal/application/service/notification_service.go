package service

import (
	"context"

	"github.com/rs/zerolog"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/internal/infrastructure/events"
	"carwash-api/pkg/pagination"
)

// NotificationService persists notifications and pushes them to live
// listeners. Persistence and push both run after the triggering transaction
// has committed; a failure here is logged and swallowed, never surfaced to
// the operation that produced the notification.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        events.Publisher
	logger           zerolog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// NotifyTransition emits the two notifications of a status transition: one
// role-targeted for the staff dashboard and one role-less, order-linked for
// the client portal. Returns whatever was persisted.
func (s *NotificationService) NotifyTransition(ctx context.Context, order *entity.Order, title, staffMessage, clientMessage string) (*entity.Notification, *entity.Notification) {
	role := staffRoleFor(order.Status)

	staff := &entity.Notification{
		Role:    &role,
		OrderID: &order.ID,
		Title:   title,
		Message: staffMessage,
	}
	client := &entity.Notification{
		OrderID: &order.ID,
		Title:   title,
		Message: clientMessage,
	}

	s.persistAndPush(ctx, order, staff)
	s.persistAndPush(ctx, order, client)
	return staff, client
}

// NotifyWasher tells one washer that their earnings totals changed
func (s *NotificationService) NotifyWasher(ctx context.Context, order *entity.Order, washerID string, title, message string) {
	role := enum.RoleWasher
	n := &entity.Notification{
		Role:    &role,
		OrderID: &order.ID,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Uint("order_id", order.ID).Msg("failed to persist washer notification")
		return
	}
	s.push(ctx, events.Event{
		Type:      events.TypeNotification,
		OrderID:   order.ID,
		OrderUUID: order.PublicID.String(),
		Role:      role.String(),
		WasherID:  washerID,
		Title:     title,
		Message:   message,
		At:        n.CreatedAt,
	})
}

// EmitKPIChanged signals aggregators that dashboard KPIs may have changed.
// Fire and forget.
func (s *NotificationService) EmitKPIChanged(ctx context.Context, order *entity.Order) {
	s.push(ctx, events.Event{
		Type:      events.TypeKPIChanged,
		OrderID:   order.ID,
		OrderUUID: order.PublicID.String(),
	})
}

func (s *NotificationService) persistAndPush(ctx context.Context, order *entity.Order, n *entity.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Uint("order_id", order.ID).Msg("failed to persist notification")
		return
	}

	event := events.Event{
		Type:      events.TypeOrderStatus,
		OrderID:   order.ID,
		OrderUUID: order.PublicID.String(),
		Title:     n.Title,
		Message:   n.Message,
		At:        n.CreatedAt,
	}
	if n.Role != nil {
		event.Role = n.Role.String()
	}
	s.push(ctx, event)
}

func (s *NotificationService) push(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("type", event.Type).Msg("failed to push event")
	}
}

// ListForRole lists persisted notifications for one staff role
func (s *NotificationService) ListForRole(ctx context.Context, role enum.Role, unreadOnly bool, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Notification], error) {
	notifications, total, err := s.notificationRepo.ListByRole(ctx, role, unreadOnly, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(notifications, pag), nil
}

// ListForOrder lists the client-facing notifications of one order
func (s *NotificationService) ListForOrder(ctx context.Context, orderID uint) ([]entity.Notification, error) {
	return s.notificationRepo.ListByOrder(ctx, orderID)
}

// MarkRead marks the given notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, ids []uint) error {
	return s.notificationRepo.MarkRead(ctx, ids)
}

// staffRoleFor picks the staff role that acts on an order in a given state:
// the cashier once it waits for payment, the supervisor otherwise.
func staffRoleFor(status enum.OrderStatus) enum.Role {
	if status == enum.OrderStatusWaitingPayment {
		return enum.RoleCashier
	}
	return enum.RoleSupervisor
}
