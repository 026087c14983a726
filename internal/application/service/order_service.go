package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/internal/infrastructure/metrics"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/money"
	"carwash-api/pkg/pagination"
)

// VehicleInput registers a vehicle inline during check-in
type VehicleInput struct {
	Plate      string `json:"plate" binding:"required,max=20"`
	Brand      string `json:"brand" binding:"max=100"`
	Model      string `json:"model" binding:"max=100"`
	Color      string `json:"color" binding:"max=50"`
	CategoryID uint   `json:"category_id" binding:"required"`
	OwnerName  string `json:"owner_name" binding:"max=200"`
	OwnerPhone string `json:"owner_phone" binding:"max=50"`
}

// CreateOrderInput is the check-in request. Exactly one of VehicleID or
// Vehicle must be set; Vehicle registers (or reuses, keyed by plate) the
// vehicle inline.
type CreateOrderInput struct {
	VehicleID   *uint         `json:"vehicle_id"`
	Vehicle     *VehicleInput `json:"vehicle"`
	ServiceIDs  []uint        `json:"service_ids" binding:"required,min=1"`
	WasherID    *uuid.UUID    `json:"washer_id"`
	DeliveryFee float64       `json:"delivery_fee" binding:"gte=0"`
}

// TransitionInput mutates an order's lifecycle state
type TransitionInput struct {
	Status             enum.OrderStatus `json:"status"`
	WasherID           *uuid.UUID       `json:"washer_id"`
	CancellationReason *string          `json:"cancellation_reason"`
}

// TransitionResult carries the updated order plus the notifications the
// transition produced, so the handler can echo them to the caller.
type TransitionResult struct {
	Order              *entity.Order        `json:"order"`
	Notification       *entity.Notification `json:"notification,omitempty"`
	ClientNotification *entity.Notification `json:"client_notification,omitempty"`
}

// PaymentRequest is the cashier's settlement submission: one or more payment
// lines plus an optional change annotation.
type PaymentRequest struct {
	Payments []PaymentInput `json:"payments" binding:"required,min=1,dive"`
	Change   *ChangeInput   `json:"change"`
}

// PaymentResult is the outcome of a settlement submission
type PaymentResult struct {
	Order   *entity.Order `json:"order"`
	Message string        `json:"message"`
}

// OrderService orchestrates the order lifecycle: check-in, status
// transitions with the pause/resume work timer, payment settlement and the
// auto-completion of covered orders. All multi-write operations run inside a
// single transaction; notifications and KPI signals are emitted only after
// the transaction commits.
type OrderService struct {
	txm             repository.TxManager
	orderRepo       repository.OrderRepository
	vehicleRepo     repository.VehicleRepository
	washServiceRepo repository.WashServiceRepository
	paymentSvc      *PaymentService
	earningSvc      *EarningService
	notificationSvc *NotificationService
	kpi             metrics.KPIEmitter
	logger          zerolog.Logger
	now             func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	txm repository.TxManager,
	orderRepo repository.OrderRepository,
	vehicleRepo repository.VehicleRepository,
	washServiceRepo repository.WashServiceRepository,
	paymentSvc *PaymentService,
	earningSvc *EarningService,
	notificationSvc *NotificationService,
	kpi metrics.KPIEmitter,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		txm:             txm,
		orderRepo:       orderRepo,
		vehicleRepo:     vehicleRepo,
		washServiceRepo: washServiceRepo,
		paymentSvc:      paymentSvc,
		earningSvc:      earningSvc,
		notificationSvc: notificationSvc,
		kpi:             kpi,
		logger:          logger,
		now:             time.Now,
	}
}

// Create checks a vehicle in. Service prices and commissions are snapshotted
// onto the items so later catalog edits never change this order.
func (s *OrderService) Create(ctx context.Context, input *CreateOrderInput, supervisorID *uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := s.txm.Do(ctx, func(ctx context.Context) error {
		vehicleID, err := s.resolveVehicle(ctx, input)
		if err != nil {
			return err
		}

		items, totalCents, err := s.buildItems(ctx, input.ServiceIDs, input.WasherID)
		if err != nil {
			return err
		}

		deliveryFeeCents := money.DecimalToCents(input.DeliveryFee)
		order = &entity.Order{
			VehicleID:        vehicleID,
			SupervisorID:     supervisorID,
			Status:           enum.OrderStatusReceived,
			TotalCents:       totalCents + deliveryFeeCents,
			DeliveryFeeCents: deliveryFeeCents,
			Items:            items,
		}
		return s.orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	order, err = s.orderRepo.GetWithDetails(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	title, staff, client := transitionMessages(order)
	s.notificationSvc.NotifyTransition(ctx, order, title, staff, client)
	return order, nil
}

func (s *OrderService) resolveVehicle(ctx context.Context, input *CreateOrderInput) (uint, error) {
	if input.VehicleID != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, *input.VehicleID)
		if err != nil {
			return 0, err
		}
		if vehicle == nil {
			return 0, apperror.NewNotFoundError("Vehicle")
		}
		return vehicle.ID, nil
	}

	if input.Vehicle == nil {
		return 0, apperror.NewBadRequestError("Either vehicle_id or vehicle is required")
	}

	plate := strings.ToUpper(strings.TrimSpace(input.Vehicle.Plate))
	existing, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}

	vehicle := &entity.Vehicle{
		Plate:      plate,
		Brand:      input.Vehicle.Brand,
		Model:      input.Vehicle.Model,
		Color:      input.Vehicle.Color,
		CategoryID: input.Vehicle.CategoryID,
		OwnerName:  input.Vehicle.OwnerName,
		OwnerPhone: input.Vehicle.OwnerPhone,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return 0, err
	}
	return vehicle.ID, nil
}

func (s *OrderService) buildItems(ctx context.Context, serviceIDs []uint, washerID *uuid.UUID) ([]entity.OrderItem, int64, error) {
	services, err := s.washServiceRepo.GetByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]entity.WashService, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	items := make([]entity.OrderItem, 0, len(serviceIDs))
	var totalCents int64
	for _, id := range serviceIDs {
		svc, ok := byID[id]
		if !ok {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Wash service %d", id))
		}
		if !svc.Active {
			return nil, 0, apperror.NewBadRequestError(fmt.Sprintf("Service %q is not active", svc.Name))
		}

		commissionCents := int64(math.Round(float64(svc.PriceCents) * svc.CommissionPercent / 100))
		items = append(items, entity.OrderItem{
			WashServiceID:     svc.ID,
			ServiceName:       svc.Name,
			PriceCents:        svc.PriceCents,
			CommissionPercent: svc.CommissionPercent,
			CommissionCents:   commissionCents,
			WasherID:          washerID,
		})
		totalCents += svc.PriceCents
	}
	return items, totalCents, nil
}

// Get returns one order with full details. Reading the detail of a covered
// WAITING_PAYMENT order completes it first.
func (s *OrderService) Get(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if _, err := s.maybeAutoComplete(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByPublicID is the portal read: lookup by the public UUID, no
// authentication. The auto-completion check runs here too, so a client
// refreshing the tracking page sees a covered order flip to COMPLETED.
func (s *OrderService) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if _, err := s.maybeAutoComplete(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns a filtered page of orders. List reads never trigger
// auto-completion; that check belongs to single-order reads.
func (s *OrderService) List(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// Transition moves an order to a new lifecycle state, handling washer
// assignment, the pause/resume work timer, the full-payment guard on
// COMPLETED and earning reversal when a completed order is cancelled.
func (s *OrderService) Transition(ctx context.Context, publicID uuid.UUID, input *TransitionInput) (*TransitionResult, error) {
	if !input.Status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}

	var order *entity.Order
	var cancelledEarnings []entity.Earning
	var wasCompleted bool

	err := s.txm.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByPublicID(ctx, publicID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		if input.WasherID != nil {
			if err := s.assignWasher(ctx, order, *input.WasherID); err != nil {
				return err
			}
		}

		from := order.Status
		to := input.Status
		s.applyTimer(order, from, to)

		if to != enum.OrderStatusCancelled {
			order.CancellationReason = nil
		}

		switch to {
		case enum.OrderStatusCancelled:
			reason := ""
			if input.CancellationReason != nil {
				reason = strings.TrimSpace(*input.CancellationReason)
			}
			if reason == "" {
				return apperror.NewBadRequestError("Cancellation reason is required")
			}
			order.CancellationReason = &reason

			wasCompleted = from == enum.OrderStatusCompleted
			if wasCompleted {
				cancelledEarnings, err = s.earningSvc.CancelForOrder(ctx, order.ID)
				if err != nil {
					return err
				}
			}

		case enum.OrderStatusCompleted:
			if !money.Covers(order.PaidUSDCents(), order.TotalCents) {
				return apperror.NewIncompletePaymentError(
					money.CentsToDecimal(order.TotalCents),
					money.CentsToDecimal(order.PaidUSDCents()),
				)
			}
			if _, err := s.earningSvc.RegisterForOrder(ctx, order); err != nil {
				return err
			}
			closedAt := s.now()
			if order.CompletedAt == nil {
				order.CompletedAt = &closedAt
			}
			order.ClosedAt = &closedAt
		}

		order.Status = to
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case enum.OrderStatusCompleted:
		s.kpi.OrderCompleted()
	case enum.OrderStatusCancelled:
		s.kpi.OrderCancelled()
	}

	title, staff, client := transitionMessages(order)
	staffNotif, clientNotif := s.notificationSvc.NotifyTransition(ctx, order, title, staff, client)
	s.notifyCancelledEarnings(ctx, order, cancelledEarnings)
	s.notificationSvc.EmitKPIChanged(ctx, order)

	return &TransitionResult{
		Order:              order,
		Notification:       staffNotif,
		ClientNotification: clientNotif,
	}, nil
}

// assignWasher bulk-assigns the washer to every item of the order, in both
// the database and the loaded copy.
func (s *OrderService) assignWasher(ctx context.Context, order *entity.Order, washerID uuid.UUID) error {
	if err := s.orderRepo.AssignWasher(ctx, order.ID, washerID); err != nil {
		return err
	}
	id := washerID
	for i := range order.Items {
		order.Items[i].WasherID = &id
	}
	return nil
}

// applyTimer maintains the work timer across a status change.
//
// Entering IN_PROGRESS starts the timer, or resumes it by rebasing startedAt
// so that the already-elapsed time is preserved without an accumulator
// column. Leaving IN_PROGRESS pauses it: completedAt is stamped and the
// duration is rounded to whole minutes.
func (s *OrderService) applyTimer(order *entity.Order, from, to enum.OrderStatus) {
	if to == enum.OrderStatusInProgress && from != enum.OrderStatusInProgress {
		now := s.now()
		if order.StartedAt == nil {
			order.StartedAt = &now
		} else if order.CompletedAt != nil {
			elapsed := order.CompletedAt.Sub(*order.StartedAt)
			rebased := now.Add(-elapsed)
			order.StartedAt = &rebased
		}
		order.CompletedAt = nil
		order.DurationMinutes = nil
		return
	}

	if from == enum.OrderStatusInProgress && to != enum.OrderStatusInProgress {
		s.pauseTimer(order)
	}
}

func (s *OrderService) pauseTimer(order *entity.Order) {
	if order.StartedAt == nil || order.CompletedAt != nil {
		return
	}
	now := s.now()
	order.CompletedAt = &now
	minutes := int(math.Round(now.Sub(*order.StartedAt).Minutes()))
	order.DurationMinutes = &minutes
}

// RecordPayment settles (part of) an order. When the batch covers a
// WAITING_PAYMENT order, the order is completed in the same transaction.
// Earnings are registered for washer-assigned items regardless of status, so
// an early payment already credits the washers.
func (s *OrderService) RecordPayment(ctx context.Context, publicID uuid.UUID, req *PaymentRequest, cashierID *uuid.UUID) (*PaymentResult, error) {
	var order *entity.Order
	var completed bool
	var recorded []entity.Payment

	err := s.txm.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByPublicID(ctx, publicID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		recorded, completed, err = s.paymentSvc.Record(ctx, order, req.Payments, cashierID)
		if err != nil {
			return err
		}
		order.Payments = append(order.Payments, recorded...)
		s.paymentSvc.AnnotateChange(order, req.Change)

		if _, err := s.earningSvc.RegisterForOrder(ctx, order); err != nil {
			return err
		}
		if completed {
			s.stampCompletion(order)
		}
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	message := "Payment recorded"
	if completed {
		message = "Payment recorded and order completed"
		s.kpi.OrderCompleted()
		title, staff, client := transitionMessages(order)
		s.notificationSvc.NotifyTransition(ctx, order, title, staff, client)
	} else {
		s.notificationSvc.NotifyTransition(ctx, order,
			"Payment received",
			fmt.Sprintf("Payment received for order #%d (%s)", order.ID, order.Vehicle.Plate),
			"We received your payment, thank you",
		)
	}
	s.notificationSvc.EmitKPIChanged(ctx, order)

	return &PaymentResult{Order: order, Message: message}, nil
}

// maybeAutoComplete completes a WAITING_PAYMENT order whose stored payments
// already cover the total. The check runs on single-order detail reads and
// after payment writes, never on list reads. The order must be loaded with
// payments and items.
func (s *OrderService) maybeAutoComplete(ctx context.Context, order *entity.Order) (bool, error) {
	if order.Status != enum.OrderStatusWaitingPayment {
		return false, nil
	}
	if !money.Covers(order.PaidUSDCents(), order.TotalCents) {
		return false, nil
	}

	err := s.txm.Do(ctx, func(ctx context.Context) error {
		if _, err := s.earningSvc.RegisterForOrder(ctx, order); err != nil {
			return err
		}
		s.stampCompletion(order)
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return false, err
	}

	s.logger.Info().Uint("order_id", order.ID).Msg("order auto-completed")
	s.kpi.OrderCompleted()
	title, staff, client := transitionMessages(order)
	s.notificationSvc.NotifyTransition(ctx, order, title, staff, client)
	s.notificationSvc.EmitKPIChanged(ctx, order)
	return true, nil
}

// stampCompletion pauses the timer if still running and closes the order.
// Orders that never entered IN_PROGRESS get completedAt stamped here, so a
// completed order always carries one.
func (s *OrderService) stampCompletion(order *entity.Order) {
	s.pauseTimer(order)
	closedAt := s.now()
	if order.CompletedAt == nil {
		order.CompletedAt = &closedAt
	}
	order.ClosedAt = &closedAt
	order.Status = enum.OrderStatusCompleted
}

// Delete removes an order and all its dependents. Admin only; meant for
// test data and mistakes, not for normal operation, which uses CANCELLED.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	return s.txm.Do(ctx, func(ctx context.Context) error {
		return s.orderRepo.Delete(ctx, id)
	})
}

func (s *OrderService) notifyCancelledEarnings(ctx context.Context, order *entity.Order, cancelled []entity.Earning) {
	if len(cancelled) == 0 {
		return
	}
	washers := make(map[uuid.UUID]bool, len(cancelled))
	for _, e := range cancelled {
		if washers[e.WasherID] {
			continue
		}
		washers[e.WasherID] = true
		s.notificationSvc.NotifyWasher(ctx, order, e.WasherID.String(),
			"Earnings cancelled",
			fmt.Sprintf("Order #%d was cancelled; its pending commissions were voided", order.ID),
		)
	}
}

// transitionMessages builds the staff and client notification texts for the
// order's current status.
func transitionMessages(order *entity.Order) (title, staff, client string) {
	plate := order.Vehicle.Plate
	switch order.Status {
	case enum.OrderStatusReceived:
		return "Order received",
			fmt.Sprintf("Order #%d created for vehicle %s", order.ID, plate),
			"We received your vehicle and will start soon"
	case enum.OrderStatusInProgress:
		return "Wash in progress",
			fmt.Sprintf("Order #%d (%s) is being washed", order.ID, plate),
			"Your vehicle is being washed"
	case enum.OrderStatusQualityCheck:
		return "Quality check",
			fmt.Sprintf("Order #%d (%s) is in quality check", order.ID, plate),
			"Your vehicle is in the final quality check"
	case enum.OrderStatusWaitingPayment:
		return "Waiting for payment",
			fmt.Sprintf("Order #%d (%s) is ready and waiting for payment", order.ID, plate),
			"Your vehicle is ready for pickup"
	case enum.OrderStatusCompleted:
		return "Order completed",
			fmt.Sprintf("Order #%d (%s) was completed", order.ID, plate),
			"Thank you for your visit"
	case enum.OrderStatusCancelled:
		return "Order cancelled",
			fmt.Sprintf("Order #%d (%s) was cancelled", order.ID, plate),
			"Your order was cancelled"
	}
	return "Order updated",
		fmt.Sprintf("Order #%d (%s) was updated", order.ID, plate),
		"Your order was updated"
}
