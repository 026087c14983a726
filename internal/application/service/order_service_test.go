package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/infrastructure/events"
	"carwash-api/internal/infrastructure/metrics"
	"carwash-api/pkg/apperror"
)

type orderFixture struct {
	orderRepo   *mockOrderRepo
	vehicleRepo *mockVehicleRepo
	washRepo    *mockWashServiceRepo
	paymentRepo *mockPaymentRepo
	earningRepo *mockEarningRepo
	notifRepo   *mockNotificationRepo
	svc         *OrderService
	now         time.Time
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo:   new(mockOrderRepo),
		vehicleRepo: new(mockVehicleRepo),
		washRepo:    new(mockWashServiceRepo),
		paymentRepo: new(mockPaymentRepo),
		earningRepo: new(mockEarningRepo),
		notifRepo:   new(mockNotificationRepo),
		now:         time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC),
	}

	logger := zerolog.Nop()
	notifSvc := NewNotificationService(f.notifRepo, events.NewNoopPublisher(), logger)
	paymentSvc := NewPaymentService(f.paymentRepo, fixedRateSource{rate: 24.0}, metrics.NoopEmitter{})
	earningSvc := NewEarningService(f.earningRepo, metrics.NoopEmitter{})
	earningSvc.now = func() time.Time { return f.now }

	f.svc = NewOrderService(
		passthroughTxManager{},
		f.orderRepo,
		f.vehicleRepo,
		f.washRepo,
		paymentSvc,
		earningSvc,
		notifSvc,
		metrics.NoopEmitter{},
		logger,
	)
	f.svc.now = func() time.Time { return f.now }
	return f
}

// allowNotifications lets the fixture swallow whatever notifications an
// operation emits; tests asserting on notifications set stricter expectations
// themselves.
func (f *orderFixture) allowNotifications() {
	f.notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (f *orderFixture) order(status enum.OrderStatus) *entity.Order {
	washer := uuid.New()
	return &entity.Order{
		ID:         10,
		PublicID:   uuid.New(),
		Status:     status,
		TotalCents: 2000,
		Vehicle:    entity.Vehicle{ID: 3, Plate: "ABC123"},
		Items: []entity.OrderItem{
			{ID: 1, OrderID: 10, CommissionCents: 400, WasherID: &washer},
		},
	}
}

func TestOrderService_Create(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	f.vehicleRepo.On("GetByID", mock.Anything, uint(3)).Return(&entity.Vehicle{ID: 3, Plate: "ABC123"}, nil)
	f.washRepo.On("GetByIDs", mock.Anything, []uint{1, 2}).Return([]entity.WashService{
		{ID: 1, Name: "Basic wash", PriceCents: 1000, CommissionPercent: 30, Active: true},
		{ID: 2, Name: "Wax", PriceCents: 500, CommissionPercent: 20, Active: true},
	}, nil)
	f.orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		// 10.00 + 5.00 services + 2.00 delivery, commissions frozen per item
		return o.TotalCents == 1700 &&
			o.DeliveryFeeCents == 200 &&
			o.Status == enum.OrderStatusReceived &&
			len(o.Items) == 2 &&
			o.Items[0].CommissionCents == 300 &&
			o.Items[1].CommissionCents == 100
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Order).ID = 10
	}).Return(nil)
	f.orderRepo.On("GetWithDetails", mock.Anything, uint(10)).Return(f.order(enum.OrderStatusReceived), nil)

	vehicleID := uint(3)
	order, err := f.svc.Create(context.Background(), &CreateOrderInput{
		VehicleID:   &vehicleID,
		ServiceIDs:  []uint{1, 2},
		DeliveryFee: 2,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusReceived, order.Status)
	f.orderRepo.AssertExpectations(t)
}

func TestOrderService_Create_InlineVehicle(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	f.vehicleRepo.On("GetByPlate", mock.Anything, "XYZ789").Return(nil, nil)
	f.vehicleRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *entity.Vehicle) bool {
		return v.Plate == "XYZ789" && v.CategoryID == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Vehicle).ID = 8
	}).Return(nil)
	f.washRepo.On("GetByIDs", mock.Anything, []uint{1}).Return([]entity.WashService{
		{ID: 1, Name: "Basic wash", PriceCents: 1000, Active: true},
	}, nil)
	f.orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.VehicleID == 8
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Order).ID = 11
	}).Return(nil)
	f.orderRepo.On("GetWithDetails", mock.Anything, uint(11)).Return(f.order(enum.OrderStatusReceived), nil)

	_, err := f.svc.Create(context.Background(), &CreateOrderInput{
		Vehicle:    &VehicleInput{Plate: "xyz789", CategoryID: 2},
		ServiceIDs: []uint{1},
	}, nil)

	require.NoError(t, err)
	f.vehicleRepo.AssertExpectations(t)
}

func TestOrderService_Create_InactiveServiceRejected(t *testing.T) {
	f := newOrderFixture()

	vehicleID := uint(3)
	f.vehicleRepo.On("GetByID", mock.Anything, uint(3)).Return(&entity.Vehicle{ID: 3}, nil)
	f.washRepo.On("GetByIDs", mock.Anything, []uint{1}).Return([]entity.WashService{
		{ID: 1, Name: "Retired wash", PriceCents: 1000, Active: false},
	}, nil)

	_, err := f.svc.Create(context.Background(), &CreateOrderInput{
		VehicleID:  &vehicleID,
		ServiceIDs: []uint{1},
	}, nil)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestOrderService_Transition_StartsTimer(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusReceived)
	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status: enum.OrderStatusInProgress,
	})

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusInProgress, result.Order.Status)
	require.NotNil(t, result.Order.StartedAt)
	assert.Equal(t, f.now, *result.Order.StartedAt)
	assert.Nil(t, result.Order.CompletedAt)
}

func TestOrderService_Transition_PausesTimer(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusInProgress)
	startedAt := f.now.Add(-25 * time.Minute)
	order.StartedAt = &startedAt

	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status: enum.OrderStatusQualityCheck,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Order.CompletedAt)
	require.NotNil(t, result.Order.DurationMinutes)
	assert.Equal(t, 25, *result.Order.DurationMinutes)
}

func TestOrderService_Transition_ResumeRebasesStartedAt(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	// Paused after 10 minutes of work, an hour ago. Resuming must rebase
	// startedAt to now-10m so elapsed time is preserved.
	order := f.order(enum.OrderStatusQualityCheck)
	startedAt := f.now.Add(-70 * time.Minute)
	completedAt := startedAt.Add(10 * time.Minute)
	duration := 10
	order.StartedAt = &startedAt
	order.CompletedAt = &completedAt
	order.DurationMinutes = &duration

	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status: enum.OrderStatusInProgress,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Order.StartedAt)
	assert.Equal(t, f.now.Add(-10*time.Minute), *result.Order.StartedAt)
	assert.Nil(t, result.Order.CompletedAt)
	assert.Nil(t, result.Order.DurationMinutes)
}

func TestOrderService_Transition_CompletedRequiresFullPayment(t *testing.T) {
	f := newOrderFixture()

	order := f.order(enum.OrderStatusWaitingPayment)
	order.Payments = []entity.Payment{{AmountUSDCents: 500}}
	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)

	_, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status: enum.OrderStatusCompleted,
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "cannot be completed")
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_Transition_CompletedRegistersEarnings(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusWaitingPayment)
	order.Payments = []entity.Payment{{AmountUSDCents: 2000}}

	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.earningRepo.On("ListByOrder", mock.Anything, uint(10)).Return([]entity.Earning{}, nil)
	f.earningRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(earnings []entity.Earning) bool {
		return len(earnings) == 1 && earnings[0].CommissionCents == 400
	})).Return(nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status: enum.OrderStatusCompleted,
	})

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, result.Order.Status)
	require.NotNil(t, result.Order.ClosedAt)
	// The order never entered IN_PROGRESS, completion still stamps the time
	require.NotNil(t, result.Order.CompletedAt)
	assert.Equal(t, f.now, *result.Order.CompletedAt)
	f.earningRepo.AssertExpectations(t)
}

func TestOrderService_Transition_CompletedKeepsExistingCompletedAt(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusWaitingPayment)
	order.Payments = []entity.Payment{{AmountUSDCents: 2000}}
	startedAt := f.now.Add(-40 * time.Minute)
	pausedAt := f.now.Add(-10 * time.Minute)
	order.StartedAt = &startedAt
	order.CompletedAt = &pausedAt

	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.earningRepo.On("ListByOrder", mock.Anything, uint(10)).Return([]entity.Earning{{OrderItemID: 1}}, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status: enum.OrderStatusCompleted,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Order.CompletedAt)
	assert.Equal(t, pausedAt, *result.Order.CompletedAt)
}

func TestOrderService_Transition_CancelRequiresReason(t *testing.T) {
	f := newOrderFixture()

	order := f.order(enum.OrderStatusReceived)
	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)

	for _, reason := range []*string{nil, strPtr(""), strPtr("   ")} {
		_, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
			Status:             enum.OrderStatusCancelled,
			CancellationReason: reason,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	}
}

func TestOrderService_Transition_CancelCompletedVoidsEarnings(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusCompleted)
	washer := *order.Items[0].WasherID

	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.earningRepo.On("CancelPendingByOrder", mock.Anything, uint(10)).Return([]entity.Earning{
		{ID: 5, OrderID: 10, WasherID: washer, Status: enum.EarningStatusCancelled},
	}, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status:             enum.OrderStatusCancelled,
		CancellationReason: strPtr("client complaint"),
	})

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, result.Order.Status)
	require.NotNil(t, result.Order.CancellationReason)
	assert.Equal(t, "client complaint", *result.Order.CancellationReason)
	f.earningRepo.AssertExpectations(t)
}

func TestOrderService_Transition_CancelLeavesClosedAtEmpty(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusReceived)
	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status:             enum.OrderStatusCancelled,
		CancellationReason: strPtr("client left"),
	})

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, result.Order.Status)
	// closedAt marks completion only; a cancelled order never gets one
	assert.Nil(t, result.Order.ClosedAt)
}

func TestOrderService_Transition_CompleteClearsCancellationReason(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	// A cancelled order being corrected back to COMPLETED must not keep the
	// stale cancellation reason.
	order := f.order(enum.OrderStatusCancelled)
	order.CancellationReason = strPtr("cancelled by mistake")
	order.Payments = []entity.Payment{{AmountUSDCents: 2000}}

	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.earningRepo.On("ListByOrder", mock.Anything, uint(10)).Return([]entity.Earning{{OrderItemID: 1}}, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status: enum.OrderStatusCompleted,
	})

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, result.Order.Status)
	assert.Nil(t, result.Order.CancellationReason)
}

func TestOrderService_Transition_CancelPendingOrderSkipsEarningReversal(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusInProgress)
	startedAt := f.now.Add(-5 * time.Minute)
	order.StartedAt = &startedAt

	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	_, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status:             enum.OrderStatusCancelled,
		CancellationReason: strPtr("no-show"),
	})

	require.NoError(t, err)
	// Earnings were never registered for a non-completed, unpaid order
	f.earningRepo.AssertNotCalled(t, "CancelPendingByOrder", mock.Anything, mock.Anything)
}

func TestOrderService_Transition_AssignsWasher(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusReceived)
	newWasher := uuid.New()

	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.orderRepo.On("AssignWasher", mock.Anything, uint(10), newWasher).Return(nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.Transition(context.Background(), order.PublicID, &TransitionInput{
		Status:   enum.OrderStatusInProgress,
		WasherID: &newWasher,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Order.Items[0].WasherID)
	assert.Equal(t, newWasher, *result.Order.Items[0].WasherID)
}

func TestOrderService_RecordPayment_CompletesCoveredOrder(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusWaitingPayment)
	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.paymentRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.earningRepo.On("ListByOrder", mock.Anything, uint(10)).Return([]entity.Earning{}, nil)
	f.earningRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.RecordPayment(context.Background(), order.PublicID, &PaymentRequest{
		Payments: []PaymentInput{
			{Amount: 20, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
		},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, result.Order.Status)
	assert.Equal(t, "Payment recorded and order completed", result.Message)
	require.NotNil(t, result.Order.ClosedAt)
	// The timer never ran for this order; completion still stamps the time
	require.NotNil(t, result.Order.CompletedAt)
	assert.Equal(t, f.now, *result.Order.CompletedAt)
}

func TestOrderService_RecordPayment_EarlyPaymentKeepsStatus(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusInProgress)
	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.paymentRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.earningRepo.On("ListByOrder", mock.Anything, uint(10)).Return([]entity.Earning{}, nil)
	f.earningRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.RecordPayment(context.Background(), order.PublicID, &PaymentRequest{
		Payments: []PaymentInput{
			{Amount: 20, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
		},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusInProgress, result.Order.Status)
	assert.Equal(t, "Payment recorded", result.Message)
}

func TestOrderService_RecordPayment_ChangeAnnotated(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusWaitingPayment)
	f.orderRepo.On("GetByPublicID", mock.Anything, order.PublicID).Return(order, nil)
	f.paymentRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.earningRepo.On("ListByOrder", mock.Anything, uint(10)).Return([]entity.Earning{}, nil)
	f.earningRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	result, err := f.svc.RecordPayment(context.Background(), order.PublicID, &PaymentRequest{
		Payments: []PaymentInput{
			{Amount: 25, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
		},
		Change: &ChangeInput{Amount: 5, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
	}, nil)

	require.NoError(t, err)
	require.NotNil(t, result.Order.ChangeCents)
	assert.Equal(t, int64(500), *result.Order.ChangeCents)
}

func TestOrderService_Get_AutoCompletesCoveredOrder(t *testing.T) {
	f := newOrderFixture()
	f.allowNotifications()

	order := f.order(enum.OrderStatusWaitingPayment)
	order.Payments = []entity.Payment{{AmountUSDCents: 2000}}

	f.orderRepo.On("GetWithDetails", mock.Anything, uint(10)).Return(order, nil)
	f.earningRepo.On("ListByOrder", mock.Anything, uint(10)).Return([]entity.Earning{
		{OrderItemID: 1},
	}, nil)
	f.orderRepo.On("Update", mock.Anything, order).Return(nil)

	got, err := f.svc.Get(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, got.Status)
	require.NotNil(t, got.ClosedAt)
}

func TestOrderService_Get_NoAutoCompleteWhenUncovered(t *testing.T) {
	f := newOrderFixture()

	order := f.order(enum.OrderStatusWaitingPayment)
	order.Payments = []entity.Payment{{AmountUSDCents: 500}}
	f.orderRepo.On("GetWithDetails", mock.Anything, uint(10)).Return(order, nil)

	got, err := f.svc.Get(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusWaitingPayment, got.Status)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_Get_NoAutoCompleteOutsideWaitingPayment(t *testing.T) {
	f := newOrderFixture()

	order := f.order(enum.OrderStatusInProgress)
	order.Payments = []entity.Payment{{AmountUSDCents: 2000}}
	f.orderRepo.On("GetWithDetails", mock.Anything, uint(10)).Return(order, nil)

	got, err := f.svc.Get(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusInProgress, got.Status)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_GetByPublicID_NotFound(t *testing.T) {
	f := newOrderFixture()

	id := uuid.New()
	f.orderRepo.On("GetByPublicID", mock.Anything, id).Return(nil, nil)

	_, err := f.svc.GetByPublicID(context.Background(), id)

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func strPtr(s string) *string {
	return &s
}
