package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/pkg/exchange"
	"carwash-api/pkg/pagination"
)

// passthroughTxManager runs the function directly, without a database
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *mockOrderRepo) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, publicID)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *mockOrderRepo) GetWithDetails(ctx context.Context, id uint) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *mockOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	args := m.Called(ctx, params)
	orders, _ := args.Get(0).([]entity.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) AssignWasher(ctx context.Context, orderID uint, washerID uuid.UUID) error {
	return m.Called(ctx, orderID, washerID).Error(0)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) CreateBatch(ctx context.Context, payments []entity.Payment) error {
	return m.Called(ctx, payments).Error(0)
}

func (m *mockPaymentRepo) ListByOrder(ctx context.Context, orderID uint) ([]entity.Payment, error) {
	args := m.Called(ctx, orderID)
	payments, _ := args.Get(0).([]entity.Payment)
	return payments, args.Error(1)
}

func (m *mockPaymentRepo) SumUSDByOrder(ctx context.Context, orderID uint) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type mockEarningRepo struct{ mock.Mock }

func (m *mockEarningRepo) CreateBatch(ctx context.Context, earnings []entity.Earning) error {
	return m.Called(ctx, earnings).Error(0)
}

func (m *mockEarningRepo) ListByOrder(ctx context.Context, orderID uint) ([]entity.Earning, error) {
	args := m.Called(ctx, orderID)
	earnings, _ := args.Get(0).([]entity.Earning)
	return earnings, args.Error(1)
}

func (m *mockEarningRepo) ListByWasher(ctx context.Context, washerID uuid.UUID, params *repository.EarningFilterParams) ([]entity.Earning, int64, error) {
	args := m.Called(ctx, washerID, params)
	earnings, _ := args.Get(0).([]entity.Earning)
	return earnings, args.Get(1).(int64), args.Error(2)
}

func (m *mockEarningRepo) MarkPaid(ctx context.Context, ids []uint, paidAt time.Time) (int64, error) {
	args := m.Called(ctx, ids, paidAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEarningRepo) CancelPendingByOrder(ctx context.Context, orderID uint) ([]entity.Earning, error) {
	args := m.Called(ctx, orderID)
	earnings, _ := args.Get(0).([]entity.Earning)
	return earnings, args.Error(1)
}

func (m *mockEarningRepo) SummaryByWasher(ctx context.Context, washerID uuid.UUID) (*repository.EarningSummary, error) {
	args := m.Called(ctx, washerID)
	summary, _ := args.Get(0).(*repository.EarningSummary)
	return summary, args.Error(1)
}

type mockVehicleRepo struct{ mock.Mock }

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *mockVehicleRepo) GetByID(ctx context.Context, id uint) (*entity.Vehicle, error) {
	args := m.Called(ctx, id)
	vehicle, _ := args.Get(0).(*entity.Vehicle)
	return vehicle, args.Error(1)
}

func (m *mockVehicleRepo) GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	args := m.Called(ctx, plate)
	vehicle, _ := args.Get(0).(*entity.Vehicle)
	return vehicle, args.Error(1)
}

func (m *mockVehicleRepo) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVehicleRepo) List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Vehicle, int64, error) {
	args := m.Called(ctx, search, params)
	vehicles, _ := args.Get(0).([]entity.Vehicle)
	return vehicles, args.Get(1).(int64), args.Error(2)
}

type mockWashServiceRepo struct{ mock.Mock }

func (m *mockWashServiceRepo) Create(ctx context.Context, svc *entity.WashService) error {
	return m.Called(ctx, svc).Error(0)
}

func (m *mockWashServiceRepo) GetByID(ctx context.Context, id uint) (*entity.WashService, error) {
	args := m.Called(ctx, id)
	svc, _ := args.Get(0).(*entity.WashService)
	return svc, args.Error(1)
}

func (m *mockWashServiceRepo) GetByIDs(ctx context.Context, ids []uint) ([]entity.WashService, error) {
	args := m.Called(ctx, ids)
	services, _ := args.Get(0).([]entity.WashService)
	return services, args.Error(1)
}

func (m *mockWashServiceRepo) Update(ctx context.Context, svc *entity.WashService) error {
	return m.Called(ctx, svc).Error(0)
}

func (m *mockWashServiceRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockWashServiceRepo) List(ctx context.Context, activeOnly bool) ([]entity.WashService, error) {
	args := m.Called(ctx, activeOnly)
	services, _ := args.Get(0).([]entity.WashService)
	return services, args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepo) ListByRole(ctx context.Context, role enum.Role, unreadOnly bool, params *pagination.PaginationParams) ([]entity.Notification, int64, error) {
	args := m.Called(ctx, role, unreadOnly, params)
	notifications, _ := args.Get(0).([]entity.Notification)
	return notifications, args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) ListByOrder(ctx context.Context, orderID uint) ([]entity.Notification, error) {
	args := m.Called(ctx, orderID)
	notifications, _ := args.Get(0).([]entity.Notification)
	return notifications, args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, ids []uint) error {
	return m.Called(ctx, ids).Error(0)
}

// fixedRateSource serves a constant USD reference rate
type fixedRateSource struct {
	rate float64
	err  error
}

func (s fixedRateSource) Rates(ctx context.Context) (*exchange.Rates, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &exchange.Rates{USD: exchange.Quote{Average: s.rate}}, nil
}
