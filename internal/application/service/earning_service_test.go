package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/internal/infrastructure/metrics"
	"carwash-api/pkg/pagination"
)

func newEarningService(repo *mockEarningRepo) *EarningService {
	svc := NewEarningService(repo, metrics.NoopEmitter{})
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc
}

func orderWithItems(washerA, washerB *uuid.UUID) *entity.Order {
	return &entity.Order{
		ID: 42,
		Items: []entity.OrderItem{
			{ID: 1, CommissionCents: 300, WasherID: washerA},
			{ID: 2, CommissionCents: 150, WasherID: washerB},
		},
	}
}

func TestEarningService_RegisterForOrder(t *testing.T) {
	washer := uuid.New()
	repo := new(mockEarningRepo)
	repo.On("ListByOrder", mock.Anything, uint(42)).Return([]entity.Earning{}, nil)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(earnings []entity.Earning) bool {
		return len(earnings) == 2 &&
			earnings[0].Status == enum.EarningStatusPending &&
			earnings[0].CommissionCents == 300 &&
			earnings[1].CommissionCents == 150
	})).Return(nil)

	svc := newEarningService(repo)
	created, err := svc.RegisterForOrder(context.Background(), orderWithItems(&washer, &washer))

	require.NoError(t, err)
	assert.Len(t, created, 2)
	repo.AssertExpectations(t)
}

func TestEarningService_RegisterForOrder_Idempotent(t *testing.T) {
	washer := uuid.New()
	repo := new(mockEarningRepo)
	// Item 1 already has an earning; only item 2 gets a new one
	repo.On("ListByOrder", mock.Anything, uint(42)).Return([]entity.Earning{
		{ID: 9, OrderItemID: 1, Status: enum.EarningStatusPending},
	}, nil)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(earnings []entity.Earning) bool {
		return len(earnings) == 1 && earnings[0].OrderItemID == 2
	})).Return(nil)

	svc := newEarningService(repo)
	created, err := svc.RegisterForOrder(context.Background(), orderWithItems(&washer, &washer))

	require.NoError(t, err)
	assert.Len(t, created, 1)
	repo.AssertExpectations(t)
}

func TestEarningService_RegisterForOrder_AllRegisteredNoWrite(t *testing.T) {
	washer := uuid.New()
	repo := new(mockEarningRepo)
	repo.On("ListByOrder", mock.Anything, uint(42)).Return([]entity.Earning{
		{OrderItemID: 1}, {OrderItemID: 2},
	}, nil)

	svc := newEarningService(repo)
	created, err := svc.RegisterForOrder(context.Background(), orderWithItems(&washer, &washer))

	require.NoError(t, err)
	assert.Empty(t, created)
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestEarningService_RegisterForOrder_SkipsUnassignedItems(t *testing.T) {
	washer := uuid.New()
	repo := new(mockEarningRepo)
	repo.On("ListByOrder", mock.Anything, uint(42)).Return([]entity.Earning{}, nil)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(earnings []entity.Earning) bool {
		return len(earnings) == 1 && earnings[0].OrderItemID == 1
	})).Return(nil)

	svc := newEarningService(repo)
	created, err := svc.RegisterForOrder(context.Background(), orderWithItems(&washer, nil))

	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestEarningService_MarkAsPaid(t *testing.T) {
	repo := new(mockEarningRepo)
	// No paid_at supplied: the service clock is used
	repo.On("MarkPaid", mock.Anything, []uint{1, 2, 3},
		time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)).Return(int64(2), nil)

	svc := newEarningService(repo)
	count, err := svc.MarkAsPaid(context.Background(), []uint{1, 2, 3}, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	repo.AssertExpectations(t)
}

func TestEarningService_MarkAsPaid_BackdatedPaidAt(t *testing.T) {
	paidAt := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	repo := new(mockEarningRepo)
	repo.On("MarkPaid", mock.Anything, []uint{7}, paidAt).Return(int64(1), nil)

	svc := newEarningService(repo)
	count, err := svc.MarkAsPaid(context.Background(), []uint{7}, &paidAt)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	repo.AssertExpectations(t)
}

func TestEarningService_MarkAsPaid_EmptyIDs(t *testing.T) {
	svc := newEarningService(new(mockEarningRepo))
	_, err := svc.MarkAsPaid(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestEarningService_ListByWasher_Totals(t *testing.T) {
	washer := uuid.New()
	repo := new(mockEarningRepo)
	repo.On("ListByWasher", mock.Anything, washer, mock.Anything).Return([]entity.Earning{
		{ID: 1, CommissionCents: 300},
	}, int64(1), nil)
	repo.On("SummaryByWasher", mock.Anything, washer).Return(&repository.EarningSummary{
		PendingCents: 450,
		PaidCents:    1000,
		PendingCount: 3,
		PaidCount:    2,
	}, nil)

	svc := newEarningService(repo)
	result, err := svc.ListByWasher(context.Background(), washer, &repository.EarningFilterParams{
		Pagination: pagination.DefaultPagination(),
	})

	require.NoError(t, err)
	assert.Equal(t, 4.5, result.Summary.PendingTotal)
	assert.Equal(t, 10.0, result.Summary.PaidTotal)
	assert.Equal(t, int64(3), result.Summary.PendingCount)
}
