package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/infrastructure/metrics"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/exchange"
)

func newPaymentService(repo *mockPaymentRepo, rate float64, rateErr error) *PaymentService {
	return NewPaymentService(repo, fixedRateSource{rate: rate, err: rateErr}, metrics.NoopEmitter{})
}

func waitingOrder(totalCents int64) *entity.Order {
	return &entity.Order{
		ID:         7,
		Status:     enum.OrderStatusWaitingPayment,
		TotalCents: totalCents,
	}
}

func TestPaymentService_Record_USDExact(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	svc := newPaymentService(repo, 0, errors.New("must not be called"))

	order := waitingOrder(2500)
	payments, complete, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 25, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
	}, nil)

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(2500), payments[0].AmountCents)
	assert.Equal(t, int64(2500), payments[0].AmountUSDCents)
	assert.Equal(t, float64(1), payments[0].ExchangeRate)
	assert.True(t, complete)
	repo.AssertExpectations(t)
}

func TestPaymentService_Record_VESConversion(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	svc := newPaymentService(repo, 24.0, nil)

	// 192 VES at 24.00 settles to exactly $8.00
	order := waitingOrder(800)
	payments, complete, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 192, Currency: enum.CurrencyVES, Method: enum.PaymentMethodTransfer, ExchangeRate: 24.0},
	}, nil)

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(800), payments[0].AmountUSDCents)
	assert.Equal(t, 24.0, payments[0].ExchangeRate)
	assert.True(t, complete)
}

func TestPaymentService_Record_PersistsReferenceRateNotSupplied(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	svc := newPaymentService(repo, 24.257, nil)

	// Supplied rate is within tolerance but the stored rate is the rounded
	// reference, never the client value.
	order := waitingOrder(0)
	payments, _, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 100, Currency: enum.CurrencyVES, Method: enum.PaymentMethodCash, ExchangeRate: 24.0},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 24.26, payments[0].ExchangeRate)
}

func TestPaymentService_Record_StaleRateRejected(t *testing.T) {
	repo := new(mockPaymentRepo)
	svc := newPaymentService(repo, 24.0, nil)

	order := waitingOrder(800)
	_, _, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 192, Currency: enum.CurrencyVES, Method: enum.PaymentMethodCash, ExchangeRate: 25.0},
	}, nil)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "out of date")
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_MixedBatchCovers(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	svc := newPaymentService(repo, 24.0, nil)

	// $10 cash plus 240 VES ($10) against a $20 order
	order := waitingOrder(2000)
	payments, complete, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 10, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
		{Amount: 240, Currency: enum.CurrencyVES, Method: enum.PaymentMethodTransfer, ExchangeRate: 24.0},
	}, nil)

	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.True(t, complete)
}

func TestPaymentService_Record_InsufficientWritesNothing(t *testing.T) {
	repo := new(mockPaymentRepo)
	svc := newPaymentService(repo, 24.0, nil)

	order := waitingOrder(2000)
	_, _, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 5, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
	}, nil)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "does not cover")
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_OneCentToleranceAccepted(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	svc := newPaymentService(repo, 24.0, nil)

	order := waitingOrder(2000)
	_, complete, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 19.99, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
	}, nil)

	require.NoError(t, err)
	assert.True(t, complete)
}

func TestPaymentService_Record_PriorPaymentsCount(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	svc := newPaymentService(repo, 24.0, nil)

	order := waitingOrder(2000)
	order.Payments = []entity.Payment{{AmountUSDCents: 1500}}

	_, complete, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 5, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
	}, nil)

	require.NoError(t, err)
	assert.True(t, complete)
}

func TestPaymentService_Record_TerminalOrderRejected(t *testing.T) {
	repo := new(mockPaymentRepo)
	svc := newPaymentService(repo, 24.0, nil)

	for _, status := range []enum.OrderStatus{enum.OrderStatusCompleted, enum.OrderStatusCancelled} {
		order := waitingOrder(100)
		order.Status = status
		_, _, err := svc.Record(context.Background(), order, []PaymentInput{
			{Amount: 1, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
		}, nil)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	}
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_RateSourceDown(t *testing.T) {
	repo := new(mockPaymentRepo)
	svc := newPaymentService(repo, 0, exchange.ErrUnavailable)

	order := waitingOrder(800)
	_, _, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 192, Currency: enum.CurrencyVES, Method: enum.PaymentMethodCash},
	}, nil)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperror.GetAppError(err).Code)
}

func TestPaymentService_Record_USDOnlySkipsRateSource(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	// Rate source is down, but a USD-only batch never asks for it
	svc := newPaymentService(repo, 0, exchange.ErrUnavailable)

	order := waitingOrder(500)
	_, _, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 5, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCard},
	}, nil)

	require.NoError(t, err)
}

func TestPaymentService_Record_NoCompleteOutsideWaitingPayment(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	svc := newPaymentService(repo, 24.0, nil)

	order := waitingOrder(500)
	order.Status = enum.OrderStatusInProgress

	_, complete, err := svc.Record(context.Background(), order, []PaymentInput{
		{Amount: 5, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash},
	}, nil)

	require.NoError(t, err)
	assert.False(t, complete)
}

func TestPaymentService_AnnotateChange(t *testing.T) {
	svc := newPaymentService(new(mockPaymentRepo), 0, nil)
	order := waitingOrder(1000)

	svc.AnnotateChange(order, &ChangeInput{Amount: 2.5, Currency: enum.CurrencyUSD, Method: enum.PaymentMethodCash})

	require.NotNil(t, order.ChangeCents)
	assert.Equal(t, int64(250), *order.ChangeCents)
	assert.Equal(t, enum.CurrencyUSD, *order.ChangeCurrency)
	assert.Equal(t, enum.PaymentMethodCash, *order.ChangeMethod)
}
