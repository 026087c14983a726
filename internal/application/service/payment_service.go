package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/internal/infrastructure/metrics"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/exchange"
	"carwash-api/pkg/money"
)

// RateSource supplies the live VES reference rate
type RateSource interface {
	Rates(ctx context.Context) (*exchange.Rates, error)
}

// PaymentInput is one payment line submitted by the cashier. Amount is in the
// payment currency; ExchangeRate is the rate the client saw, validated against
// the live reference rate for VES and ignored for USD.
type PaymentInput struct {
	Amount       float64            `json:"amount" binding:"required,gt=0"`
	Currency     enum.Currency      `json:"currency" binding:"required"`
	Method       enum.PaymentMethod `json:"method" binding:"required"`
	ExchangeRate float64            `json:"exchange_rate"`
	Reference    string             `json:"reference" binding:"max=200"`
}

// ChangeInput annotates the change handed back by the cashier
type ChangeInput struct {
	Amount   float64            `json:"amount" binding:"required,gt=0"`
	Currency enum.Currency      `json:"currency" binding:"required"`
	Method   enum.PaymentMethod `json:"method" binding:"required"`
}

// PaymentService owns the append-only payment ledger: converting submitted
// amounts to the settlement currency, validating coverage, and writing the
// rows. Order lifecycle effects of a payment (auto-completion) belong to
// OrderService, which consumes the shouldComplete result.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	rates       RateSource
	kpi         metrics.KPIEmitter
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, rates RateSource, kpi metrics.KPIEmitter) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		rates:       rates,
		kpi:         kpi,
	}
}

// Record converts and persists a batch of payment lines against the order.
//
// The order must be loaded with its existing payments. The batch is
// all-or-nothing: unless previously recorded payments plus the whole batch
// cover the order total (within the one-cent settlement tolerance) nothing is
// written and the caller gets an insufficient-payment error. The reference
// rate is fetched once per batch, and only when a VES line is present.
//
// Returns the created rows and whether the order is eligible for
// auto-completion (it was waiting for payment and is now covered).
func (s *PaymentService) Record(ctx context.Context, order *entity.Order, inputs []PaymentInput, cashierID *uuid.UUID) ([]entity.Payment, bool, error) {
	if len(inputs) == 0 {
		return nil, false, apperror.NewBadRequestError("At least one payment is required")
	}
	if order.Status.IsTerminal() {
		return nil, false, apperror.NewOrderNotPayableError(order.Status.String())
	}

	referenceRate, err := s.referenceRateFor(ctx, inputs)
	if err != nil {
		return nil, false, err
	}

	payments := make([]entity.Payment, 0, len(inputs))
	var batchUSDCents int64
	for _, in := range inputs {
		amountCents := money.DecimalToCents(in.Amount)

		var conv money.Conversion
		switch in.Currency {
		case enum.CurrencyUSD:
			conv = money.ConvertUSD(amountCents)
		case enum.CurrencyVES:
			conv, err = money.ConvertVES(amountCents, in.ExchangeRate, referenceRate)
			if err != nil {
				var mismatch *money.RateMismatchError
				if errors.As(err, &mismatch) {
					return nil, false, apperror.NewRateMismatchError(mismatch.Supplied, mismatch.Reference)
				}
				return nil, false, err
			}
		default:
			return nil, false, apperror.NewBadRequestError("Unsupported currency")
		}

		batchUSDCents += conv.AmountUSDCents
		payments = append(payments, entity.Payment{
			OrderID:        order.ID,
			AmountCents:    amountCents,
			Currency:       in.Currency,
			Method:         in.Method,
			ExchangeRate:   conv.Rate,
			AmountUSDCents: conv.AmountUSDCents,
			Reference:      in.Reference,
			CashierID:      cashierID,
		})
	}

	paidUSDCents := order.PaidUSDCents() + batchUSDCents
	if !money.Covers(paidUSDCents, order.TotalCents) {
		return nil, false, apperror.NewInsufficientPaymentError(
			money.CentsToDecimal(order.TotalCents),
			money.CentsToDecimal(paidUSDCents),
		)
	}

	if err := s.paymentRepo.CreateBatch(ctx, payments); err != nil {
		return nil, false, err
	}

	for _, p := range payments {
		s.kpi.PaymentRecorded(p.Currency.String(), money.CentsToDecimal(p.AmountUSDCents))
	}

	shouldComplete := order.Status == enum.OrderStatusWaitingPayment
	return payments, shouldComplete, nil
}

// AnnotateChange records the change handed back by the cashier on the order
// itself. Change is an annotation, never a negative ledger row, so the paid
// total stays a plain sum over payment rows.
func (s *PaymentService) AnnotateChange(order *entity.Order, change *ChangeInput) {
	if change == nil {
		return
	}
	cents := money.DecimalToCents(change.Amount)
	currency := change.Currency
	method := change.Method
	order.ChangeCents = &cents
	order.ChangeCurrency = &currency
	order.ChangeMethod = &method
}

// ListByOrder returns the order's ledger rows in insertion order
func (s *PaymentService) ListByOrder(ctx context.Context, orderID uint) ([]entity.Payment, error) {
	return s.paymentRepo.ListByOrder(ctx, orderID)
}

// TotalPaidUSD returns the stored settlement-currency total for the order
func (s *PaymentService) TotalPaidUSD(ctx context.Context, orderID uint) (int64, error) {
	return s.paymentRepo.SumUSDByOrder(ctx, orderID)
}

// referenceRateFor fetches the live rate only when the batch needs it
func (s *PaymentService) referenceRateFor(ctx context.Context, inputs []PaymentInput) (float64, error) {
	needed := false
	for _, in := range inputs {
		if in.Currency == enum.CurrencyVES {
			needed = true
			break
		}
	}
	if !needed {
		return 0, nil
	}

	rates, err := s.rates.Rates(ctx)
	if err != nil {
		if errors.Is(err, exchange.ErrUnavailable) {
			return 0, apperror.NewRateUnavailableError()
		}
		return 0, err
	}
	return rates.USD.Average, nil
}
