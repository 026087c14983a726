package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/exchange"
	"carwash-api/pkg/money"
	"carwash-api/pkg/pagination"
)

// ExpenseInput creates or updates an expense. VES amounts are settled to USD
// with the same converter and tolerance rules as payments.
type ExpenseInput struct {
	Description  string        `json:"description" binding:"required,max=500"`
	Category     string        `json:"category" binding:"max=100"`
	Amount       float64       `json:"amount" binding:"required,gt=0"`
	Currency     enum.Currency `json:"currency" binding:"required"`
	ExchangeRate float64       `json:"exchange_rate"`
	SpentAt      *time.Time    `json:"spent_at"`
}

// ExpenseService manages business expenses
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	rates       RateSource
	now         func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, rates RateSource) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		rates:       rates,
		now:         time.Now,
	}
}

// Create records an expense, converting VES amounts to the settlement currency
func (s *ExpenseService) Create(ctx context.Context, input *ExpenseInput, recordedBy *uuid.UUID) (*entity.Expense, error) {
	conv, err := s.convert(ctx, input)
	if err != nil {
		return nil, err
	}

	spentAt := s.now()
	if input.SpentAt != nil {
		spentAt = *input.SpentAt
	}

	expense := &entity.Expense{
		Description:    input.Description,
		Category:       input.Category,
		AmountCents:    money.DecimalToCents(input.Amount),
		Currency:       input.Currency,
		ExchangeRate:   conv.Rate,
		AmountUSDCents: conv.AmountUSDCents,
		SpentAt:        spentAt,
		RecordedByID:   recordedBy,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Get returns one expense
func (s *ExpenseService) Get(ctx context.Context, id uint) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// List returns a filtered page of expenses
func (s *ExpenseService) List(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// Update reconverts and saves an expense
func (s *ExpenseService) Update(ctx context.Context, id uint, input *ExpenseInput) (*entity.Expense, error) {
	expense, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	conv, err := s.convert(ctx, input)
	if err != nil {
		return nil, err
	}

	expense.Description = input.Description
	expense.Category = input.Category
	expense.AmountCents = money.DecimalToCents(input.Amount)
	expense.Currency = input.Currency
	expense.ExchangeRate = conv.Rate
	expense.AmountUSDCents = conv.AmountUSDCents
	if input.SpentAt != nil {
		expense.SpentAt = *input.SpentAt
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

func (s *ExpenseService) convert(ctx context.Context, input *ExpenseInput) (money.Conversion, error) {
	amountCents := money.DecimalToCents(input.Amount)

	switch input.Currency {
	case enum.CurrencyUSD:
		return money.ConvertUSD(amountCents), nil
	case enum.CurrencyVES:
		rates, err := s.rates.Rates(ctx)
		if err != nil {
			if errors.Is(err, exchange.ErrUnavailable) {
				return money.Conversion{}, apperror.NewRateUnavailableError()
			}
			return money.Conversion{}, err
		}
		conv, err := money.ConvertVES(amountCents, input.ExchangeRate, rates.USD.Average)
		if err != nil {
			var mismatch *money.RateMismatchError
			if errors.As(err, &mismatch) {
				return money.Conversion{}, apperror.NewRateMismatchError(mismatch.Supplied, mismatch.Reference)
			}
			return money.Conversion{}, err
		}
		return conv, nil
	default:
		return money.Conversion{}, apperror.NewBadRequestError("Unsupported currency")
	}
}
