package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/domain/repository"
	"carwash-api/internal/infrastructure/metrics"
	"carwash-api/pkg/apperror"
	"carwash-api/pkg/money"
	"carwash-api/pkg/pagination"
)

// EarningService manages the washer commission ledger. Registration is
// idempotent per order item, backed by the unique index on order_item_id, so
// repeated payments or completion retries never duplicate commissions.
type EarningService struct {
	earningRepo repository.EarningRepository
	kpi         metrics.KPIEmitter
	now         func() time.Time
}

// NewEarningService creates a new earning service
func NewEarningService(earningRepo repository.EarningRepository, kpi metrics.KPIEmitter) *EarningService {
	return &EarningService{
		earningRepo: earningRepo,
		kpi:         kpi,
		now:         time.Now,
	}
}

// RegisterForOrder creates PENDING earnings for every washer-assigned item of
// the order that does not have one yet. Items without a washer are skipped.
// The order must be loaded with its items. Returns only the newly created
// earnings.
func (s *EarningService) RegisterForOrder(ctx context.Context, order *entity.Order) ([]entity.Earning, error) {
	existing, err := s.earningRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	registered := make(map[uint]bool, len(existing))
	for _, e := range existing {
		registered[e.OrderItemID] = true
	}

	earnedAt := s.now()
	var earnings []entity.Earning
	for _, item := range order.Items {
		if item.WasherID == nil || registered[item.ID] {
			continue
		}
		earnings = append(earnings, entity.Earning{
			OrderItemID:     item.ID,
			OrderID:         order.ID,
			WasherID:        *item.WasherID,
			CommissionCents: item.CommissionCents,
			Status:          enum.EarningStatusPending,
			EarnedAt:        earnedAt,
		})
	}
	if len(earnings) == 0 {
		return nil, nil
	}

	if err := s.earningRepo.CreateBatch(ctx, earnings); err != nil {
		return nil, err
	}
	return earnings, nil
}

// MarkAsPaid settles the given PENDING earnings at paidAt, defaulting to now
// when the caller supplies none (e.g. back-dating a payout that happened
// off-system). Earnings that are already PAID or CANCELLED are left untouched;
// the count reflects rows actually flipped.
func (s *EarningService) MarkAsPaid(ctx context.Context, ids []uint, paidAt *time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewBadRequestError("At least one earning id is required")
	}

	settledAt := s.now()
	if paidAt != nil {
		settledAt = *paidAt
	}
	count, err := s.earningRepo.MarkPaid(ctx, ids, settledAt)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.kpi.EarningsPaid(count)
	}
	return count, nil
}

// CancelForOrder voids the order's PENDING earnings when a completed order is
// cancelled. PAID earnings are deliberately untouched: money already handed
// to a washer is an accounting fact, not something to roll back here.
func (s *EarningService) CancelForOrder(ctx context.Context, orderID uint) ([]entity.Earning, error) {
	return s.earningRepo.CancelPendingByOrder(ctx, orderID)
}

// ListByOrder returns the order's earnings
func (s *EarningService) ListByOrder(ctx context.Context, orderID uint) ([]entity.Earning, error) {
	return s.earningRepo.ListByOrder(ctx, orderID)
}

// WasherEarnings is a washer's earning history plus running totals
type WasherEarnings struct {
	Items      []entity.Earning       `json:"items"`
	Pagination *pagination.Pagination `json:"pagination"`
	Summary    EarningTotals          `json:"summary"`
}

// EarningTotals carries the per-status commission totals in decimal form
type EarningTotals struct {
	PendingTotal   float64 `json:"pending_total"`
	PaidTotal      float64 `json:"paid_total"`
	CancelledTotal float64 `json:"cancelled_total"`
	PendingCount   int64   `json:"pending_count"`
	PaidCount      int64   `json:"paid_count"`
}

// ListByWasher returns one washer's earnings with per-status totals
func (s *EarningService) ListByWasher(ctx context.Context, washerID uuid.UUID, params *repository.EarningFilterParams) (*WasherEarnings, error) {
	earnings, total, err := s.earningRepo.ListByWasher(ctx, washerID, params)
	if err != nil {
		return nil, err
	}

	summary, err := s.earningRepo.SummaryByWasher(ctx, washerID)
	if err != nil {
		return nil, err
	}

	return &WasherEarnings{
		Items:      earnings,
		Pagination: pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total),
		Summary: EarningTotals{
			PendingTotal:   money.CentsToDecimal(summary.PendingCents),
			PaidTotal:      money.CentsToDecimal(summary.PaidCents),
			CancelledTotal: money.CentsToDecimal(summary.CancelledCents),
			PendingCount:   summary.PendingCount,
			PaidCount:      summary.PaidCount,
		},
	}, nil
}
