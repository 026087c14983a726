package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	"carwash-api/pkg/pagination"
)

// EarningRepository defines the interface for washer earning records
type EarningRepository interface {
	CreateBatch(ctx context.Context, earnings []entity.Earning) error
	ListByOrder(ctx context.Context, orderID uint) ([]entity.Earning, error)
	ListByWasher(ctx context.Context, washerID uuid.UUID, params *EarningFilterParams) ([]entity.Earning, int64, error)
	// MarkPaid flips PENDING earnings among ids to PAID and returns the number
	// of rows affected. Ids that are not PENDING are silently excluded.
	MarkPaid(ctx context.Context, ids []uint, paidAt time.Time) (int64, error)
	// CancelPendingByOrder flips all PENDING earnings of the order to
	// CANCELLED and returns the affected earnings.
	CancelPendingByOrder(ctx context.Context, orderID uint) ([]entity.Earning, error)
	// SummaryByWasher aggregates commission totals per status for one washer.
	SummaryByWasher(ctx context.Context, washerID uuid.UUID) (*EarningSummary, error)
}

// EarningFilterParams contains filtering parameters for earning queries
type EarningFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.EarningStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// EarningSummary aggregates a washer's commission totals, in cents
type EarningSummary struct {
	PendingCents   int64 `json:"-"`
	PaidCents      int64 `json:"-"`
	CancelledCents int64 `json:"-"`
	PendingCount   int64 `json:"pending_count"`
	PaidCount      int64 `json:"paid_count"`
}
