package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	domainRepo "carwash-api/internal/domain/repository"
)

type earningRepository struct {
	db *gorm.DB
}

// NewEarningRepository creates a new earning repository
func NewEarningRepository(db *gorm.DB) domainRepo.EarningRepository {
	return &earningRepository{db: db}
}

func (r *earningRepository) CreateBatch(ctx context.Context, earnings []entity.Earning) error {
	if len(earnings) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Create(&earnings).Error
}

func (r *earningRepository) ListByOrder(ctx context.Context, orderID uint) ([]entity.Earning, error) {
	var earnings []entity.Earning
	err := dbFrom(ctx, r.db).
		Where("order_id = ?", orderID).
		Find(&earnings).Error
	return earnings, err
}

func (r *earningRepository) ListByWasher(ctx context.Context, washerID uuid.UUID, params *domainRepo.EarningFilterParams) ([]entity.Earning, int64, error) {
	var earnings []entity.Earning
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Earning{}).Where("washer_id = ?", washerID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("earned_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("earned_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("earned_at DESC").
		Find(&earnings).Error

	return earnings, total, err
}

// MarkPaid guards on status = PENDING inside the update, so ids that were
// already paid or cancelled are excluded from the affected count rather than
// double-processed.
func (r *earningRepository) MarkPaid(ctx context.Context, ids []uint, paidAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := dbFrom(ctx, r.db).Model(&entity.Earning{}).
		Where("id IN ? AND status = ?", ids, enum.EarningStatusPending).
		Updates(map[string]interface{}{
			"status":  enum.EarningStatusPaid,
			"paid_at": paidAt,
		})
	return result.RowsAffected, result.Error
}

func (r *earningRepository) CancelPendingByOrder(ctx context.Context, orderID uint) ([]entity.Earning, error) {
	db := dbFrom(ctx, r.db)

	var pending []entity.Earning
	if err := db.Where("order_id = ? AND status = ?", orderID, enum.EarningStatusPending).
		Find(&pending).Error; err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	err := db.Model(&entity.Earning{}).
		Where("order_id = ? AND status = ?", orderID, enum.EarningStatusPending).
		Update("status", enum.EarningStatusCancelled).Error
	if err != nil {
		return nil, err
	}

	for i := range pending {
		pending[i].Status = enum.EarningStatusCancelled
	}
	return pending, nil
}

func (r *earningRepository) SummaryByWasher(ctx context.Context, washerID uuid.UUID) (*domainRepo.EarningSummary, error) {
	type row struct {
		Status enum.EarningStatus
		Total  int64
		Count  int64
	}

	var rows []row
	err := dbFrom(ctx, r.db).Model(&entity.Earning{}).
		Select("status, COALESCE(SUM(commission_cents), 0) AS total, COUNT(*) AS count").
		Where("washer_id = ?", washerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &domainRepo.EarningSummary{}
	for _, r := range rows {
		switch r.Status {
		case enum.EarningStatusPending:
			summary.PendingCents = r.Total
			summary.PendingCount = r.Count
		case enum.EarningStatusPaid:
			summary.PaidCents = r.Total
			summary.PaidCount = r.Count
		case enum.EarningStatusCancelled:
			summary.CancelledCents = r.Total
		}
	}
	return summary, nil
}
