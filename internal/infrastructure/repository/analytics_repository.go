package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"carwash-api/internal/domain/entity"
	"carwash-api/internal/domain/enum"
	domainRepo "carwash-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountOrdersByStatus(ctx context.Context, from, to time.Time) (map[enum.OrderStatus]int64, error) {
	type row struct {
		Status enum.OrderStatus
		Count  int64
	}

	var rows []row
	err := dbFrom(ctx, r.db).Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *analyticsRepository) RevenueUSD(ctx context.Context, from, to time.Time) (int64, error) {
	var sum int64
	err := dbFrom(ctx, r.db).Model(&entity.Payment{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Select("COALESCE(SUM(amount_usd_cents), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *analyticsRepository) ExpensesUSD(ctx context.Context, from, to time.Time) (int64, error) {
	var sum int64
	err := dbFrom(ctx, r.db).Model(&entity.Expense{}).
		Where("spent_at >= ? AND spent_at <= ?", from, to).
		Select("COALESCE(SUM(amount_usd_cents), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *analyticsRepository) PendingCommissionsUSD(ctx context.Context) (int64, error) {
	var sum int64
	err := dbFrom(ctx, r.db).Model(&entity.Earning{}).
		Where("status = ?", enum.EarningStatusPending).
		Select("COALESCE(SUM(commission_cents), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *analyticsRepository) TopServices(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.ServiceCount, error) {
	var rows []domainRepo.ServiceCount
	err := dbFrom(ctx, r.db).Model(&entity.OrderItem{}).
		Select("service_name, COUNT(*) AS count, COALESCE(SUM(price_cents), 0) AS total_cents").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Group("service_name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
