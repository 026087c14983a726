package repository

import (
	"context"
	"time"

	"carwash-api/internal/domain/enum"
)

// AnalyticsRepository defines aggregate queries backing the dashboard
type AnalyticsRepository interface {
	CountOrdersByStatus(ctx context.Context, from, to time.Time) (map[enum.OrderStatus]int64, error)
	// RevenueUSD sums payments' stored amount_usd over the window.
	RevenueUSD(ctx context.Context, from, to time.Time) (int64, error)
	ExpensesUSD(ctx context.Context, from, to time.Time) (int64, error)
	PendingCommissionsUSD(ctx context.Context) (int64, error)
	TopServices(ctx context.Context, from, to time.Time, limit int) ([]ServiceCount, error)
}

// ServiceCount is one row of the top-services aggregate
type ServiceCount struct {
	ServiceName string `json:"service_name"`
	Count       int64  `json:"count"`
	TotalCents  int64  `json:"-"`
}
