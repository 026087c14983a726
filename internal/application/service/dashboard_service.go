package service

import (
	"context"
	"time"

	"carwash-api/internal/domain/repository"
	"carwash-api/pkg/money"
)

// DashboardStats is the KPI snapshot shown on the staff dashboard. All money
// figures are decimal USD.
type DashboardStats struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	OrdersByStatus     map[string]int64 `json:"orders_by_status"`
	OrdersTotal        int64            `json:"orders_total"`
	ActiveOrders       int64            `json:"active_orders"`
	Revenue            float64          `json:"revenue"`
	Expenses           float64          `json:"expenses"`
	NetIncome          float64          `json:"net_income"`
	PendingCommissions float64          `json:"pending_commissions"`

	TopServices []TopService `json:"top_services"`
}

// TopService is one row of the most-sold services aggregate
type TopService struct {
	ServiceName string  `json:"service_name"`
	Count       int64   `json:"count"`
	Total       float64 `json:"total"`
}

// DashboardService computes the KPI aggregates. Everything reads the stored
// settlement-currency columns; nothing is reconverted at query time.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

// Today returns the KPI snapshot for the current local day
func (s *DashboardService) Today(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.Range(ctx, from, now)
}

// Range returns the KPI snapshot for an arbitrary window
func (s *DashboardService) Range(ctx context.Context, from, to time.Time) (*DashboardStats, error) {
	byStatus, err := s.analyticsRepo.CountOrdersByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}

	revenueCents, err := s.analyticsRepo.RevenueUSD(ctx, from, to)
	if err != nil {
		return nil, err
	}

	expensesCents, err := s.analyticsRepo.ExpensesUSD(ctx, from, to)
	if err != nil {
		return nil, err
	}

	pendingCents, err := s.analyticsRepo.PendingCommissionsUSD(ctx)
	if err != nil {
		return nil, err
	}

	topServices, err := s.analyticsRepo.TopServices(ctx, from, to, 5)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		From:               from,
		To:                 to,
		OrdersByStatus:     make(map[string]int64, len(byStatus)),
		Revenue:            money.CentsToDecimal(revenueCents),
		Expenses:           money.CentsToDecimal(expensesCents),
		NetIncome:          money.CentsToDecimal(revenueCents - expensesCents),
		PendingCommissions: money.CentsToDecimal(pendingCents),
		TopServices:        make([]TopService, 0, len(topServices)),
	}

	for status, count := range byStatus {
		stats.OrdersByStatus[status.String()] = count
		stats.OrdersTotal += count
		if !status.IsTerminal() {
			stats.ActiveOrders += count
		}
	}
	for _, row := range topServices {
		stats.TopServices = append(stats.TopServices, TopService{
			ServiceName: row.ServiceName,
			Count:       row.Count,
			Total:       money.CentsToDecimal(row.TotalCents),
		})
	}

	return stats, nil
}
