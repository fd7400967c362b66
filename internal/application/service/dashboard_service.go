package service

import (
	"context"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/repository"
)

// DashboardService provides the summary figures shown on the home screen
type DashboardService struct {
	productRepo   repository.ProductRepository
	serviceRepo   repository.ServiceRepository
	analyticsRepo repository.AnalyticsRepository
	settingsRepo  repository.SettingsRepository
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service. loc decides where a
// day starts.
func NewDashboardService(
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	analyticsRepo repository.AnalyticsRepository,
	settingsRepo repository.SettingsRepository,
	loc *time.Location,
) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{
		productRepo:   productRepo,
		serviceRepo:   serviceRepo,
		analyticsRepo: analyticsRepo,
		settingsRepo:  settingsRepo,
		loc:           loc,
		now:           time.Now,
	}
}

// DashboardSummary represents dashboard statistics
type DashboardSummary struct {
	TotalProducts     int64         `json:"total_products"`
	TotalServices     int64         `json:"total_services"`
	TotalBills        int64         `json:"total_bills"`
	LowStockCount     int64         `json:"low_stock_count"`
	LowStockThreshold int           `json:"low_stock_threshold"`
	TodaySales        billing.Money `json:"today_sales"`
}

// GetSummary returns catalog counts and today's takings
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{
		LowStockThreshold: lowStockThreshold(ctx, s.settingsRepo),
	}

	var err error
	if summary.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalServices, err = s.serviceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.LowStockCount, err = s.productRepo.CountLowStock(ctx, summary.LowStockThreshold); err != nil {
		return nil, err
	}

	start, end := dayBounds(s.now().In(s.loc))
	totals, err := s.analyticsRepo.GetSalesTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	summary.TotalBills = totals.BillCount
	summary.TodaySales = billing.Money(totals.Total)

	return summary, nil
}

// dayBounds returns midnight of t's day and midnight of the next day
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
