package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductCode  string
	QuantitySold int
	Revenue      int64
}

// TopServiceResult represents how often a service was sold
type TopServiceResult struct {
	ServiceID   uuid.UUID
	ServiceName string
	TimesSold   int
	Revenue     int64
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date         time.Time
	Total        int64
	ProductSales int64
	ServiceSales int64
	BillCount    int
	Profit       int64
}

// SalesTotals are summed bill totals for a period
type SalesTotals struct {
	Total     int64
	BillCount int64
}

// AnalyticsRepository defines interface for analytics/aggregation queries
// over paid bills. Amounts are in paise.
type AnalyticsRepository interface {
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)
	GetTopServices(ctx context.Context, start, end time.Time, limit int) ([]TopServiceResult, error)
	// GetDailySales returns one row per day in [start, end) that has sales
	GetDailySales(ctx context.Context, start, end time.Time) ([]DailySalesResult, error)
	GetSalesTotals(ctx context.Context, start, end time.Time) (SalesTotals, error)
}
