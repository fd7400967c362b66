package repository

import (
	"context"
	"time"

	"github.com/autospa/autospa-api/internal/domain/enum"
	domainRepo "github.com/autospa/autospa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			bi.product_id as product_id,
			MAX(bi.name) as product_name,
			MAX(bi.code) as product_code,
			COALESCE(SUM(bi.quantity), 0) as quantity_sold,
			COALESCE(SUM(bi.line_total), 0) as revenue
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.status = ? AND b.deleted_at IS NULL
		AND b.billed_at >= ? AND b.billed_at < ?
		AND bi.product_id IS NOT NULL
		GROUP BY bi.product_id
		ORDER BY quantity_sold DESC, revenue DESC
		LIMIT ?
	`, enum.BillStatusPaid, start, end, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTopServices(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopServiceResult, error) {
	var results []domainRepo.TopServiceResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			bi.service_id as service_id,
			MAX(bi.name) as service_name,
			COALESCE(SUM(bi.quantity), 0) as times_sold,
			COALESCE(SUM(bi.line_total), 0) as revenue
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.status = ? AND b.deleted_at IS NULL
		AND b.billed_at >= ? AND b.billed_at < ?
		AND bi.service_id IS NOT NULL
		GROUP BY bi.service_id
		ORDER BY times_sold DESC, revenue DESC
		LIMIT ?
	`, enum.BillStatusPaid, start, end, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

// GetDailySales groups paid bills by day. Profit is the bill total less the
// cost of the products sold on it.
func (r *analyticsRepository) GetDailySales(ctx context.Context, start, end time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	err := r.db.WithContext(ctx).Raw(`
		WITH lines AS (
			SELECT
				bill_id,
				SUM(CASE WHEN kind = 'product' THEN line_total ELSE 0 END) as product_sales,
				SUM(CASE WHEN kind <> 'product' THEN line_total ELSE 0 END) as service_sales,
				SUM(unit_cost * quantity) as cost
			FROM bill_items
			GROUP BY bill_id
		)
		SELECT
			date_trunc('day', b.billed_at) as date,
			COALESCE(SUM(b.total), 0) as total,
			COALESCE(SUM(l.product_sales), 0) as product_sales,
			COALESCE(SUM(l.service_sales), 0) as service_sales,
			COUNT(b.id) as bill_count,
			COALESCE(SUM(b.total), 0) - COALESCE(SUM(l.cost), 0) as profit
		FROM bills b
		LEFT JOIN lines l ON l.bill_id = b.id
		WHERE b.status = ? AND b.deleted_at IS NULL
		AND b.billed_at >= ? AND b.billed_at < ?
		GROUP BY 1
		ORDER BY 1
	`, enum.BillStatusPaid, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetSalesTotals(ctx context.Context, start, end time.Time) (domainRepo.SalesTotals, error) {
	var totals domainRepo.SalesTotals

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total), 0) as total,
			COUNT(id) as bill_count
		FROM bills
		WHERE status = ? AND deleted_at IS NULL
		AND billed_at >= ? AND billed_at < ?
	`, enum.BillStatusPaid, start, end).Scan(&totals).Error

	return totals, err
}
