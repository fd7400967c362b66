package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Report types
const (
	ReportDaily   = "daily"
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
	ReportCustom  = "custom"
)

const dateLayout = "2006-01-02"

// DateRange is a report period. Start and End are whole days, End included.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Type  string `json:"type"`

	from  time.Time
	until time.Time
}

// Bounds returns the half-open instant range [from, until) covered by r
func (r DateRange) Bounds() (time.Time, time.Time) {
	return r.from, r.until
}

// BillSummary is one bill in a sales report
type BillSummary struct {
	ID            uuid.UUID     `json:"id"`
	BillNo        string        `json:"bill_no"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	CustomerName  string        `json:"customer_name"`
	VehicleNumber string        `json:"vehicle_no"`
	PaymentMethod string        `json:"payment_method"`
	SubTotal      billing.Money `json:"sub_total"`
	Total         billing.Money `json:"total"`
	BilledAt      time.Time     `json:"payment_date"`
	ProductSales  billing.Money `json:"product_sales"`
	ServiceSales  billing.Money `json:"service_sales"`
}

// SalesReport is the takings over a period. Custom lines count as services.
type SalesReport struct {
	TotalSales   billing.Money `json:"totalSales"`
	TotalBills   int           `json:"totalBills"`
	ProductSales billing.Money `json:"productSales"`
	ServiceSales billing.Money `json:"serviceSales"`
	Bills        []BillSummary `json:"bills"`
	DateRange    DateRange     `json:"dateRange"`
}

// DailySalesPoint is one day of the sales series
type DailySalesPoint struct {
	Date         string        `json:"date"`
	Total        billing.Money `json:"total"`
	ProductSales billing.Money `json:"product_sales"`
	ServiceSales billing.Money `json:"service_sales"`
	BillCount    int           `json:"bill_count"`
	Profit       billing.Money `json:"profit"`
}

// TopProduct is a best-selling product over a period
type TopProduct struct {
	ProductID    uuid.UUID     `json:"product_id"`
	Name         string        `json:"name"`
	Code         string        `json:"code"`
	QuantitySold int           `json:"quantity_sold"`
	Revenue      billing.Money `json:"revenue"`
}

// TopService is a most-sold service over a period
type TopService struct {
	ServiceID uuid.UUID     `json:"service_id"`
	Name      string        `json:"name"`
	TimesSold int           `json:"times_sold"`
	Revenue   billing.Money `json:"revenue"`
}

// ReportService builds sales reports from paid bills
type ReportService struct {
	billRepo      repository.BillRepository
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
	now           func() time.Time
}

// NewReportService creates a new report service. Days start at midnight in loc.
func NewReportService(billRepo repository.BillRepository, analyticsRepo repository.AnalyticsRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		billRepo:      billRepo,
		analyticsRepo: analyticsRepo,
		loc:           loc,
		now:           time.Now,
	}
}

// ResolveRange turns a report type or an explicit start and end date into a
// period. Explicit dates win over the type.
func (s *ReportService) ResolveRange(reportType, startDate, endDate string) (DateRange, error) {
	today, tomorrow := dayBounds(s.now().In(s.loc))

	if startDate != "" || endDate != "" {
		if startDate == "" || endDate == "" {
			return DateRange{}, apperror.NewBadRequestError("Both start_date and end_date are required")
		}
		from, err := time.ParseInLocation(dateLayout, startDate, s.loc)
		if err != nil {
			return DateRange{}, apperror.NewBadRequestError("start_date must be YYYY-MM-DD")
		}
		last, err := time.ParseInLocation(dateLayout, endDate, s.loc)
		if err != nil {
			return DateRange{}, apperror.NewBadRequestError("end_date must be YYYY-MM-DD")
		}
		if last.Before(from) {
			return DateRange{}, apperror.NewBadRequestError("end_date is before start_date")
		}
		return DateRange{
			Start: startDate,
			End:   endDate,
			Type:  ReportCustom,
			from:  from,
			until: last.AddDate(0, 0, 1),
		}, nil
	}

	var from time.Time
	switch reportType {
	case "", ReportDaily:
		reportType = ReportDaily
		from = today
	case ReportWeekly:
		// Weeks start on Monday
		offset := (int(today.Weekday()) + 6) % 7
		from = today.AddDate(0, 0, -offset)
	case ReportMonthly:
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)
	default:
		return DateRange{}, apperror.NewBadRequestError("Invalid report type")
	}

	return DateRange{
		Start: from.Format(dateLayout),
		End:   today.Format(dateLayout),
		Type:  reportType,
		from:  from,
		until: tomorrow,
	}, nil
}

// GetReport returns every paid bill in r with totals and the
// product/service split
func (s *ReportService) GetReport(ctx context.Context, r DateRange) (*SalesReport, error) {
	from, until := r.Bounds()
	bills, err := s.billRepo.ListBetween(ctx, from, until)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		TotalBills: len(bills),
		Bills:      make([]BillSummary, 0, len(bills)),
		DateRange:  r,
	}
	for i := range bills {
		summary := summarize(&bills[i])
		report.TotalSales += summary.Total
		report.ProductSales += summary.ProductSales
		report.ServiceSales += summary.ServiceSales
		report.Bills = append(report.Bills, summary)
	}
	return report, nil
}

func summarize(b *entity.Bill) BillSummary {
	products, services := b.Split()
	return BillSummary{
		ID:            b.ID,
		BillNo:        utils.BillNumber(b.ID),
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		VehicleNumber: b.VehicleNumber,
		PaymentMethod: b.PaymentMethod,
		SubTotal:      billing.Money(b.SubTotal),
		Total:         billing.Money(b.Total),
		BilledAt:      b.BilledAt,
		ProductSales:  billing.Money(products),
		ServiceSales:  billing.Money(services),
	}
}

// GetDailySeries returns one point per day for the last days days, today
// included. Days without sales are zero.
func (s *ReportService) GetDailySeries(ctx context.Context, days int) ([]DailySalesPoint, error) {
	if days < 1 {
		days = 7
	}
	if days > 366 {
		days = 366
	}

	today, tomorrow := dayBounds(s.now().In(s.loc))
	from := today.AddDate(0, 0, -(days - 1))

	rows, err := s.analyticsRepo.GetDailySales(ctx, from, tomorrow)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]repository.DailySalesResult, len(rows))
	for _, row := range rows {
		byDay[row.Date.In(s.loc).Format(dateLayout)] = row
	}

	points := make([]DailySalesPoint, 0, days)
	for d := from; d.Before(tomorrow); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		row := byDay[key]
		points = append(points, DailySalesPoint{
			Date:         key,
			Total:        billing.Money(row.Total),
			ProductSales: billing.Money(row.ProductSales),
			ServiceSales: billing.Money(row.ServiceSales),
			BillCount:    row.BillCount,
			Profit:       billing.Money(row.Profit),
		})
	}
	return points, nil
}

// GetTopProducts returns the best-selling products in r
func (s *ReportService) GetTopProducts(ctx context.Context, r DateRange, limit int) ([]TopProduct, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	from, until := r.Bounds()
	rows, err := s.analyticsRepo.GetTopProducts(ctx, from, until, limit)
	if err != nil {
		return nil, err
	}
	out := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, TopProduct{
			ProductID:    row.ProductID,
			Name:         row.ProductName,
			Code:         row.ProductCode,
			QuantitySold: row.QuantitySold,
			Revenue:      billing.Money(row.Revenue),
		})
	}
	return out, nil
}

// GetTopServices returns the most-sold services in r
func (s *ReportService) GetTopServices(ctx context.Context, r DateRange, limit int) ([]TopService, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	from, until := r.Bounds()
	rows, err := s.analyticsRepo.GetTopServices(ctx, from, until, limit)
	if err != nil {
		return nil, err
	}
	out := make([]TopService, 0, len(rows))
	for _, row := range rows {
		out = append(out, TopService{
			ServiceID: row.ServiceID,
			Name:      row.ServiceName,
			TimesSold: row.TimesSold,
			Revenue:   billing.Money(row.Revenue),
		})
	}
	return out, nil
}

// ExportReport writes report as an xlsx workbook with a Summary sheet and a
// Bills sheet
func (s *ReportService) ExportReport(report *SalesReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}
	rows := [][]any{
		{"Report", report.DateRange.Type},
		{"From", report.DateRange.Start},
		{"To", report.DateRange.End},
		{"Total bills", report.TotalBills},
		{"Total sales", report.TotalSales.Major()},
		{"Product sales", report.ProductSales.Major()},
		{"Service sales", report.ServiceSales.Major()},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, err
		}
	}

	const sheet = "Bills"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	header := []any{"Bill No", "Date", "Customer", "Vehicle No", "Payment", "Sub Total", "Products", "Services", "Total"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, b := range report.Bills {
		row := []any{
			b.BillNo,
			b.BilledAt.In(s.loc).Format("2006-01-02 15:04"),
			b.CustomerName,
			b.VehicleNumber,
			b.PaymentMethod,
			b.SubTotal.Major(),
			b.ProductSales.Major(),
			b.ServiceSales.Major(),
			b.Total.Major(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("bill %s: %w", b.BillNo, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "E", 18); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// ExportFilename names an exported report file
func ExportFilename(r DateRange) string {
	if r.Start == r.End {
		return fmt.Sprintf("sales-%s.xlsx", r.Start)
	}
	return fmt.Sprintf("sales-%s-to-%s.xlsx", r.Start, r.End)
}
