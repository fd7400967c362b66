package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/internal/domain/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

// Wednesday
var reportNow = time.Date(2026, 10, 14, 16, 45, 0, 0, time.UTC)

func newReportService(t *testing.T) (*ReportService, *mocks.MockBillRepository, *mocks.MockAnalyticsRepository) {
	ctrl := gomock.NewController(t)
	billRepo := mocks.NewMockBillRepository(ctrl)
	analyticsRepo := mocks.NewMockAnalyticsRepository(ctrl)
	svc := NewReportService(billRepo, analyticsRepo, time.UTC)
	svc.now = func() time.Time { return reportNow }
	return svc, billRepo, analyticsRepo
}

func TestReportService_ResolveRange(t *testing.T) {
	svc, _, _ := newReportService(t)

	tests := []struct {
		name       string
		reportType string
		start, end string
		want       DateRange
		from       time.Time
		until      time.Time
	}{
		{
			name:  "default is today",
			want:  DateRange{Start: "2026-10-14", End: "2026-10-14", Type: ReportDaily},
			from:  time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
			until: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "weekly starts on monday",
			reportType: ReportWeekly,
			want:       DateRange{Start: "2026-10-12", End: "2026-10-14", Type: ReportWeekly},
			from:       time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
			until:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monthly",
			reportType: ReportMonthly,
			want:       DateRange{Start: "2026-10-01", End: "2026-10-14", Type: ReportMonthly},
			from:       time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			until:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "explicit dates override type",
			reportType: ReportWeekly,
			start:      "2026-09-01",
			end:        "2026-09-30",
			want:       DateRange{Start: "2026-09-01", End: "2026-09-30", Type: ReportCustom},
			from:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			until:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveRange(tt.reportType, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Start, got.Start)
			assert.Equal(t, tt.want.End, got.End)
			assert.Equal(t, tt.want.Type, got.Type)
			from, until := got.Bounds()
			assert.True(t, tt.from.Equal(from), "from %s", from)
			assert.True(t, tt.until.Equal(until), "until %s", until)
		})
	}
}

func TestReportService_ResolveRange_Invalid(t *testing.T) {
	svc, _, _ := newReportService(t)

	tests := []struct {
		name       string
		reportType string
		start, end string
	}{
		{name: "unknown type", reportType: "yearly"},
		{name: "start without end", start: "2026-10-01"},
		{name: "bad start", start: "01/10/2026", end: "2026-10-02"},
		{name: "end before start", start: "2026-10-05", end: "2026-10-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolveRange(tt.reportType, tt.start, tt.end)
			requireAppError(t, err, http.StatusBadRequest)
		})
	}
}

func TestReportService_GetReport(t *testing.T) {
	svc, billRepo, _ := newReportService(t)
	r, err := svc.ResolveRange(ReportDaily, "", "")
	require.NoError(t, err)
	from, until := r.Bounds()

	billRepo.EXPECT().ListBetween(gomock.Any(), from, until).Return([]entity.Bill{
		{
			ID:            uuid.New(),
			VehicleNumber: "KA01AB1234",
			SubTotal:      75000,
			Total:         75000,
			Items: []entity.BillItem{
				{Kind: billing.KindProduct.String(), LineTotal: 45000},
				{Kind: billing.KindService.String(), LineTotal: 30000},
			},
		},
		{
			ID:            uuid.New(),
			VehicleNumber: "KA02CD5678",
			SubTotal:      20000,
			Total:         18000,
			Items: []entity.BillItem{
				{Kind: billing.KindCustom.String(), LineTotal: 18000},
			},
		},
	}, nil)

	report, err := svc.GetReport(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalBills)
	assert.Equal(t, billing.Money(93000), report.TotalSales)
	assert.Equal(t, billing.Money(45000), report.ProductSales)
	assert.Equal(t, billing.Money(48000), report.ServiceSales)
	require.Len(t, report.Bills, 2)
	assert.Regexp(t, `^AS-[0-9A-F]{8}$`, report.Bills[0].BillNo)

	buf, err := svc.ExportReport(report)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Bills")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "KA02CD5678", rows[2][3])
}

func TestReportService_GetDailySeries_FillsGaps(t *testing.T) {
	svc, _, analyticsRepo := newReportService(t)

	analyticsRepo.EXPECT().GetDailySales(gomock.Any(),
		time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	).Return([]repository.DailySalesResult{
		{Date: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), Total: 120000, BillCount: 4},
	}, nil)

	points, err := svc.GetDailySeries(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "2026-10-12", points[0].Date)
	assert.Zero(t, points[0].Total)
	assert.Equal(t, billing.Money(120000), points[1].Total)
	assert.Equal(t, 4, points[1].BillCount)
	assert.Equal(t, "2026-10-14", points[2].Date)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "sales-2026-10-14.xlsx", ExportFilename(DateRange{Start: "2026-10-14", End: "2026-10-14"}))
	assert.Equal(t, "sales-2026-10-01-to-2026-10-14.xlsx", ExportFilename(DateRange{Start: "2026-10-01", End: "2026-10-14"}))
}
