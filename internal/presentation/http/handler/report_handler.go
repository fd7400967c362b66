package handler

import (
	"strconv"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/request"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Get returns the sales report for ?type=daily|weekly|monthly or an explicit
// start_date/end_date pair
func (h *ReportHandler) Get(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}

	response.OK(c, "Report generated successfully", report)
}

// Daily returns per-day totals for the last ?days days
func (h *ReportHandler) Daily(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	series, err := h.reportService.GetDailySeries(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved successfully", series)
}

func (h *ReportHandler) TopProducts(c *gin.Context) {
	var req request.ReportRequest
	if !bindQuery(c, &req) {
		return
	}
	r, err := h.reportService.ResolveRange(req.Type, req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	top, err := h.reportService.GetTopProducts(c.Request.Context(), r, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved successfully", top)
}

func (h *ReportHandler) TopServices(c *gin.Context) {
	var req request.ReportRequest
	if !bindQuery(c, &req) {
		return
	}
	r, err := h.reportService.ResolveRange(req.Type, req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	top, err := h.reportService.GetTopServices(c.Request.Context(), r, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top services retrieved successfully", top)
}

// Export downloads the report as an .xlsx workbook
func (h *ReportHandler) Export(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}

	buf, err := h.reportService.ExportReport(report)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, service.ExportFilename(report.DateRange), xlsxContentType, buf.Bytes())
}

func (h *ReportHandler) report(c *gin.Context) (*service.SalesReport, bool) {
	var req request.ReportRequest
	if !bindQuery(c, &req) {
		return nil, false
	}
	r, err := h.reportService.ResolveRange(req.Type, req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	report, err := h.reportService.GetReport(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return report, true
}
