package handler

import (
	"errors"
	"time"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/request"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillHandler handles submitted bills
type BillHandler struct {
	billService *service.BillService
	loc         *time.Location
}

// NewBillHandler creates a new bill handler. Date filters are read in loc.
func NewBillHandler(billService *service.BillService, loc *time.Location) *BillHandler {
	if loc == nil {
		loc = time.Local
	}
	return &BillHandler{billService: billService, loc: loc}
}

// Submit stores a bill finalized on the client
// @Summary Submit bill
// @Tags bills
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Unique key per bill"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Submit(c *gin.Context) {
	var bill billing.Bill
	if err := c.ShouldBindJSON(&bill); err != nil {
		var berr *billing.Error
		if errors.As(err, &berr) {
			response.Error(c, service.BillingAppError(berr))
			return
		}
		response.BadRequest(c, "Invalid bill: "+err.Error())
		return
	}

	receipt, err := h.billService.SubmitBill(c.Request.Context(), &bill)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, receipt.Message, receipt)
}

// List handles listing bills (supports both page-based and cursor-based pagination)
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	start, end, err := parseDates(filter.StartDate, filter.EndDate, h.loc)
	if err != nil {
		response.BadRequest(c, "Dates must be in YYYY-MM-DD format")
		return
	}
	status := parseBillStatus(filter.Status)
	method := ""
	if filter.PaymentMethod != "" {
		pm, _ := billing.ParsePaymentMethod(filter.PaymentMethod)
		method = pm.String()
	}

	if wantsCursor(c) {
		var cursor pagination.CursorParams
		if !bindQuery(c, &cursor) {
			return
		}
		result, err := h.billService.ListBillsWithCursor(c.Request.Context(), &repository.BillCursorFilterParams{
			Cursor:        &cursor,
			VehicleNumber: filter.VehicleNumber,
			PaymentMethod: method,
			Status:        status,
			StartDate:     start,
			EndDate:       end,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithCursor(c, "Bills retrieved successfully", result)
		return
	}

	params := &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:        filter.Search,
		VehicleNumber: filter.VehicleNumber,
		PaymentMethod: method,
		Status:        status,
		StartDate:     start,
		EndDate:       end,
		SortOrder:     filter.SortOrder,
	}
	if filter.CustomerID != "" {
		id := uuid.MustParse(filter.CustomerID)
		params.CustomerID = &id
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Bills retrieved successfully", result)
}

func (h *BillHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "bill")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Void cancels a bill and returns its products to stock
func (h *BillHandler) Void(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "bill")
	if !ok {
		return
	}

	bill, err := h.billService.VoidBill(c.Request.Context(), id, sess.UserID())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill voided", bill)
}

// parseDates reads YYYY-MM-DD bounds. The end date is inclusive, so the
// returned end is midnight of the following day.
func parseDates(startDate, endDate string, loc *time.Location) (start, end *time.Time, err error) {
	if startDate != "" {
		t, err := time.ParseInLocation(time.DateOnly, startDate, loc)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.ParseInLocation(time.DateOnly, endDate, loc)
		if err != nil {
			return nil, nil, err
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	return start, end, nil
}

func parseBillStatus(s string) *enum.BillStatus {
	var status enum.BillStatus
	switch s {
	case "paid":
		status = enum.BillStatusPaid
	case "void":
		status = enum.BillStatusVoid
	default:
		return nil
	}
	return &status
}
