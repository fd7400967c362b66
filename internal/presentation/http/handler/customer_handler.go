package handler

import (
	"strconv"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/request"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers (supports both page-based and cursor-based pagination)
func (h *CustomerHandler) List(c *gin.Context) {
	var filter request.CustomerFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	if wantsCursor(c) {
		h.listWithCursor(c, filter.Search, filter.NamedOnly)
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, filter.Search, filter.NamedOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Customers retrieved successfully", result)
}

// listWithCursor handles listing customers with cursor-based pagination
func (h *CustomerHandler) listWithCursor(c *gin.Context, search string, namedOnly bool) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &pagination.CursorParams{
		Cursor:    c.Query("cursor"),
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     limit,
	}

	result, err := h.customerService.ListCustomersWithCursor(c.Request.Context(), params, search, namedOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, "Customers retrieved successfully", result)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// GetByVehicle looks a returning customer up by vehicle number
func (h *CustomerHandler) GetByVehicle(c *gin.Context) {
	customer, err := h.customerService.GetByVehicleNumber(c.Request.Context(), c.Param("vehicle_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles correcting a customer's contact details
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "customer")
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:      id,
		Name:    req.Name,
		Mobile:  req.Mobile,
		Company: req.Company,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "customer")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}
