package handler

import (
	"path/filepath"
	"strings"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/request"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// maxImportSize caps an uploaded product workbook
const maxImportSize = 10 << 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		LowStock:  filter.LowStock,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		UserID:   sess.UserID(),
		Name:     req.Name,
		Code:     req.Code,
		Quantity: req.Quantity,
		Price:    req.Price,
		Cost:     req.Cost,
		Discount: req.Discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetByCode looks a product up by its shelf code
func (h *ProductHandler) GetByCode(c *gin.Context) {
	product, err := h.productService.GetProductByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id", "product")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ID:       id,
		EditedBy: sess.Name(),
		Name:     req.Name,
		Code:     req.Code,
		Quantity: req.Quantity,
		Price:    req.Price,
		Cost:     req.Cost,
		Discount: req.Discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// GetLowStock handles listing products below the shop's stock threshold
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// Import upserts products from an uploaded .xlsx workbook
func (h *ProductHandler) Import(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "An .xlsx file is required in the 'file' field")
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		response.BadRequest(c, "Only .xlsx workbooks can be imported")
		return
	}
	if file.Size > maxImportSize {
		response.BadRequest(c, "File is larger than 10 MB")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer f.Close()

	result, err := h.productService.ImportProducts(c.Request.Context(), sess.Name(), f)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products imported", result)
}
