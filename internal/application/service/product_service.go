package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// DefaultLowStockThreshold applies until the shop settings say otherwise
const DefaultLowStockThreshold = 10

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
	}
}

// lowStockThreshold reads the shop setting, falling back to the default
func lowStockThreshold(ctx context.Context, settingsRepo repository.SettingsRepository) int {
	settings, err := settingsRepo.Get(ctx)
	if err != nil || settings == nil || settings.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return settings.LowStockThreshold
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID   uuid.UUID
	Name     string
	Code     string
	Quantity int
	Price    float64
	Cost     float64
	Discount float64
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	discount, err := billing.ParsePercent(input.Discount)
	if err != nil {
		return nil, apperror.NewUnprocessableError("Discount must be between 0 and 100")
	}

	userID := input.UserID
	product := &entity.Product{
		Name:      strings.TrimSpace(input.Name),
		Code:      code,
		Quantity:  input.Quantity,
		Price:     int64(billing.MoneyFromMajor(input.Price)),
		Cost:      int64(billing.MoneyFromMajor(input.Cost)),
		Discount:  int64(discount),
		CreatedBy: &userID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByCode retrieves a product by its code
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.LowStock && params.Threshold <= 0 {
		params.Threshold = lowStockThreshold(ctx, s.settingsRepo)
	}

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID       uuid.UUID
	EditedBy string
	Name     *string
	Code     *string
	Quantity *int
	Price    *float64
	Cost     *float64
	Discount *float64
}

// UpdateProduct updates a product and records who edited it
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.Code))
		if code != product.Code {
			existing, err := s.productRepo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, apperror.NewConflictError("Product code already exists")
			}
			product.Code = code
		}
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Price != nil {
		product.Price = int64(billing.MoneyFromMajor(*input.Price))
	}
	if input.Cost != nil {
		product.Cost = int64(billing.MoneyFromMajor(*input.Cost))
	}
	if input.Discount != nil {
		discount, err := billing.ParsePercent(*input.Discount)
		if err != nil {
			return nil, apperror.NewUnprocessableError("Discount must be between 0 and 100")
		}
		product.Discount = int64(discount)
	}

	now := time.Now()
	editedBy := input.EditedBy
	product.EditedBy = &editedBy
	product.EditedAt = &now

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product. Bills that sold it keep their lines.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// GetLowStockProducts returns products below the shop's low stock threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, lowStockThreshold(ctx, s.settingsRepo))
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows int              `json:"total_rows"`
	Created   int              `json:"created"`
	Updated   int              `json:"updated"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// importColumns are the header names accepted in the first sheet
var importColumns = []string{"code", "name", "quantity", "price", "cost", "discount"}

// ImportProducts reads the first sheet of an .xlsx workbook and upserts its
// rows by product code. Rows with errors are reported and skipped.
func (s *ProductService) ImportProducts(ctx context.Context, editedBy string, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("File is not a valid .xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read sheet " + sheets[0])
	}
	if len(rows) < 2 {
		return nil, apperror.NewBadRequestError("Sheet has no product rows")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range importColumns[:4] {
		if _, ok := index[col]; !ok {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Missing column %q", col))
		}
	}

	result := &ImportResult{TotalRows: len(rows) - 1}
	seen := make(map[string]int)
	now := time.Now()
	var products []entity.Product

	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		product, rowErr := parseImportRow(rowNum, cell)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		if prev, dup := seen[product.Code]; dup {
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Duplicate code '%s' (same as row %d)", product.Code, prev),
			})
			continue
		}
		seen[product.Code] = rowNum

		product.EditedBy = &editedBy
		product.EditedAt = &now
		products = append(products, *product)
	}

	if len(products) > 0 {
		created, updated, err := s.productRepo.UpsertByCode(ctx, products)
		if err != nil {
			return nil, fmt.Errorf("import products: %w", err)
		}
		result.Created = created
		result.Updated = updated
	}
	result.Failed = len(result.Errors)

	log.Printf("[products] import by=%s rows=%d created=%d updated=%d failed=%d",
		editedBy, result.TotalRows, result.Created, result.Updated, result.Failed)
	return result, nil
}

func parseImportRow(rowNum int, cell func(string) string) (*entity.Product, *ImportRowError) {
	rowErr := func(field, msg string) *ImportRowError {
		return &ImportRowError{Row: rowNum, Field: field, Message: msg}
	}

	code := strings.ToUpper(cell("code"))
	if code == "" {
		return nil, rowErr("code", "Code is required")
	}
	name := cell("name")
	if name == "" {
		return nil, rowErr("name", "Name is required")
	}

	quantity, err := strconv.Atoi(cell("quantity"))
	if err != nil || quantity < 0 {
		return nil, rowErr("quantity", "Quantity must be a whole number of zero or more")
	}
	price, err := strconv.ParseFloat(cell("price"), 64)
	if err != nil || price < 0 {
		return nil, rowErr("price", "Price must be a number of zero or more")
	}

	var cost float64
	if v := cell("cost"); v != "" {
		if cost, err = strconv.ParseFloat(v, 64); err != nil || cost < 0 {
			return nil, rowErr("cost", "Cost must be a number of zero or more")
		}
	}

	var discount billing.Percent
	if v := cell("discount"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err == nil {
			discount, err = billing.ParsePercent(d)
		}
		if err != nil {
			return nil, rowErr("discount", "Discount must be between 0 and 100")
		}
	}

	return &entity.Product{
		Code:     code,
		Name:     name,
		Quantity: quantity,
		Price:    int64(billing.MoneyFromMajor(price)),
		Cost:     int64(billing.MoneyFromMajor(cost)),
		Discount: int64(discount),
	}, nil
}
