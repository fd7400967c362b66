package service

import (
	"context"
	"strings"

	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService handles customer-related operations. Customers are created
// by bill submission; this service only reads and corrects them.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetByVehicleNumber looks a customer up by registration number, ignoring case
func (s *CustomerService) GetByVehicleNumber(ctx context.Context, vehicleNumber string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByVehicleNumber(ctx, NormalizeVehicleNumber(vehicleNumber))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers, most recent visitors first
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string, namedOnly bool) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, &repository.CustomerFilterParams{
		Pagination: params,
		Search:     search,
		NamedOnly:  namedOnly,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers using cursor-based pagination
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, params *pagination.CursorParams, search string, namedOnly bool) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	params.Validate()
	if _, err := params.DecodeCursor(); err != nil {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}
	customers, err := s.customerRepo.ListWithCursor(ctx, params, search, namedOnly)
	if err != nil {
		return nil, err
	}

	cursorPag, items := pagination.NewCursorPagination(customers, params, func(c entity.Customer) pagination.Cursor {
		return pagination.Cursor{At: c.CreatedAt, ID: c.ID.String()}
	})

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Mobile  *string
	Company *string
}

// UpdateCustomer corrects a customer's contact details. The vehicle number is
// the customer's identity and cannot be changed.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Mobile != nil {
		customer.Mobile = strings.TrimSpace(*input.Mobile)
	}
	if input.Company != nil {
		customer.Company = strings.TrimSpace(*input.Company)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Their bills are kept, and the next
// bill for the same vehicle brings the customer back.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// NormalizeVehicleNumber puts a registration number in the form bills store
// it in
func NormalizeVehicleNumber(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
