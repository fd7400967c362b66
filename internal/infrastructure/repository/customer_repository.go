package repository

import (
	"context"
	"errors"

	"github.com/autospa/autospa-api/internal/domain/entity"
	domainRepo "github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return translate(r.db.WithContext(ctx).Create(customer).Error)
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByVehicleNumber(ctx context.Context, vehicleNumber string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "vehicle_number = ?", vehicleNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return translate(r.db.WithContext(ctx).Save(customer).Error)
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) filtered(ctx context.Context, search string, namedOnly bool) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Customer{})
	if namedOnly {
		query = query.Where("name <> ''")
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR mobile ILIKE ? OR vehicle_number ILIKE ? OR company ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	return query
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.filtered(ctx, params.Search, params.NamedOnly)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("last_visit_at DESC NULLS LAST, name ASC").
		Find(&customers).Error

	return customers, total, err
}

var customerKeyset = pagination.Keyset{Column: "created_at"}

// ListWithCursor returns customers using cursor-based pagination
// Fetches limit+1 items to detect if there are more results
func (r *customerRepository) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string, namedOnly bool) ([]entity.Customer, error) {
	var customers []entity.Customer

	query := r.filtered(ctx, search, namedOnly)

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		where, args := customerKeyset.After(cursor, params.Direction)
		query = query.Where(where, args...)
	}

	err = query.Limit(params.Limit + 1).
		Order(customerKeyset.OrderBy(params.Direction)).
		Find(&customers).Error

	return customers, err
}
