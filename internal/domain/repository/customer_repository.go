package repository

import (
	"context"

	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByVehicleNumber(ctx context.Context, vehicleNumber string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CustomerFilterParams) ([]entity.Customer, int64, error)
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string, namedOnly bool) ([]entity.Customer, error)
}

// CustomerFilterParams contains filtering parameters for customer queries
type CustomerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	// NamedOnly skips walk-in customers recorded with a vehicle number only
	NamedOnly bool
}
