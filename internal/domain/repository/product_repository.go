package repository

import (
	"context"

	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListAll returns every product ordered by name, for the billing catalog
	ListAll(ctx context.Context) ([]entity.Product, error)
	GetLowStock(ctx context.Context, threshold int) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	// UpsertByCode inserts new codes and updates existing ones in one transaction
	UpsertByCode(ctx context.Context, products []entity.Product) (created, updated int, err error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	Threshold  int
	SortBy     string
	SortOrder  string
}
