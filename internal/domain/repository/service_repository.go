package repository

import (
	"context"

	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
)

// ServiceRepository defines the interface for workshop service data operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	GetByCode(ctx context.Context, code string) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Service, int64, error)
	ListAll(ctx context.Context) ([]entity.Service, error)
	Count(ctx context.Context) (int64, error)
}
