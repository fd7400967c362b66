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

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new workshop service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return translate(r.db.WithContext(ctx).Create(service).Error)
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *serviceRepository) GetByCode(ctx context.Context, code string) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).First(&service, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return translate(r.db.WithContext(ctx).Save(service).Error)
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Service{}, "id = ?", id).Error
}

func (r *serviceRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Service{})
	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&services).Error

	return services, total, err
}

func (r *serviceRepository) ListAll(ctx context.Context) ([]entity.Service, error) {
	var services []entity.Service
	err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error
	return services, err
}

func (r *serviceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Service{}).Count(&total).Error
	return total, err
}
