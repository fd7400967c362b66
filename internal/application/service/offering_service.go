package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
)

// OfferingService manages the workshop services on the price list (washes,
// polishing, labour). They carry no stock.
type OfferingService struct {
	serviceRepo repository.ServiceRepository
}

// NewOfferingService creates a new offering service
func NewOfferingService(serviceRepo repository.ServiceRepository) *OfferingService {
	return &OfferingService{serviceRepo: serviceRepo}
}

// CreateOfferingInput represents the create service input
type CreateOfferingInput struct {
	UserID      uuid.UUID
	Name        string
	Code        string
	Description *string
	Price       float64
	Cost        float64
	Discount    float64
}

func (s *OfferingService) Create(ctx context.Context, input *CreateOfferingInput) (*entity.Service, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		code = utils.GenerateServiceCode()
	}
	if code == billing.CustomCode {
		return nil, apperror.NewUnprocessableError("Code CUSTOM is reserved for custom items")
	}

	discount, err := billing.ParsePercent(input.Discount)
	if err != nil {
		return nil, apperror.NewUnprocessableError("Discount must be between 0 and 100")
	}

	userID := input.UserID
	svc := &entity.Service{
		Name:        strings.TrimSpace(input.Name),
		Code:        code,
		Description: input.Description,
		Price:       int64(billing.MoneyFromMajor(input.Price)),
		Cost:        int64(billing.MoneyFromMajor(input.Cost)),
		Discount:    int64(discount),
		CreatedBy:   &userID,
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Service code already exists")
		}
		return nil, err
	}
	return svc, nil
}

func (s *OfferingService) Get(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

func (s *OfferingService) List(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Service], error) {
	services, total, err := s.serviceRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// UpdateOfferingInput represents the update service input
type UpdateOfferingInput struct {
	ID          uuid.UUID
	EditedBy    string
	Name        *string
	Code        *string
	Description *string
	Price       *float64
	Cost        *float64
	Discount    *float64
}

func (s *OfferingService) Update(ctx context.Context, input *UpdateOfferingInput) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}

	if input.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.Code))
		if code == billing.CustomCode {
			return nil, apperror.NewUnprocessableError("Code CUSTOM is reserved for custom items")
		}
		svc.Code = code
	}
	if input.Name != nil {
		svc.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		svc.Description = input.Description
	}
	if input.Price != nil {
		svc.Price = int64(billing.MoneyFromMajor(*input.Price))
	}
	if input.Cost != nil {
		svc.Cost = int64(billing.MoneyFromMajor(*input.Cost))
	}
	if input.Discount != nil {
		discount, err := billing.ParsePercent(*input.Discount)
		if err != nil {
			return nil, apperror.NewUnprocessableError("Discount must be between 0 and 100")
		}
		svc.Discount = int64(discount)
	}

	now := time.Now()
	editedBy := input.EditedBy
	svc.EditedBy = &editedBy
	svc.EditedAt = &now

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Service code already exists")
		}
		return nil, err
	}
	return svc, nil
}

func (s *OfferingService) Delete(ctx context.Context, id uuid.UUID) error {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return apperror.NewNotFoundError("Service")
	}
	return s.serviceRepo.Delete(ctx, id)
}
