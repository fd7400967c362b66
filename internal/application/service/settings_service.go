package service

import (
	"context"
	"log"
	"strings"

	"github.com/autospa/autospa-api/internal/config"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/google/uuid"
)

// SettingsService handles the shop settings printed on receipts
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     config.ShopConfig
}

// NewSettingsService creates a new settings service. defaults fill the
// settings row the first time it is read.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults config.ShopConfig) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

// GetSettings retrieves the shop settings, saving the configured defaults if
// none exist yet
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = s.defaultSettings()
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	log.Printf("[settings] created shop settings for %q", settings.StoreName)
	return settings, nil
}

func (s *SettingsService) defaultSettings() *entity.ShopSettings {
	threshold := s.defaults.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	currency := s.defaults.CurrencySymbol
	if currency == "" {
		currency = "Rs."
	}
	return &entity.ShopSettings{
		ID:                entity.ShopSettingsID,
		StoreName:         s.defaults.Name,
		Address:           s.defaults.Address,
		Phone:             s.defaults.Phone,
		CurrencySymbol:    currency,
		LowStockThreshold: threshold,
		ReceiptFooter:     "Thank you! Visit again.",
	}
}

// UpdateSettingsInput represents the input for updating settings. Nil fields
// are left unchanged.
type UpdateSettingsInput struct {
	UpdatedBy         uuid.UUID
	StoreName         *string
	Address           *string
	Phone             *string
	Email             *string
	TaxID             *string
	ReceiptFooter     *string
	CurrencySymbol    *string
	LowStockThreshold *int
}

// UpdateSettings updates the shop settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.ShopSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil {
		name := strings.TrimSpace(*input.StoreName)
		if name == "" {
			return nil, apperror.NewBadRequestError("Store name cannot be empty")
		}
		settings.StoreName = name
	}
	if input.Address != nil {
		settings.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		settings.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		settings.Email = strings.TrimSpace(*input.Email)
	}
	if input.TaxID != nil {
		settings.TaxID = strings.TrimSpace(*input.TaxID)
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}
	if input.CurrencySymbol != nil {
		settings.CurrencySymbol = strings.TrimSpace(*input.CurrencySymbol)
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 1 {
			return nil, apperror.NewBadRequestError("Low stock threshold must be at least 1")
		}
		settings.LowStockThreshold = *input.LowStockThreshold
	}
	settings.UpdatedBy = &input.UpdatedBy

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
