package repository

import (
	"context"
	"errors"

	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new shop settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the shop settings row
func (r *settingsRepository) Get(ctx context.Context) (*entity.ShopSettings, error) {
	var settings entity.ShopSettings
	err := r.db.WithContext(ctx).First(&settings, entity.ShopSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save creates or replaces the shop settings row
func (r *settingsRepository) Save(ctx context.Context, settings *entity.ShopSettings) error {
	settings.ID = entity.ShopSettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}
