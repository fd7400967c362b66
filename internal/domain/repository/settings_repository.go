package repository

import (
	"context"

	"github.com/autospa/autospa-api/internal/domain/entity"
)

// SettingsRepository reads and writes the single shop settings row
type SettingsRepository interface {
	// Get returns nil, nil when settings have never been saved
	Get(ctx context.Context) (*entity.ShopSettings, error)
	Save(ctx context.Context, settings *entity.ShopSettings) error
}
