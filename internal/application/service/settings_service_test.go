package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/autospa/autospa-api/internal/config"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSettingsService_GetSettings_SavesDefaultsOnFirstRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	svc := NewSettingsService(repo, config.ShopConfig{Name: "AutoSpa Indiranagar", Phone: "080-4000-1234"})

	repo.EXPECT().Get(gomock.Any()).Return(nil, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(entity.ShopSettingsID), settings.ID)
	assert.Equal(t, "AutoSpa Indiranagar", settings.StoreName)
	assert.Equal(t, "Rs.", settings.CurrencySymbol)
	assert.Equal(t, DefaultLowStockThreshold, settings.LowStockThreshold)
}

func TestSettingsService_UpdateSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	svc := NewSettingsService(repo, config.ShopConfig{})
	stored := &entity.ShopSettings{ID: entity.ShopSettingsID, StoreName: "AutoSpa", LowStockThreshold: 10}
	editor := uuid.New()

	repo.EXPECT().Get(gomock.Any()).Return(stored, nil)
	repo.EXPECT().Save(gomock.Any(), stored).Return(nil)

	name, threshold := "  AutoSpa Koramangala ", 5
	settings, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		UpdatedBy:         editor,
		StoreName:         &name,
		LowStockThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, "AutoSpa Koramangala", settings.StoreName)
	assert.Equal(t, 5, settings.LowStockThreshold)
	require.NotNil(t, settings.UpdatedBy)
	assert.Equal(t, editor, *settings.UpdatedBy)
}

func TestSettingsService_UpdateSettings_Rejects(t *testing.T) {
	blank, zero := " ", 0

	tests := []struct {
		name  string
		input *UpdateSettingsInput
	}{
		{name: "blank store name", input: &UpdateSettingsInput{StoreName: &blank}},
		{name: "threshold below one", input: &UpdateSettingsInput{LowStockThreshold: &zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockSettingsRepository(ctrl)
			repo.EXPECT().Get(gomock.Any()).Return(&entity.ShopSettings{StoreName: "AutoSpa"}, nil)

			_, err := NewSettingsService(repo, config.ShopConfig{}).UpdateSettings(context.Background(), tt.input)
			requireAppError(t, err, http.StatusBadRequest)
		})
	}
}
