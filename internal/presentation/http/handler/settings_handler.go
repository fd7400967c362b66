package handler

import (
	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/request"
	"github.com/autospa/autospa-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles shop settings
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the shop settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates the shop settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req request.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		UpdatedBy:         sess.UserID(),
		StoreName:         req.StoreName,
		Address:           req.Address,
		Phone:             req.Phone,
		Email:             req.Email,
		TaxID:             req.TaxID,
		ReceiptFooter:     req.ReceiptFooter,
		CurrencySymbol:    req.CurrencySymbol,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
