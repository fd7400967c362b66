package request

// UpdateSettingsRequest represents a shop settings update
type UpdateSettingsRequest struct {
	StoreName         *string `json:"store_name" binding:"omitempty,min=1,max=255"`
	Address           *string `json:"address" binding:"omitempty,max=500"`
	Phone             *string `json:"phone" binding:"omitempty,max=50"`
	Email             *string `json:"email" binding:"omitempty,email"`
	TaxID             *string `json:"tax_id" binding:"omitempty,max=50"`
	ReceiptFooter     *string `json:"receipt_footer" binding:"omitempty,max=255"`
	CurrencySymbol    *string `json:"currency_symbol" binding:"omitempty,max=10"`
	LowStockThreshold *int    `json:"low_stock_threshold" binding:"omitempty,min=1"`
}
