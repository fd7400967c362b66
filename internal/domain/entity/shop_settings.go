package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShopSettingsID is the primary key of the single settings row
const ShopSettingsID = 1

// ShopSettings holds the shop-wide details printed on receipts and the
// thresholds used by the dashboard
type ShopSettings struct {
	ID                uint       `gorm:"primary_key" json:"-"`
	StoreName         string     `gorm:"size:255;not null" json:"store_name"`
	Address           string     `gorm:"type:text" json:"address"`
	Phone             string     `gorm:"size:50" json:"phone"`
	Email             string     `gorm:"size:255" json:"email"`
	TaxID             string     `gorm:"size:50" json:"tax_id"`
	ReceiptFooter     string     `gorm:"type:text" json:"receipt_footer"`
	CurrencySymbol    string     `gorm:"size:10;default:'Rs.'" json:"currency_symbol"`
	LowStockThreshold int        `gorm:"default:10" json:"low_stock_threshold"`
	UpdatedBy         *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (ShopSettings) TableName() string {
	return "shop_settings"
}
