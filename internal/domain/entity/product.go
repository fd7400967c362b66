package entity

import (
	"encoding/json"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a stocked item sold over the counter (oil, filters, wipers ...)
type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:100;unique;not null" json:"code"`
	Quantity  int            `gorm:"default:0" json:"quantity"`
	Price     int64          `gorm:"default:0" json:"-"` // Stored in paise
	Cost      int64          `gorm:"default:0" json:"-"` // Stored in paise
	Discount  int64          `gorm:"default:0" json:"-"` // Default discount, basis points
	CreatedBy *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	EditedBy  *string        `gorm:"size:255" json:"edited_by,omitempty"`
	EditedAt  *time.Time     `json:"edited_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// MarshalJSON converts stored paise and basis points to decimals
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Cost     float64 `json:"cost"`
		Discount float64 `json:"discount"`
	}{
		Alias:    Alias(p),
		Price:    billing.Money(p.Price).Major(),
		Cost:     billing.Money(p.Cost).Major(),
		Discount: billing.Percent(p.Discount).Float(),
	})
}

// IsLowStock reports whether the quantity on hand is below threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.Quantity < threshold
}

// CatalogEntry converts the product into the billing catalog form
func (p *Product) CatalogEntry() billing.ProductEntry {
	return billing.ProductEntry{
		ID:              p.ID.String(),
		Code:            p.Code,
		Name:            p.Name,
		Price:           billing.Money(p.Price),
		Stock:           p.Quantity,
		DefaultDiscount: billing.Percent(p.Discount),
	}
}
