package entity

import (
	"encoding/json"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a workshop offering billed per job (wash, coating, alignment).
// Services carry no stock.
type Service struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Code        string         `gorm:"size:100;unique;not null" json:"code"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Price       int64          `gorm:"default:0" json:"-"`
	Cost        int64          `gorm:"default:0" json:"-"`
	Discount    int64          `gorm:"default:0" json:"-"`
	CreatedBy   *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	EditedBy    *string        `gorm:"size:255" json:"edited_by,omitempty"`
	EditedAt    *time.Time     `json:"edited_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Service) TableName() string {
	return "services"
}

func (s Service) MarshalJSON() ([]byte, error) {
	type Alias Service
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Cost     float64 `json:"cost"`
		Discount float64 `json:"discount"`
	}{
		Alias:    Alias(s),
		Price:    billing.Money(s.Price).Major(),
		Cost:     billing.Money(s.Cost).Major(),
		Discount: billing.Percent(s.Discount).Float(),
	})
}

func (s *Service) CatalogEntry() billing.ServiceEntry {
	entry := billing.ServiceEntry{
		ID:              s.ID.String(),
		Code:            s.Code,
		Name:            s.Name,
		Price:           billing.Money(s.Price),
		DefaultDiscount: billing.Percent(s.Discount),
	}
	if s.Description != nil {
		entry.Description = *s.Description
	}
	return entry
}
