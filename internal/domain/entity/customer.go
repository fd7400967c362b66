package entity

import (
	"encoding/json"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a vehicle owner, keyed by vehicle registration number
type Customer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255" json:"name"`
	Mobile        string         `gorm:"size:50;index" json:"mobile"`
	VehicleNumber string         `gorm:"size:50;uniqueIndex;not null" json:"vehicle_number"`
	Company       string         `gorm:"size:255" json:"company"`
	VisitCount    int            `gorm:"default:0" json:"visit_count"`
	TotalSpent    int64          `gorm:"default:0" json:"-"` // Stored in paise
	LastVisitAt   *time.Time     `json:"last_visit_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Bills []Bill `gorm:"foreignKey:CustomerID" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}

func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		TotalSpent float64 `json:"total_spent"`
	}{
		Alias:      Alias(c),
		TotalSpent: billing.Money(c.TotalSpent).Major(),
	})
}

// MergeContact copies the non-empty contact fields of a bill header onto the
// customer. A blank field on the bill never erases what is already known.
func (c *Customer) MergeContact(h billing.Customer) {
	if h.Name != "" {
		c.Name = h.Name
	}
	if h.Mobile != "" {
		c.Mobile = h.Mobile
	}
	if h.Company != "" {
		c.Company = h.Company
	}
}
