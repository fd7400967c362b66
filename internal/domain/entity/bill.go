package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill is a submitted invoice. The id is the one assigned when the bill was
// finalized, so submitting the same bill twice collides on the primary key.
type Bill struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	CreatedBy         uuid.UUID       `gorm:"type:uuid;not null;index" json:"created_by"`
	CustomerName      string          `gorm:"size:255" json:"customer_name"`
	Mobile            string          `gorm:"size:50" json:"mobile"`
	VehicleNumber     string          `gorm:"size:50;not null;index" json:"vehicle_number"`
	Company           string          `gorm:"size:255" json:"company"`
	Status            enum.BillStatus `gorm:"default:0;index" json:"status"`
	PaymentMethod     string          `gorm:"size:20;not null" json:"payment_method"`
	SubTotal          int64           `gorm:"not null" json:"-"` // Stored in paise
	ItemDiscountTotal int64           `gorm:"not null" json:"-"` // Stored in paise
	OverallDiscount   int64           `gorm:"not null" json:"-"` // Basis points
	Total             int64           `gorm:"not null" json:"-"` // Stored in paise
	Notes             string          `gorm:"type:text" json:"notes"`
	BilledAt          time.Time       `gorm:"not null;index" json:"billed_at"`
	VoidedAt          *time.Time      `json:"voided_at,omitempty"`
	VoidedBy          *uuid.UUID      `gorm:"type:uuid" json:"voided_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Bill) TableName() string {
	return "bills"
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		SubTotal          float64 `json:"sub_total"`
		ItemDiscountTotal float64 `json:"item_discount_total"`
		OverallDiscount   float64 `json:"overall_discount"`
		Total             float64 `json:"total"`
	}{
		Alias:             Alias(b),
		SubTotal:          billing.Money(b.SubTotal).Major(),
		ItemDiscountTotal: billing.Money(b.ItemDiscountTotal).Major(),
		OverallDiscount:   billing.Percent(b.OverallDiscount).Float(),
		Total:             billing.Money(b.Total).Major(),
	})
}

// IsVoid reports whether the bill has been voided
func (b *Bill) IsVoid() bool {
	return b.Status == enum.BillStatusVoid
}

// Split returns product sales and service sales (custom lines count as
// services)
func (b *Bill) Split() (products, services int64) {
	for _, item := range b.Items {
		if item.Kind == billing.KindProduct.String() {
			products += item.LineTotal
		} else {
			services += item.LineTotal
		}
	}
	return products, services
}

// BillItem is one persisted line of a bill
type BillItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BillID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"bill_id"`
	Position    int        `gorm:"not null" json:"position"`
	Kind        string     `gorm:"size:20;not null" json:"kind"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ServiceID   *uuid.UUID `gorm:"type:uuid;index" json:"service_id,omitempty"`
	Code        string     `gorm:"size:100" json:"code"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	UnitPrice   int64      `gorm:"not null" json:"-"`
	UnitCost    int64      `gorm:"default:0" json:"-"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	Discount    int64      `gorm:"default:0" json:"-"`
	LineTotal   int64      `gorm:"not null" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

func (BillItem) TableName() string {
	return "bill_items"
}

func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Discount  float64 `json:"discount"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(bi),
		UnitPrice: billing.Money(bi.UnitPrice).Major(),
		Discount:  billing.Percent(bi.Discount).Float(),
		LineTotal: billing.Money(bi.LineTotal).Major(),
	})
}

// Profit is the line total less the cost of goods, zero cost for custom lines
func (bi *BillItem) Profit() int64 {
	return bi.LineTotal - bi.UnitCost*int64(bi.Quantity)
}

// NewBillFromDomain maps a finalized bill onto its persisted form. Catalog
// lines must carry uuid ids.
func NewBillFromDomain(b *billing.Bill, createdBy uuid.UUID) (*Bill, error) {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return nil, fmt.Errorf("bill id %q: %w", b.ID, err)
	}

	bill := &Bill{
		ID:                id,
		CreatedBy:         createdBy,
		CustomerName:      b.Customer.Name,
		Mobile:            b.Customer.Mobile,
		VehicleNumber:     b.Customer.VehicleNumber,
		Company:           b.Customer.Company,
		Status:            enum.BillStatusPaid,
		PaymentMethod:     b.PaymentMethod.String(),
		SubTotal:          int64(b.SubTotal),
		ItemDiscountTotal: int64(b.ItemDiscountTotal),
		OverallDiscount:   int64(b.OverallDiscountPercent),
		Total:             int64(b.GrandTotal),
		Notes:             b.Notes,
		BilledAt:          b.CreatedAt,
		Items:             make([]BillItem, 0, len(b.Items)),
	}

	for i, line := range b.Items {
		item := BillItem{
			BillID:      id,
			Position:    i,
			Kind:        line.Kind.String(),
			Code:        line.Code,
			Name:        line.Name,
			Description: line.Description,
			UnitPrice:   int64(line.UnitPrice),
			Quantity:    line.Quantity,
			Discount:    int64(line.DiscountPercent),
			LineTotal:   int64(line.LineTotal),
		}
		switch line.Kind {
		case billing.KindProduct, billing.KindService:
			ref, err := uuid.Parse(line.ID)
			if err != nil {
				return nil, fmt.Errorf("line %d: catalog id %q: %w", i+1, line.ID, err)
			}
			if line.Kind == billing.KindProduct {
				item.ProductID = &ref
			} else {
				item.ServiceID = &ref
			}
		}
		bill.Items = append(bill.Items, item)
	}
	return bill, nil
}

// ToDomain rebuilds the finalized bill, e.g. for receipts and archiving
func (b *Bill) ToDomain() *billing.Bill {
	out := &billing.Bill{
		ID:        b.ID.String(),
		CreatedAt: b.BilledAt,
		Customer: billing.Customer{
			Name:          b.CustomerName,
			Mobile:        b.Mobile,
			VehicleNumber: b.VehicleNumber,
			Company:       b.Company,
		},
		SubTotal:               billing.Money(b.SubTotal),
		ItemDiscountTotal:      billing.Money(b.ItemDiscountTotal),
		OverallDiscountPercent: billing.Percent(b.OverallDiscount),
		GrandTotal:             billing.Money(b.Total),
		Notes:                  b.Notes,
		Items:                  make([]billing.LineItem, 0, len(b.Items)),
	}
	if pm, err := billing.ParsePaymentMethod(b.PaymentMethod); err == nil {
		out.PaymentMethod = pm
	}
	for _, item := range b.Items {
		kind, _ := billing.ParseKind(item.Kind)
		id := "0"
		switch {
		case item.ProductID != nil:
			id = item.ProductID.String()
		case item.ServiceID != nil:
			id = item.ServiceID.String()
		}
		out.Items = append(out.Items, billing.LineItem{
			ID:              id,
			Kind:            kind,
			Code:            item.Code,
			Name:            item.Name,
			Description:     item.Description,
			UnitPrice:       billing.Money(item.UnitPrice),
			Quantity:        item.Quantity,
			DiscountPercent: billing.Percent(item.Discount),
			LineTotal:       billing.Money(item.LineTotal),
		})
	}
	return out
}
