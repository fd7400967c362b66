package billing

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Bill is a finalized invoice. A Bill never shares its item slice with the
// draft it came from.
type Bill struct {
	ID                     string
	CreatedAt              time.Time
	Customer               Customer
	Items                  []LineItem
	SubTotal               Money
	ItemDiscountTotal      Money
	OverallDiscountPercent Percent
	GrandTotal             Money
	PaymentMethod          PaymentMethod
	Notes                  string
}

// Totals recomputes the bill figures from its items.
func (b *Bill) Totals() Totals {
	return ComputeTotals(b.Items, b.OverallDiscountPercent)
}

// Clone returns a deep copy.
func (b *Bill) Clone() *Bill {
	c := *b
	c.Items = slices.Clone(b.Items)
	return &c
}

// Validate checks a bill received from outside the builder: every line must
// be well formed and every stated total must match the figures derived from
// the lines.
func (b *Bill) Validate() error {
	if len(b.Items) == 0 {
		return newError(ErrEmptyBill, "Add at least one item to the bill")
	}
	if strings.TrimSpace(b.Customer.VehicleNumber) == "" {
		return newError(ErrMissingVehicleNumber, "Vehicle number is required")
	}
	if !b.OverallDiscountPercent.Valid() {
		return invalidDiscount()
	}
	for i, item := range b.Items {
		if err := checkLimits(item.UnitPrice, item.Quantity); err != nil {
			return newError(err.Kind, "Line %d: %s", i+1, err.Message)
		}
		switch {
		case !item.DiscountPercent.Valid():
			return newError(ErrInvalidDiscount, "Line %d: discount must be between 0 and 100", i+1)
		case strings.TrimSpace(item.Name) == "":
			return newError(ErrInvalidInput, "Line %d: name is required", i+1)
		}
		if item.LineTotal != applyDiscount(item.Gross(), item.DiscountPercent) {
			return newError(ErrTotalsMismatch, "Line %d total does not match its price, quantity and discount", i+1)
		}
	}

	t := b.Totals()
	if t.SubTotal != b.SubTotal || t.GrandTotal != b.GrandTotal {
		return newError(ErrTotalsMismatch, "Bill totals do not match line items")
	}
	b.ItemDiscountTotal = t.ItemDiscountTotal
	return nil
}

type wireBill struct {
	ID            string        `json:"id,omitempty"`
	Date          time.Time     `json:"date"`
	Customer      Customer      `json:"customer"`
	Items         []LineItem    `json:"items"`
	SubTotal      Money         `json:"subTotal"`
	Discount      Percent       `json:"discount"`
	Total         Money         `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes"`
}

// MarshalJSON produces the flat submission shape consumed by the bill store.
func (b Bill) MarshalJSON() ([]byte, error) {
	items := b.Items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(wireBill{
		ID:            b.ID,
		Date:          b.CreatedAt,
		Customer:      b.Customer,
		Items:         items,
		SubTotal:      b.SubTotal,
		Discount:      b.OverallDiscountPercent,
		Total:         b.GrandTotal,
		PaymentMethod: b.PaymentMethod,
		Notes:         b.Notes,
	})
}

func (b *Bill) UnmarshalJSON(data []byte) error {
	var w wireBill
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*b = Bill{
		ID:                     w.ID,
		CreatedAt:              w.Date,
		Customer:               w.Customer.normalized(),
		Items:                  w.Items,
		SubTotal:               w.SubTotal,
		OverallDiscountPercent: w.Discount,
		GrandTotal:             w.Total,
		PaymentMethod:          w.PaymentMethod,
		Notes:                  w.Notes,
	}
	var post Money
	for _, item := range b.Items {
		post += item.LineTotal
	}
	b.ItemDiscountTotal = b.SubTotal - post
	return nil
}

// Split returns the post-discount line totals of catalog products and of
// everything else (services and custom charges).
func (b *Bill) Split() (products, services Money) {
	for _, item := range b.Items {
		if item.Kind == KindProduct {
			products += item.LineTotal
		} else {
			services += item.LineTotal
		}
	}
	return products, services
}
