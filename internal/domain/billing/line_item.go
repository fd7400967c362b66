package billing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CustomCode is the code carried by every ad-hoc line item.
const CustomCode = "CUSTOM"

// customItemID is the id given to custom lines; they have no catalog row.
const customItemID = "0"

// MaxQuantity is the most units a single line can carry.
const MaxQuantity = 9999

// LineItem is one priced row of a bill. LineTotal is derived from the other
// fields and is recomputed by every mutation.
type LineItem struct {
	ID              string
	Kind            Kind
	Code            string
	Name            string
	Description     string
	UnitPrice       Money
	Quantity        int
	DiscountPercent Percent
	LineTotal       Money

	// quantity on hand reported by the catalog when the product was last added
	stock int
}

// Gross is unitPrice * quantity before any discount. Lines held by a Builder
// or accepted by Bill.Validate are within MaxUnitPrice and MaxQuantity, so
// the product always fits.
func (l LineItem) Gross() Money {
	gross, ok := l.UnitPrice.Times(l.Quantity)
	if !ok {
		panic(fmt.Sprintf("billing: line %q gross overflows (%s x %d)", l.Name, l.UnitPrice, l.Quantity))
	}
	return gross
}

// checkLimits rejects a quantity or unit price outside what a line may hold.
func checkLimits(price Money, quantity int) *Error {
	switch {
	case quantity < 1:
		return newError(ErrInvalidQuantity, "Quantity must be at least 1")
	case quantity > MaxQuantity:
		return newError(ErrInvalidQuantity, "Quantity cannot exceed %d", MaxQuantity)
	case price <= 0:
		return newError(ErrInvalidInput, "Price must be greater than zero")
	case price > MaxUnitPrice:
		return newError(ErrInvalidInput, "Price cannot exceed %s", MaxUnitPrice)
	}
	return nil
}

// Stocked reports whether the line is subject to stock checks.
func (l LineItem) Stocked() bool {
	return l.Kind == KindProduct
}

func (l *LineItem) recompute() {
	l.LineTotal = applyDiscount(l.Gross(), l.DiscountPercent)
}

func (l LineItem) matches(id string, kind Kind) bool {
	return l.Kind != KindCustom && l.Kind == kind && l.ID == id
}

type wireItem struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Price       Money   `json:"price"`
	Quantity    int     `json:"quantity"`
	Discount    Percent `json:"discount"`
	Total       Money   `json:"total"`
}

func (l LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireItem{
		ID:          l.ID,
		Type:        l.Kind.String(),
		Name:        l.Name,
		Code:        l.Code,
		Description: l.Description,
		Price:       l.UnitPrice,
		Quantity:    l.Quantity,
		Discount:    l.DiscountPercent,
		Total:       l.LineTotal,
	})
}

// UnmarshalJSON reads the wire form. Older clients sent custom charges as
// services with the CUSTOM code; those decode as custom items.
func (l *LineItem) UnmarshalJSON(data []byte) error {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, err := ParseKind(strings.ToLower(w.Type))
	if err != nil {
		return err
	}
	if kind == KindService && w.Code == CustomCode {
		kind = KindCustom
	}
	*l = LineItem{
		ID:              w.ID,
		Kind:            kind,
		Code:            w.Code,
		Name:            w.Name,
		Description:     w.Description,
		UnitPrice:       w.Price,
		Quantity:        w.Quantity,
		DiscountPercent: w.Discount,
		LineTotal:       w.Total,
	}
	return nil
}
