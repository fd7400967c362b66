package billing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind distinguishes catalog products, catalog services and ad-hoc charges.
type Kind int

const (
	KindProduct Kind = iota + 1
	KindService
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindService:
		return "service"
	case KindCustom:
		return "custom"
	}
	return "unknown"
}

// ParseKind accepts the wire names used by the billing API.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "product", "products":
		return KindProduct, nil
	case "service", "services":
		return KindService, nil
	case "custom":
		return KindCustom, nil
	}
	return 0, fmt.Errorf("unknown item kind %q", s)
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// PaymentMethod is how the customer settled the bill at the counter.
type PaymentMethod int

const (
	PaymentCash PaymentMethod = iota
	PaymentCard
	PaymentUPI
)

func (p PaymentMethod) String() string {
	switch p {
	case PaymentCash:
		return "cash"
	case PaymentCard:
		return "card"
	case PaymentUPI:
		return "upi"
	}
	return "unknown"
}

// ParsePaymentMethod is case-insensitive and accepts the labels shown on the
// billing screen ("Cash", "Card", "UPI").
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentCash, nil
	case "card":
		return PaymentCard, nil
	case "upi":
		return PaymentUPI, nil
	}
	return 0, fmt.Errorf("unknown payment method %q", s)
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
