package entity

import "github.com/autospa/autospa-api/internal/domain/billing"

// ReceiptHeader holds the shop details printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem is one printed line.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice billing.Money   `json:"unit_price"`
	Discount  billing.Percent `json:"discount"`
	Total     billing.Money   `json:"total"`
}

// Receipt is composed from a submitted bill at print time; it is not stored.
type Receipt struct {
	Header          ReceiptHeader   `json:"header"`
	BillNo          string          `json:"bill_no"`
	Date            string          `json:"date"`
	Cashier         string          `json:"cashier,omitempty"`
	Customer        string          `json:"customer,omitempty"`
	VehicleNumber   string          `json:"vehicle_number"`
	PaymentMethod   string          `json:"payment_method"`
	Items           []ReceiptItem   `json:"items"`
	SubTotal        billing.Money   `json:"sub_total"`
	ItemDiscount    billing.Money   `json:"item_discount"`
	OverallDiscount billing.Percent `json:"overall_discount"`
	OverallAmount   billing.Money   `json:"overall_amount"`
	Total           billing.Money   `json:"total"`
	Currency        string          `json:"currency"`
	Footer          string          `json:"footer,omitempty"`
	Void            bool            `json:"void,omitempty"`
}
