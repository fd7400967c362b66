package request

// AddItemRequest adds a catalog product or service to a draft
type AddItemRequest struct {
	Kind string `json:"kind" binding:"required,oneof=product service"`
	ID   string `json:"id" binding:"required"`
}

// AddCustomItemRequest adds a free-text line to a draft
type AddCustomItemRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Price       float64 `json:"price" binding:"gt=0,max=10000000"`
	Description string  `json:"description" binding:"max=1000"`
}

// QuantityRequest sets a line quantity
type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=9999"`
}

// DiscountRequest sets a line or overall discount percentage
type DiscountRequest struct {
	Discount float64 `json:"discount" binding:"min=0,max=100"`
}

// CustomerRequest is the customer part of a bill header
type CustomerRequest struct {
	Name          string `json:"name" binding:"max=255"`
	Mobile        string `json:"mobile" binding:"max=20"`
	VehicleNumber string `json:"vehicleNumber" binding:"omitempty,vehicle_no"`
	Company       string `json:"company" binding:"max=255"`
}

// HeaderRequest sets the bill header of a draft
type HeaderRequest struct {
	Customer      CustomerRequest `json:"customer"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,payment_method"`
	Notes         string          `json:"notes" binding:"max=1000"`
}
