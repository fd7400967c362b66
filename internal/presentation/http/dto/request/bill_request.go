package request

// BillFilterRequest represents bill list filters
type BillFilterRequest struct {
	Search        string `form:"search"`
	VehicleNumber string `form:"vehicle_number"`
	PaymentMethod string `form:"payment_method" binding:"omitempty,payment_method"`
	Status        string `form:"status" binding:"omitempty,oneof=paid void"`
	CustomerID    string `form:"customer_id" binding:"omitempty,uuid"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortOrder     string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// ReportRequest selects a report period
type ReportRequest struct {
	Type      string `form:"type"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Limit     int    `form:"limit"`
}
