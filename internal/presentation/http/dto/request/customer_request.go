package request

// CustomerFilterRequest represents customer list filters
type CustomerFilterRequest struct {
	Search    string `form:"search"`
	NamedOnly bool   `form:"named_only"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// UpdateCustomerRequest corrects a customer's contact details
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Mobile  *string `json:"mobile" binding:"omitempty,max=20"`
	Company *string `json:"company" binding:"omitempty,max=255"`
}
