package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Code     string  `json:"code" binding:"omitempty,max=100"`
	Quantity int     `json:"quantity" binding:"min=0"`
	Price    float64 `json:"price" binding:"min=0"`
	Cost     float64 `json:"cost" binding:"min=0"`
	Discount float64 `json:"discount" binding:"min=0,max=100"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Code     *string  `json:"code" binding:"omitempty,min=1,max=100"`
	Quantity *int     `json:"quantity" binding:"omitempty,min=0"`
	Price    *float64 `json:"price" binding:"omitempty,min=0"`
	Cost     *float64 `json:"cost" binding:"omitempty,min=0"`
	Discount *float64 `json:"discount" binding:"omitempty,min=0,max=100"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// CreateServiceRequest represents a service creation request
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Code        string  `json:"code" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Price       float64 `json:"price" binding:"min=0"`
	Cost        float64 `json:"cost" binding:"min=0"`
	Discount    float64 `json:"discount" binding:"min=0,max=100"`
}

// UpdateServiceRequest represents a service update request
type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Code        *string  `json:"code" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Cost        *float64 `json:"cost" binding:"omitempty,min=0"`
	Discount    *float64 `json:"discount" binding:"omitempty,min=0,max=100"`
}

// ListRequest is the common page/search query
type ListRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
