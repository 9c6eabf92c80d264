package request

// CreateItemRequest represents an inventory item creation request
type CreateItemRequest struct {
	SKU                 string   `json:"sku" binding:"required,min=1,max=100"`
	Name                string   `json:"name" binding:"required,min=1,max=255"`
	Description         *string  `json:"description"`
	Price               float64  `json:"price" binding:"min=0"`
	TaxRate             float64  `json:"tax_rate" binding:"min=0,max=100"`
	DefaultDiscountRate float64  `json:"default_discount_rate" binding:"min=0,max=100"`
	Category            *string  `json:"category" binding:"omitempty,max=100"`
	Unit                string   `json:"unit" binding:"omitempty,max=20"`
	StockQuantity       int      `json:"stock_quantity" binding:"min=0"`
	LowStockAlert       int      `json:"low_stock_alert" binding:"min=0"`
	SizeMMLength        *float64 `json:"size_mm_length"`
	SizeMMWidth         *float64 `json:"size_mm_width"`
	SizeMMHeight        *float64 `json:"size_mm_height"`
	SizeInchesLength    *float64 `json:"size_inches_length"`
	SizeInchesWidth     *float64 `json:"size_inches_width"`
	SizeInchesHeight    *float64 `json:"size_inches_height"`
	Material            *string  `json:"material" binding:"omitempty,max=100"`
	Finish              *string  `json:"finish" binding:"omitempty,max=100"`
	Color               *string  `json:"color" binding:"omitempty,max=50"`
	Weight              *float64 `json:"weight"`
}

// UpdateItemRequest represents an inventory item update request
type UpdateItemRequest struct {
	SKU                 *string  `json:"sku" binding:"omitempty,min=1,max=100"`
	Name                *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description         *string  `json:"description"`
	Price               *float64 `json:"price" binding:"omitempty,min=0"`
	TaxRate             *float64 `json:"tax_rate" binding:"omitempty,min=0,max=100"`
	DefaultDiscountRate *float64 `json:"default_discount_rate" binding:"omitempty,min=0,max=100"`
	Category            *string  `json:"category" binding:"omitempty,max=100"`
	Unit                *string  `json:"unit" binding:"omitempty,max=20"`
	StockQuantity       *int     `json:"stock_quantity" binding:"omitempty,min=0"`
	LowStockAlert       *int     `json:"low_stock_alert" binding:"omitempty,min=0"`
	IsActive            *bool    `json:"is_active"`
}

// ItemFilterRequest represents inventory item filter parameters
type ItemFilterRequest struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
