package request

import "github.com/google/uuid"

// SaleItemRequest is one cart line of a checkout request
type SaleItemRequest struct {
	ProductID     uuid.UUID `json:"product_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	DiscountType  *string   `json:"discount_type" binding:"omitempty,oneof=percentage amount"`
	DiscountValue *float64  `json:"discount_value" binding:"omitempty,min=0"`
}

// CreateSaleRequest represents a checkout request
type CreateSaleRequest struct {
	CustomerID          *uuid.UUID        `json:"customer_id"`
	Items               []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	GlobalDiscountType  *string           `json:"global_discount_type" binding:"omitempty,oneof=percentage amount"`
	GlobalDiscountValue *float64          `json:"global_discount_value" binding:"omitempty,min=0"`
	AmountPaid          float64           `json:"amount_paid" binding:"min=0"`
	PaymentMethod       string            `json:"payment_method" binding:"required,oneof=cash card cheque transfer"`
	AllowPartial        bool              `json:"allow_partial"`
}

// PayDueRequest records a payment towards an outstanding balance
type PayDueRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search           string `form:"search"`
	PaymentStatus    string `form:"payment_status"`
	CustomerID       string `form:"customer_id"`
	StartDate        string `form:"start_date"`
	EndDate          string `form:"end_date"`
	IncludeCancelled bool   `form:"include_cancelled"`
	SortBy           string `form:"sort_by"`
	SortOrder        string `form:"sort_order"`
	Page             int    `form:"page"`
	PerPage          int    `form:"per_page"`
}
