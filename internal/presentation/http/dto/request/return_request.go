package request

import "github.com/google/uuid"

// ReturnItemRequest selects one sale line for return
type ReturnItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Reason    string    `json:"reason" binding:"required,min=1"`
}

// ExchangeItemRequest is one line of new merchandise in an exchange
type ExchangeItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateReturnRequest represents a return or exchange submission
type CreateReturnRequest struct {
	SaleID        uuid.UUID             `json:"sale_id" binding:"required"`
	ReturnType    string                `json:"return_type" binding:"required,oneof=refund exchange"`
	Items         []ReturnItemRequest   `json:"items" binding:"required,min=1,dive"`
	ExchangeItems []ExchangeItemRequest `json:"exchange_items" binding:"omitempty,dive"`
	RefundMethod  string                `json:"refund_method" binding:"required,oneof=cash card store_credit"`
	Notes         string                `json:"notes" binding:"required,min=1"`
}

// ReturnFilterRequest represents return filter parameters
type ReturnFilterRequest struct {
	Search     string `form:"search"`
	ReturnType string `form:"return_type"`
	SaleID     string `form:"sale_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
