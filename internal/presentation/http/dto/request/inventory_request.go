package request

import "github.com/google/uuid"

// PurchaseItemRequest is one line of a purchase order
type PurchaseItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitCost  float64   `json:"unit_cost" binding:"min=0"`
}

// CreatePurchaseRequest represents a purchase order request
type CreatePurchaseRequest struct {
	SupplierID *uuid.UUID            `json:"supplier_id"`
	Date       string                `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateChequeRequest registers a cheque for tracking
type CreateChequeRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
	SupplierID *uuid.UUID `json:"supplier_id"`
	ChequeNo   string     `json:"cheque_no" binding:"required,max=100"`
	BankName   string     `json:"bank_name" binding:"omitempty,max=255"`
	Amount     float64    `json:"amount" binding:"required,gt=0"`
	IssueDate  string     `json:"issue_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate    *string    `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Notes      *string    `json:"notes"`
}

// UpdateChequeStatusRequest moves a cheque to cleared or bounced
type UpdateChequeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=cleared bounced"`
}

// TransferItemRequest is one product line in a transfer request
type TransferItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateTransferRequest represents a stock transfer request
type CreateTransferRequest struct {
	ToLocationID uuid.UUID             `json:"to_location_id" binding:"required"`
	Items        []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes        *string               `json:"notes"`
}
