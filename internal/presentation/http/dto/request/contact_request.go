package request

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	TaxID   *string `json:"tax_id" binding:"omitempty,max=50"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// SupplierRequest represents a supplier create or update request
type SupplierRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
	Type    string  `json:"type" binding:"omitempty,oneof=publisher distributor wholesaler"`
	TaxID   *string `json:"tax_id" binding:"omitempty,max=50"`
	Notes   *string `json:"notes"`
}
