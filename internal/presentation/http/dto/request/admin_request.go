package request

import "github.com/google/uuid"

// CreateUserRequest represents a staff account creation request
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=admin manager cashier"`
}

// UpdateUserRequest represents a staff account update request
type UpdateUserRequest struct {
	FirstName  *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName   *string    `json:"last_name" binding:"omitempty,max=100"`
	Role       *string    `json:"role" binding:"omitempty,oneof=admin manager cashier"`
	IsActive   *bool      `json:"is_active"`
	LocationID *uuid.UUID `json:"location_id"`
}

// LocationRequest represents a store branch create or update request
type LocationRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	TaxID   *string `json:"tax_id" binding:"omitempty,max=50"`
}
