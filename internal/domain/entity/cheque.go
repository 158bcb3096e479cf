package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// Cheque represents a cheque received from a customer or issued to a supplier
type Cheque struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	LocationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"location_id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SupplierID *uuid.UUID        `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	ChequeNo   string            `gorm:"size:100;not null" json:"cheque_no"`
	BankName   string            `gorm:"size:255" json:"bank_name"`
	Amount     int64             `gorm:"not null" json:"-"` // Stored in cents
	IssueDate  time.Time         `gorm:"type:date;not null" json:"issue_date"`
	DueDate    *time.Time        `gorm:"type:date" json:"due_date,omitempty"`
	Status     enum.ChequeStatus `gorm:"size:20;default:'pending'" json:"status"`
	Notes      *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Location Location  `gorm:"foreignKey:LocationID" json:"-"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Cheque) MarshalJSON() ([]byte, error) {
	type Alias Cheque
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Amount: float64(c.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new cheque
func (c *Cheque) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Cheque model
func (Cheque) TableName() string {
	return "cheques"
}
