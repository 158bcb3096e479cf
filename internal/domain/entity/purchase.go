package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// Purchase represents a stock purchase from a supplier
type Purchase struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	LocationID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"location_id"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	SupplierID  *uuid.UUID          `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Date        time.Time           `gorm:"type:date;not null" json:"date"`
	PurchaseNo  string              `gorm:"size:100;unique;not null" json:"purchase_no"`
	Status      enum.PurchaseStatus `gorm:"default:0" json:"status"`
	TotalAmount int64               `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Location Location         `gorm:"foreignKey:LocationID" json:"-"`
	User     User             `gorm:"foreignKey:UserID" json:"-"`
	Supplier *Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Details  []PurchaseDetail `gorm:"foreignKey:PurchaseID" json:"details,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Purchase) MarshalJSON() ([]byte, error) {
	type Alias Purchase
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(p),
		TotalAmount: float64(p.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseDetail represents a line item in a purchase
type PurchaseDetail struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitCost   int64          `gorm:"not null" json:"-"` // Stored in cents
	Total      int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (pd PurchaseDetail) MarshalJSON() ([]byte, error) {
	type Alias PurchaseDetail
	return json.Marshal(&struct {
		Alias
		UnitCost float64 `json:"unit_cost"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(pd),
		UnitCost: float64(pd.UnitCost) / 100,
		Total:    float64(pd.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase detail
func (pd *PurchaseDetail) BeforeCreate(tx *gorm.DB) error {
	if pd.ID == uuid.Nil {
		pd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseDetail model
func (PurchaseDetail) TableName() string {
	return "purchase_details"
}
