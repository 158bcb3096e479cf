package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// Sale represents a committed point-of-sale transaction
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	LocationID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"location_id"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SaleDate       time.Time          `gorm:"type:date;not null" json:"sale_date"`
	InvoiceNo      string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	TotalProducts  int                `gorm:"default:0" json:"total_products"`
	SubTotal       int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountType   *enum.DiscountType `gorm:"size:20" json:"discount_type,omitempty"`
	DiscountValue  int64              `gorm:"default:0" json:"-"` // Cents for amount, basis points for percentage
	DiscountAmount int64              `gorm:"default:0" json:"-"` // Stored in cents
	Total          int64              `gorm:"default:0" json:"-"` // Stored in cents
	PaymentMethod  string             `gorm:"size:50" json:"payment_method"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:20;default:'pending'" json:"payment_status"`
	Paid           int64              `gorm:"default:0" json:"-"` // Stored in cents
	ChangeAmount   int64              `gorm:"default:0" json:"-"` // Stored in cents
	Due            int64              `gorm:"default:0" json:"-"` // Stored in cents
	Cancelled      bool               `gorm:"default:false" json:"cancelled"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Location Location     `gorm:"foreignKey:LocationID" json:"-"`
	User     User         `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Details  []SaleDetail `gorm:"foreignKey:SaleID" json:"details,omitempty"`
	Returns  []Return     `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal       float64 `json:"sub_total"`
		DiscountValue  float64 `json:"discount_value"`
		DiscountAmount float64 `json:"discount_amount"`
		Total          float64 `json:"total"`
		Paid           float64 `json:"paid"`
		ChangeAmount   float64 `json:"change_amount"`
		Due            float64 `json:"due"`
	}{
		Alias:          Alias(s),
		SubTotal:       float64(s.SubTotal) / 100,
		DiscountValue:  float64(s.DiscountValue) / 100,
		DiscountAmount: float64(s.DiscountAmount) / 100,
		Total:          float64(s.Total) / 100,
		Paid:           float64(s.Paid) / 100,
		ChangeAmount:   float64(s.ChangeAmount) / 100,
		Due:            float64(s.Due) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total) / 100
}

// SaleDetail represents a line item in a sale
type SaleDetail struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity      int                `gorm:"not null" json:"quantity"`
	UnitPrice     int64              `gorm:"not null" json:"-"` // Stored in cents
	DiscountType  *enum.DiscountType `gorm:"size:20" json:"discount_type,omitempty"`
	DiscountValue int64              `gorm:"default:0" json:"-"` // Stored in cents
	Total         int64              `gorm:"not null" json:"-"`  // Stored in cents
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (sd SaleDetail) MarshalJSON() ([]byte, error) {
	type Alias SaleDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice     float64 `json:"unit_price"`
		DiscountValue float64 `json:"discount_value"`
		Total         float64 `json:"total"`
	}{
		Alias:         Alias(sd),
		UnitPrice:     float64(sd.UnitPrice) / 100,
		DiscountValue: float64(sd.DiscountValue) / 100,
		Total:         float64(sd.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale detail
func (sd *SaleDetail) BeforeCreate(tx *gorm.DB) error {
	if sd.ID == uuid.Nil {
		sd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleDetail model
func (SaleDetail) TableName() string {
	return "sale_details"
}
