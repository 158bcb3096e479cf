package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// Return represents a committed refund or exchange against an original sale
type Return struct {
	ID                uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	LocationID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"location_id"`
	UserID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"sale_id"`
	ReturnNo          string            `gorm:"size:100;unique;not null" json:"return_no"`
	ReturnType        enum.ReturnType   `gorm:"size:20;not null" json:"return_type"`
	ReturnStatus      enum.ReturnStatus `gorm:"size:20;not null" json:"return_status"`
	TotalRefund       int64             `gorm:"default:0" json:"-"` // Stored in cents
	TotalExchange     int64             `gorm:"default:0" json:"-"` // Stored in cents
	BalanceAdjustment int64             `gorm:"default:0" json:"-"` // Stored in cents, negative = refund owed
	RefundMethod      string            `gorm:"size:50" json:"refund_method"`
	Notes             string            `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Location        Location         `gorm:"foreignKey:LocationID" json:"-"`
	User            User             `gorm:"foreignKey:UserID" json:"-"`
	Sale            Sale             `gorm:"foreignKey:SaleID" json:"-"`
	Details         []ReturnDetail   `gorm:"foreignKey:ReturnID" json:"details,omitempty"`
	ExchangeDetails []ExchangeDetail `gorm:"foreignKey:ReturnID" json:"exchange_details,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Return) MarshalJSON() ([]byte, error) {
	type Alias Return
	return json.Marshal(&struct {
		Alias
		TotalRefund       float64 `json:"total_refund"`
		TotalExchange     float64 `json:"total_exchange"`
		BalanceAdjustment float64 `json:"balance_adjustment"`
	}{
		Alias:             Alias(r),
		TotalRefund:       float64(r.TotalRefund) / 100,
		TotalExchange:     float64(r.TotalExchange) / 100,
		BalanceAdjustment: float64(r.BalanceAdjustment) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new return
func (r *Return) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Return model
func (Return) TableName() string {
	return "returns"
}

// ReturnDetail represents one returned line item
type ReturnDetail struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents
	Reason    string         `gorm:"type:text;not null" json:"reason"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Return  Return  `gorm:"foreignKey:ReturnID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (rd ReturnDetail) MarshalJSON() ([]byte, error) {
	type Alias ReturnDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(rd),
		UnitPrice: float64(rd.UnitPrice) / 100,
		Total:     float64(rd.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new return detail
func (rd *ReturnDetail) BeforeCreate(tx *gorm.DB) error {
	if rd.ID == uuid.Nil {
		rd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnDetail model
func (ReturnDetail) TableName() string {
	return "return_details"
}

// ExchangeDetail represents one line of new merchandise given in an exchange
type ExchangeDetail struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Return  Return  `gorm:"foreignKey:ReturnID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ed ExchangeDetail) MarshalJSON() ([]byte, error) {
	type Alias ExchangeDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(ed),
		UnitPrice: float64(ed.UnitPrice) / 100,
		Total:     float64(ed.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new exchange detail
func (ed *ExchangeDetail) BeforeCreate(tx *gorm.DB) error {
	if ed.ID == uuid.Nil {
		ed.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExchangeDetail model
func (ExchangeDetail) TableName() string {
	return "exchange_details"
}
