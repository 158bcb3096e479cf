package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// StockTransfer represents a movement of stock between two locations
type StockTransfer struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	TransferNo     string              `gorm:"size:100;unique;not null" json:"transfer_no"`
	FromLocationID uuid.UUID           `gorm:"type:uuid;not null;index" json:"from_location_id"`
	ToLocationID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"to_location_id"`
	UserID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	Status         enum.TransferStatus `gorm:"default:0" json:"status"`
	Notes          *string             `gorm:"type:text" json:"notes,omitempty"`
	ReceivedAt     *time.Time          `json:"received_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	FromLocation Location            `gorm:"foreignKey:FromLocationID" json:"from_location,omitempty"`
	ToLocation   Location            `gorm:"foreignKey:ToLocationID" json:"to_location,omitempty"`
	User         User                `gorm:"foreignKey:UserID" json:"-"`
	Items        []StockTransferItem `gorm:"foreignKey:TransferID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transfer
func (t *StockTransfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransfer model
func (StockTransfer) TableName() string {
	return "stock_transfers"
}

// StockTransferItem represents one product line in a transfer
type StockTransferItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TransferID uuid.UUID      `gorm:"type:uuid;not null;index" json:"transfer_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Transfer StockTransfer `gorm:"foreignKey:TransferID" json:"-"`
	Product  Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transfer item
func (ti *StockTransferItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransferItem model
func (StockTransferItem) TableName() string {
	return "stock_transfer_items"
}
