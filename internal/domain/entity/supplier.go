package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// Supplier represents a publisher, distributor or wholesaler the store
// buys from
type Supplier struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	LocationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"location_id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string            `gorm:"size:255;not null" json:"name"`
	Email      *string           `gorm:"size:255" json:"email,omitempty"`
	Phone      *string           `gorm:"size:50" json:"phone,omitempty"`
	Address    *string           `gorm:"type:text" json:"address,omitempty"`
	Type       enum.SupplierType `gorm:"size:50;default:'distributor'" json:"type"`
	TaxID      *string           `gorm:"size:50;column:tax_id" json:"tax_id,omitempty"`
	Notes      *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Location  Location   `gorm:"foreignKey:LocationID" json:"-"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Purchases []Purchase `gorm:"foreignKey:SupplierID" json:"-"`
	Cheques   []Cheque   `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
