package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingAddress is an optional address attached to a receipt. The email,
// when present, is forwarded to the fiscal authority so it can mail the
// invoice to the customer.
type BillingAddress struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string    `gorm:"size:255" json:"first_name"`
	LastName  string    `gorm:"size:255" json:"last_name"`
	Company   string    `gorm:"size:255" json:"company"`
	Street    string    `gorm:"size:255" json:"street"`
	City      string    `gorm:"size:255" json:"city"`
	Zip       string    `gorm:"size:20" json:"zip"`
	Country   string    `gorm:"size:10" json:"country"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new billing address
func (a *BillingAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillingAddress model
func (BillingAddress) TableName() string {
	return "billing_addresses"
}

// ShippingAddress mirrors BillingAddress for deliveries.
type ShippingAddress struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string    `gorm:"size:255" json:"first_name"`
	LastName  string    `gorm:"size:255" json:"last_name"`
	Company   string    `gorm:"size:255" json:"company"`
	Street    string    `gorm:"size:255" json:"street"`
	City      string    `gorm:"size:255" json:"city"`
	Zip       string    `gorm:"size:20" json:"zip"`
	Country   string    `gorm:"size:10" json:"country"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new shipping address
func (a *ShippingAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShippingAddress model
func (ShippingAddress) TableName() string {
	return "shipping_addresses"
}
