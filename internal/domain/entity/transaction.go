package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is an append-only ledger entry mirroring a receipt's monetary
// effect. Exactly one is created per receipt (reversals included, with a
// negated amount); entries are never updated or deleted, which keeps the
// ledger usable as a reconciliation trail independent of receipt mutations.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"receipt,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
