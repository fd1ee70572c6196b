package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesReport is a daily sales summary created by admins, either manually
// or aggregated from the day's receipts.
type SalesReport struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date             time.Time `gorm:"type:date;not null" json:"date"`
	TotalSalesAmount float64   `gorm:"not null;default:0" json:"total_sales_amount"`
	InvoiceCount     int       `gorm:"not null;default:0" json:"invoice_count"`
	Description      *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sales report
func (r *SalesReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesReport model
func (SalesReport) TableName() string {
	return "sales_reports"
}
