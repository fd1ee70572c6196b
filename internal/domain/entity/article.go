package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article represents a sellable item. Articles referenced by receipt items
// are never deleted, only deactivated via Active.
type Article struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	ProductCode string         `gorm:"size:100" json:"product_code"`
	KpdCode     string         `gorm:"size:100" json:"kpd_code"`
	Price       float64        `gorm:"not null;default:0" json:"price"`
	TaxRate     float64        `gorm:"not null;default:0" json:"tax_rate"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Unit        string         `gorm:"size:50" json:"unit"`
	Active      bool           `gorm:"default:true" json:"active"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new article
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// Category groups articles; deactivating a category hides its articles
// from non-admin listings.
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Articles []Article `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
