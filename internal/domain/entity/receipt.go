package entity

import (
	"strings"
	"time"

	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StornoNoteMarker prefixes the internal note of a reversal receipt and
// references the original invoice number. Receipts flagged this way at
// creation time do not get a ledger transaction through the generic create
// path; the reversal flow books its own negated transaction instead.
const StornoNoteMarker = "STORNO of "

// Receipt represents one sale or one reversal. The invoice number starts as
// a locally generated placeholder and is overwritten in place once the
// fiscal authority responds with the legal number and signatures.
type Receipt struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber      string             `gorm:"size:100;unique;not null" json:"invoice_number"`
	Status             enum.ReceiptStatus `gorm:"size:30;default:'RACUN'" json:"status"`
	InvoiceType        string             `gorm:"size:30;default:'RAČUN'" json:"invoice_type"`
	PaymentType        enum.PaymentType   `gorm:"size:30;not null" json:"payment_type"`
	WebshopOrderNumber *string            `gorm:"size:100" json:"webshop_order_number,omitempty"`
	UserID             uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Brutto             float64            `gorm:"not null;default:0" json:"brutto"`
	Netto              float64            `gorm:"not null;default:0" json:"netto"`
	TaxValue           float64            `gorm:"not null;default:0" json:"tax_value"`
	Currency           string             `gorm:"size:10;default:'EUR'" json:"currency"`
	TaxesIncluded      bool               `gorm:"default:false" json:"taxes_included"`
	JIR                *string            `gorm:"size:100" json:"jir,omitempty"`
	ZKI                *string            `gorm:"size:100" json:"zki,omitempty"`
	InvoiceDate        *time.Time         `json:"invoice_date,omitempty"`
	DueDate            *time.Time         `json:"due_date,omitempty"`
	ValidTo            *time.Time         `json:"valid_to,omitempty"`
	BillingAddressID   *uuid.UUID         `gorm:"type:uuid" json:"billing_address_id,omitempty"`
	ShippingAddressID  *uuid.UUID         `gorm:"type:uuid" json:"shipping_address_id,omitempty"`
	CustomerLocale     string             `gorm:"size:10;default:'HR'" json:"customer_locale"`
	InternalNote       *string            `gorm:"type:text" json:"internal_note,omitempty"`
	DiscountValue      float64            `gorm:"default:0" json:"discount_value"`
	ShippingCost       float64            `gorm:"default:0" json:"shipping_cost"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Relationships
	User           User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items          []ReceiptItem   `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
	BillingAddress *BillingAddress `gorm:"foreignKey:BillingAddressID" json:"billing_address,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// IsStornoFlagged reports whether the receipt was created as a reversal,
// signalled by the storno marker in the internal note.
func (r *Receipt) IsStornoFlagged() bool {
	return r.InternalNote != nil && strings.Contains(*r.InternalNote, strings.TrimSuffix(StornoNoteMarker, " "))
}

// Fiscalized reports whether the receipt carries fiscal proof.
func (r *Receipt) Fiscalized() bool {
	return r.JIR != nil && *r.JIR != ""
}

// ReceiptItem is a line on a receipt. Items are created atomically with
// their receipt and never mutated independently; edits replace the whole
// item set.
type ReceiptItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ArticleID   *uuid.UUID `gorm:"type:uuid;index" json:"article_id,omitempty"`
	Name        string     `gorm:"size:255" json:"name"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	LineItemID  *string    `gorm:"size:100" json:"line_item_id,omitempty"`
	Quantity    int        `gorm:"not null;default:1" json:"quantity"`
	Price       float64    `gorm:"not null;default:0" json:"price"`
	TaxRate     float64    `gorm:"not null;default:0" json:"tax_rate"`
	Unit        string     `gorm:"size:50" json:"unit"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relationships
	Receipt Receipt  `gorm:"foreignKey:ReceiptID" json:"-"`
	Article *Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt item
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
