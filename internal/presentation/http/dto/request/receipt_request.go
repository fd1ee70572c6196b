package request

import "github.com/google/uuid"

// ReceiptItemRequest represents one line of a submitted sale
type ReceiptItemRequest struct {
	ArticleID  *uuid.UUID `json:"article_id"`
	Name       string     `json:"name" binding:"omitempty,max=255"`
	LineItemID *string    `json:"line_item_id"`
	Quantity   int        `json:"quantity" binding:"required,min=1"`
	Price      float64    `json:"price" binding:"required"`
	TaxRate    float64    `json:"tax_rate"`
	Unit       string     `json:"unit" binding:"omitempty,max=50"`
}

// AddressRequest represents a billing or shipping address on a sale
type AddressRequest struct {
	FirstName string  `json:"first_name" binding:"omitempty,max=255"`
	LastName  string  `json:"last_name" binding:"omitempty,max=255"`
	Company   string  `json:"company" binding:"omitempty,max=255"`
	Street    string  `json:"street" binding:"omitempty,max=255"`
	City      string  `json:"city" binding:"omitempty,max=255"`
	Zip       string  `json:"zip" binding:"omitempty,max=20"`
	Country   string  `json:"country" binding:"omitempty,max=10"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

// CreateReceiptRequest represents a sale submission
type CreateReceiptRequest struct {
	PaymentType     string               `json:"payment_type" binding:"required"`
	InvoiceNumber   *string              `json:"invoice_number"`
	Brutto          float64              `json:"brutto" binding:"required"`
	Currency        string               `json:"currency" binding:"omitempty,max=10"`
	InternalNote    *string              `json:"internal_note"`
	DiscountValue   float64              `json:"discount_value"`
	ShippingCost    float64              `json:"shipping_cost"`
	BillingAddress  *AddressRequest      `json:"billing_address"`
	ShippingAddress *AddressRequest      `json:"shipping_address"`
	Items           []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateReceiptRequest represents a full receipt update
type UpdateReceiptRequest struct {
	PaymentType   *string              `json:"payment_type"`
	InternalNote  *string              `json:"internal_note"`
	DiscountValue *float64             `json:"discount_value"`
	ShippingCost  *float64             `json:"shipping_cost"`
	Items         []ReceiptItemRequest `json:"items" binding:"omitempty,dive"`
}

// ReceiptFilterRequest represents receipt filter parameters
type ReceiptFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
