package request

import (
	"time"

	"github.com/google/uuid"
)

// ArticleRequest represents an article create or update request
type ArticleRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=255"`
	ProductCode string     `json:"product_code" binding:"omitempty,max=100"`
	KpdCode     string     `json:"kpd_code" binding:"omitempty,max=100"`
	Price       float64    `json:"price" binding:"min=0"`
	TaxRate     float64    `json:"tax_rate"`
	Description *string    `json:"description"`
	Unit        string     `json:"unit" binding:"omitempty,max=50"`
	Active      *bool      `json:"active"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// CategoryRequest represents a category create or update request
type CategoryRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=255"`
	Active *bool  `json:"active"`
}

// CreateUserRequest represents a manually created user
type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"omitempty,max=255"`
	Role  string `json:"role" binding:"required"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
	Role *string `json:"role"`
}

// LoginRequest represents the local password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateReportRequest represents a manually entered sales report
type CreateReportRequest struct {
	Date             time.Time `json:"date" binding:"required"`
	TotalSalesAmount float64   `json:"total_sales_amount"`
	InvoiceCount     int       `json:"invoice_count" binding:"min=0"`
	Description      *string   `json:"description"`
}

// GenerateReportRequest represents a daily report generation request
type GenerateReportRequest struct {
	Date string `json:"date" binding:"required"`
}
