package repository

import (
	"context"

	"github.com/blagajna/pos-api/internal/domain/entity"
)

// ReportRepository defines the interface for sales report data operations
type ReportRepository interface {
	Create(ctx context.Context, report *entity.SalesReport) error
	List(ctx context.Context) ([]entity.SalesReport, error)
}

// AddressRepository defines the interface for receipt address operations
type AddressRepository interface {
	CreateBilling(ctx context.Context, addr *entity.BillingAddress) error
	CreateShipping(ctx context.Context, addr *entity.ShippingAddress) error
}
