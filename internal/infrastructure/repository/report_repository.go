package repository

import (
	"context"

	"github.com/blagajna/pos-api/internal/domain/entity"
	domainRepo "github.com/blagajna/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new sales report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.SalesReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) List(ctx context.Context) ([]entity.SalesReport, error) {
	var reports []entity.SalesReport
	err := r.db.WithContext(ctx).Order("date DESC").Find(&reports).Error
	return reports, err
}

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *gorm.DB) domainRepo.AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) CreateBilling(ctx context.Context, addr *entity.BillingAddress) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

func (r *addressRepository) CreateShipping(ctx context.Context, addr *entity.ShippingAddress) error {
	return r.db.WithContext(ctx).Create(addr).Error
}
