package repository

import (
	"context"
	"errors"
	"time"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/enum"
	domainRepo "github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateWithItems(ctx context.Context, receipt *entity.Receipt, ledger *entity.Transaction) error {
	// One transaction: the receipt never exists without its items or
	// without its ledger entry.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if receipt.BillingAddress != nil {
			if err := tx.Create(receipt.BillingAddress).Error; err != nil {
				return err
			}
			receipt.BillingAddressID = &receipt.BillingAddress.ID
		}
		items := receipt.Items
		receipt.Items = nil
		if err := tx.Create(receipt).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		receipt.Items = items
		if ledger != nil {
			ledger.ReceiptID = receipt.ID
			if err := tx.Create(ledger).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateInvoiceNumber
	}
	return err
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Article").
		Preload("User").
		Preload("BillingAddress").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if params.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Preload("User").
		Order("created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *receiptRepository) UpdateFiscalFields(ctx context.Context, id uuid.UUID, patch *domainRepo.FiscalPatch) error {
	updates := map[string]interface{}{
		"invoice_number": patch.InvoiceNumber,
		"jir":            patch.JIR,
		"zki":            patch.ZKI,
	}
	if patch.InvoiceDate != nil {
		updates["invoice_date"] = *patch.InvoiceDate
	}
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("id = ?", id).
		Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateInvoiceNumber
	}
	return err
}

func (r *receiptRepository) MarkReversed(ctx context.Context, id uuid.UUID) (bool, error) {
	// Compare-and-set: only an active receipt can be reversed, so a
	// concurrent second reversal loses here instead of double-booking.
	res := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("id = ? AND status = ?", id, enum.ReceiptStatusActive).
		Update("status", enum.ReceiptStatusReversed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *receiptRepository) ReplaceItems(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receipt_id = ?", receipt.ID).Delete(&entity.ReceiptItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if err := tx.Save(receipt).Error; err != nil {
			return err
		}
		receipt.Items = items
		return nil
	})
}

func (r *receiptRepository) SalesForDay(ctx context.Context, day time.Time) (float64, int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var result struct {
		Total float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("COALESCE(SUM(brutto), 0) AS total, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&result).Error
	return result.Total, result.Count, err
}

func (r *receiptRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).Count(&count).Error
	return count, err
}
