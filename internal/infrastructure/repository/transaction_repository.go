package repository

import (
	"context"

	"github.com/blagajna/pos-api/internal/domain/entity"
	domainRepo "github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Receipt").
		Preload("User").
		Order("created_at DESC").
		Find(&transactions).Error

	return transactions, total, err
}

func (r *transactionRepository) ListByCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]entity.Transaction, error) {
	var transactions []entity.Transaction

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	err := query.
		Preload("Receipt").
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&transactions).Error

	return transactions, err
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Transaction{}).Count(&count).Error
	return count, err
}
