package service

import (
	"context"
	"time"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/apperror"
	"github.com/blagajna/pos-api/pkg/pagination"
)

// TransactionService exposes the append-only ledger. It has no mutation
// operations; entries are only ever booked through the receipt flow.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repository.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// List returns ledger entries newest first
func (s *TransactionService) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	return s.transactionRepo.List(ctx, params)
}

// ListByCursor pages the ledger with a keyset cursor. The ledger only grows,
// so cursors stay stable no matter how many sales land between requests.
func (s *TransactionService) ListByCursor(ctx context.Context, params *pagination.CursorParams) ([]entity.Transaction, *pagination.CursorPagination, error) {
	params.Validate()

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, nil, apperror.NewBadRequestError(err.Error())
	}

	transactions, err := s.transactionRepo.ListByCursor(ctx, cursor, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	meta, transactions := pagination.NewCursorPagination(transactions, params.Limit,
		func(t entity.Transaction) string { return t.ID.String() },
		func(t entity.Transaction) time.Time { return t.CreatedAt })
	meta.HasPrev = params.Cursor != ""

	return transactions, meta, nil
}
