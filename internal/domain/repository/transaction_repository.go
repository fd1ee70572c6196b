package repository

import (
	"context"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/pkg/pagination"
)

// TransactionRepository defines the read side of the append-only ledger.
// Ledger rows are written together with their receipt through
// ReceiptRepository.CreateWithItems and are never updated or deleted.
type TransactionRepository interface {
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Transaction, int64, error)
	// ListByCursor pages the ledger newest first with a keyset on
	// (created_at, id); it returns up to limit+1 rows so the caller can
	// detect whether more remain.
	ListByCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]entity.Transaction, error)
	Count(ctx context.Context) (int64, error)
}
