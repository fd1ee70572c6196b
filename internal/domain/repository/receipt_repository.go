package repository

import (
	"context"
	"errors"
	"time"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/blagajna/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ErrDuplicateInvoiceNumber is returned by UpdateFiscalFields when the
// invoice number handed back by the fiscal authority collides with one
// already stored locally. The orchestrator recovers by suffixing.
var ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")

// FiscalPatch carries the fields folded into a receipt after a successful
// fiscalization call.
type FiscalPatch struct {
	InvoiceNumber string
	JIR           string
	ZKI           string
	InvoiceDate   *time.Time
}

// ReceiptRepository defines the interface for receipt data operations.
// CreateWithItems persists the receipt, its items and the ledger entry as
// one atomic unit; a nil ledger books no entry.
type ReceiptRepository interface {
	CreateWithItems(ctx context.Context, receipt *entity.Receipt, ledger *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	UpdateFiscalFields(ctx context.Context, id uuid.UUID, patch *FiscalPatch) error
	// MarkReversed flips status RACUN -> RACUN_STORNIRAN with a
	// compare-and-set; it returns false when the receipt was not in the
	// active state (already reversed, or itself a storno).
	MarkReversed(ctx context.Context, id uuid.UUID) (bool, error)
	ReplaceItems(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem) error
	SalesForDay(ctx context.Context, day time.Time) (total float64, count int64, err error)
	Count(ctx context.Context) (int64, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ReceiptStatus
	UserID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
