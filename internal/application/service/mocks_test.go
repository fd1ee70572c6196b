package service

import (
	"context"
	"time"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/fiscal"
	"github.com/blagajna/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

type mockReceiptRepo struct {
	created       []*entity.Receipt
	ledger        []*entity.Transaction
	createErr     error
	getWithItems  *entity.Receipt
	getErr        error
	patches       []*repository.FiscalPatch
	updateErrs    []error // popped per UpdateFiscalFields call
	markReversed  bool
	markErr       error
	markCalls     int
	replacedItems []entity.ReceiptItem
	salesTotal    float64
	salesCount    int64
}

func (m *mockReceiptRepo) CreateWithItems(ctx context.Context, receipt *entity.Receipt, ledger *entity.Transaction) error {
	if m.createErr != nil {
		return m.createErr
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	receipt.CreatedAt = time.Now()
	m.created = append(m.created, receipt)
	if ledger != nil {
		ledger.ReceiptID = receipt.ID
		m.ledger = append(m.ledger, ledger)
	}
	return nil
}

func (m *mockReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return m.getWithItems, m.getErr
}

func (m *mockReceiptRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return m.getWithItems, m.getErr
}

func (m *mockReceiptRepo) List(ctx context.Context, params *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	return nil, 0, nil
}

func (m *mockReceiptRepo) UpdateFiscalFields(ctx context.Context, id uuid.UUID, patch *repository.FiscalPatch) error {
	m.patches = append(m.patches, patch)
	if len(m.updateErrs) > 0 {
		err := m.updateErrs[0]
		m.updateErrs = m.updateErrs[1:]
		return err
	}
	return nil
}

func (m *mockReceiptRepo) MarkReversed(ctx context.Context, id uuid.UUID) (bool, error) {
	m.markCalls++
	return m.markReversed, m.markErr
}

func (m *mockReceiptRepo) ReplaceItems(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem) error {
	m.replacedItems = items
	receipt.Items = items
	return nil
}

func (m *mockReceiptRepo) SalesForDay(ctx context.Context, day time.Time) (float64, int64, error) {
	return m.salesTotal, m.salesCount, nil
}

func (m *mockReceiptRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.created)), nil
}

type mockTransactionRepo struct {
	rows []entity.Transaction
}

func (m *mockTransactionRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	return m.rows, int64(len(m.rows)), nil
}

func (m *mockTransactionRepo) ListByCursor(ctx context.Context, cursor *pagination.Cursor, limit int) ([]entity.Transaction, error) {
	rows := m.rows
	if len(rows) > limit+1 {
		rows = rows[:limit+1]
	}
	return rows, nil
}

func (m *mockTransactionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.rows)), nil
}

type mockArticleRepo struct {
	articles map[uuid.UUID]entity.Article
}

func (m *mockArticleRepo) Create(ctx context.Context, article *entity.Article) error { return nil }

func (m *mockArticleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	if a, ok := m.articles[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *mockArticleRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Article, error) {
	var out []entity.Article
	for _, id := range ids {
		if a, ok := m.articles[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockArticleRepo) Update(ctx context.Context, article *entity.Article) error { return nil }
func (m *mockArticleRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (m *mockArticleRepo) List(ctx context.Context, activeOnly bool) ([]entity.Article, error) {
	var out []entity.Article
	for _, a := range m.articles {
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type mockAddressRepo struct {
	billing  []*entity.BillingAddress
	shipping []*entity.ShippingAddress
}

func (m *mockAddressRepo) CreateBilling(ctx context.Context, addr *entity.BillingAddress) error {
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	m.billing = append(m.billing, addr)
	return nil
}

func (m *mockAddressRepo) CreateShipping(ctx context.Context, addr *entity.ShippingAddress) error {
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	m.shipping = append(m.shipping, addr)
	return nil
}

type mockGateway struct {
	outcome *fiscal.Outcome
	orders  []*fiscal.Order
}

func (m *mockGateway) Fiscalize(ctx context.Context, order *fiscal.Order) *fiscal.Outcome {
	m.orders = append(m.orders, order)
	return m.outcome
}

type mockNotifier struct {
	alerts []string
}

func (m *mockNotifier) SendFiscalFailureAlert(invoiceNumber, status, detail string) error {
	m.alerts = append(m.alerts, invoiceNumber+" "+status)
	return nil
}
