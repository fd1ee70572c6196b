package service

import (
	"context"
	"testing"
	"time"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/pkg/apperror"
	"github.com/blagajna/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

func ledgerRows(n int) []entity.Transaction {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rows := make([]entity.Transaction, n)
	for i := range rows {
		rows[i] = entity.Transaction{
			ID:        uuid.New(),
			Amount:    float64(10 + i),
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return rows
}

func TestTransactionListByCursor(t *testing.T) {
	repo := &mockTransactionRepo{rows: ledgerRows(3)}
	svc := NewTransactionService(repo)

	transactions, meta, err := svc.ListByCursor(context.Background(), &pagination.CursorParams{Limit: 2})
	if err != nil {
		t.Fatalf("ListByCursor() error = %v", err)
	}

	// limit+1 was fetched; the extra row signals a next page
	if len(transactions) != 2 {
		t.Fatalf("returned %d transactions, want 2", len(transactions))
	}
	if !meta.HasNext {
		t.Error("HasNext = false, want true")
	}
	if meta.HasPrev {
		t.Error("HasPrev = true for the first page, want false")
	}
	if meta.NextCursor == nil {
		t.Fatal("NextCursor = nil, want cursor for the last returned row")
	}

	// The cursor points at the last returned row
	params := &pagination.CursorParams{Cursor: *meta.NextCursor, Limit: 2}
	cursor, err := params.DecodeCursor()
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if cursor.ID != transactions[1].ID.String() {
		t.Errorf("cursor id = %s, want %s", cursor.ID, transactions[1].ID)
	}
}

func TestTransactionListByCursorLastPage(t *testing.T) {
	repo := &mockTransactionRepo{rows: ledgerRows(2)}
	svc := NewTransactionService(repo)

	cursor := pagination.EncodeCursor(uuid.NewString(), time.Now())
	transactions, meta, err := svc.ListByCursor(context.Background(), &pagination.CursorParams{Cursor: cursor, Limit: 5})
	if err != nil {
		t.Fatalf("ListByCursor() error = %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("returned %d transactions, want 2", len(transactions))
	}
	if meta.HasNext {
		t.Error("HasNext = true on the last page, want false")
	}
	if !meta.HasPrev {
		t.Error("HasPrev = false after following a cursor, want true")
	}
}

func TestTransactionListByCursorBadCursor(t *testing.T) {
	svc := NewTransactionService(&mockTransactionRepo{})

	_, _, err := svc.ListByCursor(context.Background(), &pagination.CursorParams{Cursor: "not-base64!", Limit: 5})
	appErr := apperror.GetAppError(err)
	if appErr.Code != 400 {
		t.Errorf("error code = %d, want 400", appErr.Code)
	}
}
