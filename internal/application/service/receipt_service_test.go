package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/apperror"
	"github.com/blagajna/pos-api/pkg/fiscal"
	"github.com/google/uuid"
)

func newTestReceiptService(receiptRepo *mockReceiptRepo, gateway *mockGateway, notifier *mockNotifier) *ReceiptService {
	articleID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	articleRepo := &mockArticleRepo{articles: map[uuid.UUID]entity.Article{
		articleID: {ID: articleID, Name: "Beer", ProductCode: "A", Active: true},
	}}
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	return NewReceiptService(receiptRepo, articleRepo, &mockAddressRepo{}, gateway, n)
}

func fiscalizedOutcome(invoiceNumber string) *fiscal.Outcome {
	return &fiscal.Outcome{
		Status: fiscal.StatusFiscalized,
		Result: &fiscal.Result{
			InvoiceNumber: invoiceNumber,
			InvoiceDate:   "2026-03-14T15:09:26",
			JIR:           "jir-1",
			ZKI:           "zki-1",
		},
	}
}

func saleInput(userID uuid.UUID) *CreateReceiptInput {
	articleID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	return &CreateReceiptInput{
		UserID:      userID,
		PaymentType: "KARTICA",
		Brutto:      20,
		Items: []ReceiptItemInput{
			{ArticleID: &articleID, Name: "Beer", Quantity: 2, Price: 10, TaxRate: 5},
		},
	}
}

func TestCreateReceipt(t *testing.T) {
	receiptRepo := &mockReceiptRepo{}
	gateway := &mockGateway{outcome: fiscalizedOutcome("1-P1-33")}

	svc := newTestReceiptService(receiptRepo, gateway, nil)
	userID := uuid.New()

	receipt, err := svc.Create(context.Background(), saleInput(userID))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if receipt.Brutto != 20 {
		t.Errorf("Brutto = %v, want 20", receipt.Brutto)
	}
	if receipt.Netto != 19.05 {
		t.Errorf("Netto = %v, want 19.05", receipt.Netto)
	}
	if receipt.TaxValue != 0.95 {
		t.Errorf("TaxValue = %v, want 0.95", receipt.TaxValue)
	}
	if receipt.Status != enum.ReceiptStatusActive {
		t.Errorf("Status = %v, want RACUN", receipt.Status)
	}

	// The fiscal answer is folded back in
	if receipt.InvoiceNumber != "1-P1-33" {
		t.Errorf("InvoiceNumber = %q, want 1-P1-33", receipt.InvoiceNumber)
	}
	if receipt.JIR == nil || *receipt.JIR != "jir-1" {
		t.Errorf("JIR = %v, want jir-1", receipt.JIR)
	}
	if receipt.ZKI == nil || *receipt.ZKI != "zki-1" {
		t.Errorf("ZKI = %v, want zki-1", receipt.ZKI)
	}

	// Exactly one ledger entry with the signed total, written together
	// with the receipt
	if len(receiptRepo.ledger) != 1 {
		t.Fatalf("booked %d ledger entries, want 1", len(receiptRepo.ledger))
	}
	if receiptRepo.ledger[0].Amount != 20 {
		t.Errorf("ledger amount = %v, want 20", receiptRepo.ledger[0].Amount)
	}
	if receiptRepo.ledger[0].UserID != userID {
		t.Errorf("ledger user = %v, want %v", receiptRepo.ledger[0].UserID, userID)
	}
	if receiptRepo.ledger[0].ReceiptID != receipt.ID {
		t.Errorf("ledger receipt = %v, want %v", receiptRepo.ledger[0].ReceiptID, receipt.ID)
	}

	// Quantity 2 expands into two occurrences for the gateway
	if len(gateway.orders) != 1 || len(gateway.orders[0].Items) != 2 {
		t.Fatalf("gateway order = %+v, want one order with 2 items", gateway.orders)
	}
	if gateway.orders[0].Items[0].ProductCode != "A" {
		t.Errorf("order item product code = %q, want A", gateway.orders[0].Items[0].ProductCode)
	}
}

func TestCreateReceiptInvalidPaymentType(t *testing.T) {
	receiptRepo := &mockReceiptRepo{}
	svc := newTestReceiptService(receiptRepo, &mockGateway{}, nil)

	input := saleInput(uuid.New())
	input.PaymentType = "BITCOIN"

	_, err := svc.Create(context.Background(), input)
	appErr := apperror.GetAppError(err)
	if appErr.Code != 400 {
		t.Errorf("error code = %d, want 400", appErr.Code)
	}
	if len(receiptRepo.created) != 0 {
		t.Error("receipt was persisted despite invalid payment type")
	}
}

func TestCreateReceiptAmountMismatch(t *testing.T) {
	receiptRepo := &mockReceiptRepo{}
	gateway := &mockGateway{outcome: fiscalizedOutcome("1-P1-1")}
	svc := newTestReceiptService(receiptRepo, gateway, nil)

	input := saleInput(uuid.New())
	input.Brutto = 21 // computed is 20

	_, err := svc.Create(context.Background(), input)
	if err == nil {
		t.Fatal("Create() succeeded with mismatched amount")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 400 {
		t.Errorf("error code = %d, want 400", appErr.Code)
	}

	// Validation happens before any write
	if len(receiptRepo.created) != 0 {
		t.Error("receipt was persisted despite amount mismatch")
	}
	if len(receiptRepo.ledger) != 0 {
		t.Error("ledger entry was booked despite amount mismatch")
	}
	if len(gateway.orders) != 0 {
		t.Error("fiscalization was attempted despite amount mismatch")
	}
}

func TestCreateReceiptWithinTolerance(t *testing.T) {
	receiptRepo := &mockReceiptRepo{}
	gateway := &mockGateway{outcome: fiscalizedOutcome("1-P1-1")}
	svc := newTestReceiptService(receiptRepo, gateway, nil)

	input := saleInput(uuid.New())
	input.Brutto = 20.009 // within the 0.01 tolerance

	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("Create() error = %v, want tolerance to absorb the drift", err)
	}
}

func TestCreateReceiptFiscalFailureKeepsSale(t *testing.T) {
	receiptRepo := &mockReceiptRepo{}
	gateway := &mockGateway{outcome: &fiscal.Outcome{Status: fiscal.StatusUnreachable, Detail: "connection refused"}}
	notifier := &mockNotifier{}
	svc := newTestReceiptService(receiptRepo, gateway, notifier)

	receipt, err := svc.Create(context.Background(), saleInput(uuid.New()))
	if err != nil {
		t.Fatalf("Create() error = %v, fiscal failure must not abort the sale", err)
	}

	if !strings.HasPrefix(receipt.InvoiceNumber, "RCN-") {
		t.Errorf("InvoiceNumber = %q, want placeholder RCN-*", receipt.InvoiceNumber)
	}
	if receipt.JIR != nil {
		t.Errorf("JIR = %v, want nil", receipt.JIR)
	}
	if len(receiptRepo.ledger) != 1 {
		t.Errorf("booked %d ledger entries, want 1", len(receiptRepo.ledger))
	}
	if len(receiptRepo.patches) != 0 {
		t.Error("fiscal fields were patched without a fiscal result")
	}
	if len(notifier.alerts) != 1 {
		t.Errorf("sent %d alerts, want 1", len(notifier.alerts))
	}
}

func TestCreateReceiptSkippedNoAlert(t *testing.T) {
	gateway := &mockGateway{outcome: &fiscal.Outcome{Status: fiscal.StatusSkipped}}
	notifier := &mockNotifier{}
	svc := newTestReceiptService(&mockReceiptRepo{}, gateway, notifier)

	if _, err := svc.Create(context.Background(), saleInput(uuid.New())); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(notifier.alerts) != 0 {
		t.Errorf("sent %d alerts for a skipped submission, want 0", len(notifier.alerts))
	}
}

func TestCreateReceiptDuplicateInvoiceNumber(t *testing.T) {
	receiptRepo := &mockReceiptRepo{
		updateErrs: []error{repository.ErrDuplicateInvoiceNumber},
	}
	gateway := &mockGateway{outcome: fiscalizedOutcome("1-P1-33")}
	svc := newTestReceiptService(receiptRepo, gateway, nil)

	receipt, err := svc.Create(context.Background(), saleInput(uuid.New()))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(receiptRepo.patches) != 2 {
		t.Fatalf("patched %d times, want 2 (original + suffixed retry)", len(receiptRepo.patches))
	}
	retry := receiptRepo.patches[1]
	if !strings.HasPrefix(retry.InvoiceNumber, "1-P1-33-DUP-") {
		t.Errorf("retry invoice number = %q, want 1-P1-33-DUP-*", retry.InvoiceNumber)
	}
	// Signatures survive the rename
	if retry.JIR != "jir-1" || retry.ZKI != "zki-1" {
		t.Errorf("retry patch = %+v, want original jir/zki", retry)
	}
	if !strings.HasPrefix(receipt.InvoiceNumber, "1-P1-33-DUP-") {
		t.Errorf("receipt invoice number = %q, want suffixed", receipt.InvoiceNumber)
	}
}

func TestCreateReceiptStornoFlaggedSkipsLedger(t *testing.T) {
	receiptRepo := &mockReceiptRepo{}
	gateway := &mockGateway{outcome: &fiscal.Outcome{Status: fiscal.StatusSkipped}}
	svc := newTestReceiptService(receiptRepo, gateway, nil)

	note := entity.StornoNoteMarker + "1-P1-5"
	input := saleInput(uuid.New())
	input.InternalNote = &note
	input.Brutto = 20

	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(receiptRepo.ledger) != 0 {
		t.Errorf("booked %d ledger entries for a storno-flagged receipt, want 0", len(receiptRepo.ledger))
	}
}

func TestCreateReceiptStorageFailureLeavesNothing(t *testing.T) {
	receiptRepo := &mockReceiptRepo{createErr: errors.New("connection reset")}
	gateway := &mockGateway{outcome: fiscalizedOutcome("1-P1-33")}
	svc := newTestReceiptService(receiptRepo, gateway, nil)

	_, err := svc.Create(context.Background(), saleInput(uuid.New()))
	if err == nil {
		t.Fatal("Create() succeeded despite a storage failure")
	}

	// The receipt and its ledger entry live or die together
	if len(receiptRepo.created) != 0 {
		t.Errorf("persisted %d receipts, want 0", len(receiptRepo.created))
	}
	if len(receiptRepo.ledger) != 0 {
		t.Errorf("booked %d ledger entries, want 0", len(receiptRepo.ledger))
	}
	if len(gateway.orders) != 0 {
		t.Error("fiscalization was attempted for an unpersisted sale")
	}
}

func TestReverseReceipt(t *testing.T) {
	articleID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	jir := "jir-orig"
	original := &entity.Receipt{
		ID:            uuid.New(),
		InvoiceNumber: "1-P1-5",
		Status:        enum.ReceiptStatusActive,
		PaymentType:   enum.PaymentTypeCard,
		Brutto:        20,
		Netto:         19.05,
		TaxValue:      0.95,
		Currency:      "EUR",
		TaxesIncluded: true,
		JIR:           &jir,
		Items: []entity.ReceiptItem{
			{ArticleID: &articleID, Name: "Beer", Quantity: 2, Price: 10, TaxRate: 5},
		},
	}

	receiptRepo := &mockReceiptRepo{getWithItems: original, markReversed: true}
	gateway := &mockGateway{outcome: fiscalizedOutcome("2-P1-6")}
	svc := newTestReceiptService(receiptRepo, gateway, nil)

	userID := uuid.New()
	storno, err := svc.Reverse(context.Background(), original.ID, userID)
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}

	if storno.Status != enum.ReceiptStatusStorno {
		t.Errorf("Status = %v, want STORNO", storno.Status)
	}
	if storno.Brutto != -20 || storno.Netto != -19.05 || storno.TaxValue != -0.95 {
		t.Errorf("totals = %v/%v/%v, want negated originals", storno.Brutto, storno.Netto, storno.TaxValue)
	}
	if len(storno.Items) != 1 || storno.Items[0].Price != -10 {
		t.Errorf("items = %+v, want negated prices", storno.Items)
	}
	if storno.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2 (quantities stay positive)", storno.Items[0].Quantity)
	}
	if storno.InternalNote == nil || *storno.InternalNote != "STORNO of 1-P1-5" {
		t.Errorf("note = %v, want STORNO of 1-P1-5", storno.InternalNote)
	}

	if receiptRepo.markCalls != 1 {
		t.Errorf("MarkReversed called %d times, want 1", receiptRepo.markCalls)
	}
	if len(receiptRepo.ledger) != 1 || receiptRepo.ledger[0].Amount != -20 {
		t.Fatalf("ledger = %+v, want one entry with amount -20", receiptRepo.ledger)
	}
	if receiptRepo.ledger[0].UserID != userID {
		t.Errorf("ledger user = %v, want acting user %v", receiptRepo.ledger[0].UserID, userID)
	}

	// The storno takes its own trip through fiscalization
	if len(gateway.orders) != 1 {
		t.Fatalf("gateway called %d times, want 1", len(gateway.orders))
	}
	if math.Abs(gateway.orders[0].Items[0].Price - -10) > 1e-9 {
		t.Errorf("fiscal order price = %v, want -10", gateway.orders[0].Items[0].Price)
	}
}

func TestReverseAlreadyReversed(t *testing.T) {
	original := &entity.Receipt{
		ID:            uuid.New(),
		InvoiceNumber: "1-P1-5",
		Status:        enum.ReceiptStatusReversed,
	}
	receiptRepo := &mockReceiptRepo{getWithItems: original, markReversed: false}
	svc := newTestReceiptService(receiptRepo, &mockGateway{}, nil)

	_, err := svc.Reverse(context.Background(), original.ID, uuid.New())
	appErr := apperror.GetAppError(err)
	if appErr.Code != 409 {
		t.Errorf("error code = %d, want 409", appErr.Code)
	}
	if len(receiptRepo.created) != 0 {
		t.Error("a second storno was created")
	}
}

func TestReverseNotFound(t *testing.T) {
	svc := newTestReceiptService(&mockReceiptRepo{}, &mockGateway{}, nil)

	_, err := svc.Reverse(context.Background(), uuid.New(), uuid.New())
	appErr := apperror.GetAppError(err)
	if appErr.Code != 404 {
		t.Errorf("error code = %d, want 404", appErr.Code)
	}
}
