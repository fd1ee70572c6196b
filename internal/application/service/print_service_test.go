package service

import (
	"context"
	"testing"
	"time"

	"github.com/blagajna/pos-api/internal/config"
	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/blagajna/pos-api/pkg/apperror"
	"github.com/google/uuid"
)

func testOrgConfig() config.OrgConfig {
	return config.OrgConfig{
		ContactPhone: "0911234567",
		ContactEmail: "info@example.org",
	}
}

func TestBuildPrintView(t *testing.T) {
	jir := "a1b2c3"
	zki := "z9y8x7"
	when := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	fiscalDate := when.Add(48 * time.Hour)
	receipt := &entity.Receipt{
		ID:            uuid.New(),
		InvoiceNumber: "1-P1-33",
		PaymentType:   enum.PaymentTypeCard,
		Brutto:        20,
		Netto:         19.05,
		TaxValue:      0.95,
		JIR:           &jir,
		ZKI:           &zki,
		CreatedAt:     when,
		InvoiceDate:   &fiscalDate,
		User:          entity.User{Name: "Ana"},
		Items: []entity.ReceiptItem{
			{Name: "Beer", Quantity: 2, Price: 10},
			{Name: "", Article: &entity.Article{Name: "Cola"}, Quantity: 1, Price: 3},
			{Name: "", Quantity: 1, Price: 1},
		},
	}

	svc := NewPrintService(&mockReceiptRepo{getWithItems: receipt}, testOrgConfig())

	view, err := svc.BuildPrintView(context.Background(), receipt.ID)
	if err != nil {
		t.Fatalf("BuildPrintView() error = %v", err)
	}

	if view.Num != "1-P1-33" {
		t.Errorf("Num = %q, want 1-P1-33", view.Num)
	}
	if view.Payment != "KARTICA" {
		t.Errorf("Payment = %q, want KARTICA", view.Payment)
	}
	if view.Time != "14.03.2026. 15:09" {
		t.Errorf("Time = %q, want 14.03.2026. 15:09", view.Time)
	}
	if view.Cashier != "Ana" {
		t.Errorf("Cashier = %q, want Ana", view.Cashier)
	}
	if view.Base != 19.05 || view.Tax != 0.95 {
		t.Errorf("Base/Tax = %v/%v, want 19.05/0.95", view.Base, view.Tax)
	}

	if len(view.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(view.Items))
	}
	if view.Items[1].Name != "Cola" {
		t.Errorf("item 1 name = %q, want article fallback Cola", view.Items[1].Name)
	}
	if view.Items[2].Name != "N/A" {
		t.Errorf("item 2 name = %q, want N/A", view.Items[2].Name)
	}

	// datv carries the creation time even when the fiscal invoice date
	// differs
	want := "https://porezna.gov.hr/rn?jir=a1b2c3&datv=20260314_1509&izn=00000020,00"
	if view.Link == nil || *view.Link != want {
		t.Errorf("Link = %v, want %q", view.Link, want)
	}
	if view.Phone != "0911234567" || view.Email != "info@example.org" {
		t.Errorf("contact = %q/%q, want org config values", view.Phone, view.Email)
	}
}

func TestBuildPrintViewWithoutFiscalProof(t *testing.T) {
	receipt := &entity.Receipt{
		ID:            uuid.New(),
		InvoiceNumber: "RCN-1700000000000",
		PaymentType:   enum.PaymentTypeCash,
		CreatedAt:     time.Now(),
	}

	svc := NewPrintService(&mockReceiptRepo{getWithItems: receipt}, testOrgConfig())

	view, err := svc.BuildPrintView(context.Background(), receipt.ID)
	if err != nil {
		t.Fatalf("BuildPrintView() error = %v", err)
	}
	if view.Link != nil {
		t.Errorf("Link = %v, want nil for an unfiscalized receipt", *view.Link)
	}
	if view.JIR != nil {
		t.Errorf("JIR = %v, want nil", view.JIR)
	}
	if view.Cashier != "N/A" {
		t.Errorf("Cashier = %q, want N/A when no user is attached", view.Cashier)
	}
}

func TestBuildPrintViewStornoUsesAbsoluteAmount(t *testing.T) {
	jir := "j"
	when := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	receipt := &entity.Receipt{
		ID:            uuid.New(),
		InvoiceNumber: "2-P1-6",
		Status:        enum.ReceiptStatusStorno,
		PaymentType:   enum.PaymentTypeCard,
		Brutto:        -12.5,
		JIR:           &jir,
		CreatedAt:     when,
	}

	svc := NewPrintService(&mockReceiptRepo{getWithItems: receipt}, testOrgConfig())

	view, err := svc.BuildPrintView(context.Background(), receipt.ID)
	if err != nil {
		t.Fatalf("BuildPrintView() error = %v", err)
	}
	want := "https://porezna.gov.hr/rn?jir=j&datv=20260314_1509&izn=00000012,50"
	if view.Link == nil || *view.Link != want {
		t.Errorf("Link = %v, want %q", view.Link, want)
	}
}

func TestBuildPrintViewNotFound(t *testing.T) {
	svc := NewPrintService(&mockReceiptRepo{}, testOrgConfig())

	_, err := svc.BuildPrintView(context.Background(), uuid.New())
	appErr := apperror.GetAppError(err)
	if appErr.Code != 404 {
		t.Errorf("error code = %d, want 404", appErr.Code)
	}
}
