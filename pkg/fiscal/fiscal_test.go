package fiscal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGroupItems(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  []LineItem
	}{
		{
			name: "repeated codes collapse into quantity",
			items: []OrderItem{
				{ProductCode: "A", Name: "Beer", Price: 2.5},
				{ProductCode: "A", Name: "Beer", Price: 2.5},
				{ProductCode: "", Name: "Deposit", Price: 0.5},
			},
			want: []LineItem{
				{ProductCode: "A", LineItemID: "A", Quantity: 2, Price: 2.5, Name: "Beer", TaxRate: 0.05},
			},
		},
		{
			name: "sentinel code is dropped",
			items: []OrderItem{
				{ProductCode: "-1", Name: "Untracked", Price: 1},
				{ProductCode: "B", Name: "Cola", Price: 3},
			},
			want: []LineItem{
				{ProductCode: "B", LineItemID: "B", Quantity: 1, Price: 3, Name: "Cola", TaxRate: 0.05},
			},
		},
		{
			name: "first seen price and name win",
			items: []OrderItem{
				{ProductCode: "C", Name: "Old name", Price: 4},
				{ProductCode: "C", Name: "New name", Price: 5},
			},
			want: []LineItem{
				{ProductCode: "C", LineItemID: "C", Quantity: 2, Price: 4, Name: "Old name", TaxRate: 0.05},
			},
		},
		{
			name: "article name fills a missing item name",
			items: []OrderItem{
				{ProductCode: "D", Name: "", ArticleName: "Fallback", Price: 1},
			},
			want: []LineItem{
				{ProductCode: "D", LineItemID: "D", Quantity: 1, Price: 1, Name: "Fallback", TaxRate: 0.05},
			},
		},
		{
			name:  "only unusable codes leave nothing",
			items: []OrderItem{{ProductCode: ""}, {ProductCode: "-1"}},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupItems(tt.items)
			if len(got) != len(tt.want) {
				t.Fatalf("groupItems() returned %d lines, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOrderIdentifier(t *testing.T) {
	tests := []struct {
		code string
		want int64
	}{
		{"RCN-1700000000000", 1700000000000},
		{"no digits", 0},
		{"", 0},
		{"12345678901234567890", 678901234567890}, // last 15 digits
		{"A1B2C3", 123},
	}

	for _, tt := range tests {
		if got := orderIdentifier(tt.code); got != tt.want {
			t.Errorf("orderIdentifier(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestBuildRequest(t *testing.T) {
	client := NewClient(Config{APIURL: "http://example.invalid", APIKey: "k"})

	email := "buyer@example.com"
	order := &Order{
		Code:      "RCN-42",
		CreatedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Currency:  "EUR",
		Email:     &email,
		Items: []OrderItem{
			{ProductCode: "A", Name: "Beer", Price: 2.1},
			{ProductCode: "A", Name: "Beer", Price: 2.1},
		},
	}

	req, ok := client.BuildRequest(order)
	if !ok {
		t.Fatal("BuildRequest() skipped, want payload")
	}

	if req.WebshopOrderID != 42 {
		t.Errorf("WebshopOrderID = %d, want 42", req.WebshopOrderID)
	}
	if req.WebshopType != "CUSTOM" {
		t.Errorf("WebshopType = %q, want CUSTOM", req.WebshopType)
	}
	if req.WebshopOrderNumber != "RCN-42" {
		t.Errorf("WebshopOrderNumber = %q, want RCN-42", req.WebshopOrderNumber)
	}
	if req.InvoiceType != "PONUDA" {
		t.Errorf("InvoiceType = %q, want default PONUDA", req.InvoiceType)
	}
	if req.CreatedAt != "2026-03-14T15:09:26" {
		t.Errorf("CreatedAt = %q, want 2026-03-14T15:09:26", req.CreatedAt)
	}
	if req.PaymentType != "KARTICA" {
		t.Errorf("PaymentType = %q, want KARTICA", req.PaymentType)
	}
	if !req.TaxesIncluded {
		t.Error("TaxesIncluded = false, want true")
	}
	if req.Brutto != 4.2 {
		t.Errorf("Brutto = %v, want 4.2", req.Brutto)
	}
	if req.Netto != 4.0 {
		t.Errorf("Netto = %v, want 4.0", req.Netto)
	}
	if req.TaxValue != 0.2 {
		t.Errorf("TaxValue = %v, want 0.2", req.TaxValue)
	}
	if req.BillingAddress.Country != "HR" {
		t.Errorf("BillingAddress.Country = %q, want HR", req.BillingAddress.Country)
	}
	if req.BillingAddress.Email == nil || *req.BillingAddress.Email != email {
		t.Errorf("BillingAddress.Email = %v, want %q", req.BillingAddress.Email, email)
	}
	if len(req.LineItems) != 1 || req.LineItems[0].Quantity != 2 {
		t.Fatalf("LineItems = %+v, want one line with quantity 2", req.LineItems)
	}
}

func TestBuildRequestSkipsWithoutUsableCodes(t *testing.T) {
	client := NewClient(Config{APIURL: "http://example.invalid"})
	order := &Order{
		Code:  "RCN-1",
		Items: []OrderItem{{ProductCode: "-1", Price: 1}},
	}
	if _, ok := client.BuildRequest(order); ok {
		t.Error("BuildRequest() built a payload, want skip")
	}
}

func TestFiscalizeOutcomes(t *testing.T) {
	order := &Order{
		Code:      "RCN-7",
		CreatedAt: time.Now(),
		Currency:  "EUR",
		Items:     []OrderItem{{ProductCode: "A", Name: "Beer", Price: 2}},
	}

	t.Run("accepted submission", func(t *testing.T) {
		var gotKey string
		var gotReq Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("FIRA-Api-Key")
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
			json.NewEncoder(w).Encode(Result{
				InvoiceNumber: "1-P1-1",
				InvoiceDate:   "2026-03-14T15:09:26",
				JIR:           "jir-123",
				ZKI:           "zki-456",
			})
		}))
		defer server.Close()

		client := NewClient(Config{APIURL: server.URL, APIKey: "secret"})
		outcome := client.Fiscalize(context.Background(), order)

		if outcome.Status != StatusFiscalized {
			t.Fatalf("Status = %v, want StatusFiscalized", outcome.Status)
		}
		if gotKey != "secret" {
			t.Errorf("FIRA-Api-Key = %q, want secret", gotKey)
		}
		if gotReq.WebshopOrderNumber != "RCN-7" {
			t.Errorf("submitted order number = %q, want RCN-7", gotReq.WebshopOrderNumber)
		}
		if outcome.Result.JIR != "jir-123" || outcome.Result.ZKI != "zki-456" {
			t.Errorf("Result = %+v, want jir-123/zki-456", outcome.Result)
		}
	})

	t.Run("rejected submission", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid api key", http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(Config{APIURL: server.URL})
		outcome := client.Fiscalize(context.Background(), order)

		if outcome.Status != StatusRejected {
			t.Errorf("Status = %v, want StatusRejected", outcome.Status)
		}
		if outcome.Result != nil {
			t.Errorf("Result = %+v, want nil", outcome.Result)
		}
	})

	t.Run("unreachable provider", func(t *testing.T) {
		client := NewClient(Config{APIURL: "http://127.0.0.1:1", Timeout: time.Second})
		outcome := client.Fiscalize(context.Background(), order)

		if outcome.Status != StatusUnreachable {
			t.Errorf("Status = %v, want StatusUnreachable", outcome.Status)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := NewClient(Config{APIURL: server.URL, Timeout: 50 * time.Millisecond})
		outcome := client.Fiscalize(context.Background(), order)

		if outcome.Status != StatusUnreachable {
			t.Errorf("Status = %v, want StatusUnreachable", outcome.Status)
		}
	})

	t.Run("unparseable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(Config{APIURL: server.URL})
		outcome := client.Fiscalize(context.Background(), order)

		if outcome.Status != StatusRejected {
			t.Errorf("Status = %v, want StatusRejected", outcome.Status)
		}
	})

	t.Run("skip without submission", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := NewClient(Config{APIURL: server.URL})
		outcome := client.Fiscalize(context.Background(), &Order{
			Code:  "RCN-8",
			Items: []OrderItem{{ProductCode: "", Price: 1}},
		})

		if outcome.Status != StatusSkipped {
			t.Errorf("Status = %v, want StatusSkipped", outcome.Status)
		}
		if called {
			t.Error("provider was called for a skipped order")
		}
	})
}
