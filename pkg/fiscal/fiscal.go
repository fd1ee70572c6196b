// Package fiscal talks to the external invoicing authority (FIRA). It turns
// a receipt projection into the authority's webshop-order payload, submits
// it, and classifies the outcome. A failed call never surfaces as an error:
// the caller completes the sale without fiscal proof and an operator
// re-fiscalizes later.
package fiscal

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Items lacking a usable product code carry the sentinel and are dropped
// from the fiscal submission while remaining on the internal receipt.
const sentinelProductCode = "-1"

// lineTaxRate is the flat rate (as a fraction) stamped on every outbound
// line item. The authority's line schema requires one; it is independent of
// the per-item percent rates used for internally stored totals.
const lineTaxRate = 0.05

// timestampLayout is ISO-8601 without timezone, the authority's
// LocalDateTime format.
const timestampLayout = "2006-01-02T15:04:05"

// Status classifies one fiscalization attempt.
type Status int

const (
	// StatusFiscalized means the authority accepted the invoice and
	// returned a legal number plus signatures.
	StatusFiscalized Status = iota
	// StatusSkipped means no item carried a usable product code, so no
	// submission was made. Not an error: the caller must not expect
	// fiscal fields.
	StatusSkipped
	// StatusRejected means the authority answered with a non-200 status.
	StatusRejected
	// StatusUnreachable means the call failed at the transport level or
	// timed out.
	StatusUnreachable
)

func (s Status) String() string {
	switch s {
	case StatusFiscalized:
		return "fiscalized"
	case StatusSkipped:
		return "skipped"
	case StatusRejected:
		return "rejected"
	case StatusUnreachable:
		return "unreachable"
	}
	return "unknown"
}

// Result is the authority's answer to a successful submission.
type Result struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	JIR           string `json:"jir"`
	ZKI           string `json:"zki"`
}

// Outcome is the classified result of one fiscalization attempt. Result is
// non-nil only for StatusFiscalized.
type Outcome struct {
	Status Status
	Result *Result
	Detail string
}

// OrderItem is one raw receipt line as seen by the gateway.
type OrderItem struct {
	ProductCode string
	Name        string
	ArticleName string
	Price       float64
}

// Order is the flat projection of a receipt submitted for fiscalization.
type Order struct {
	Code      string
	CreatedAt time.Time
	Currency  string
	Email     *string
	Items     []OrderItem
}

// Request is the authority's webshop-order payload.
type Request struct {
	WebshopOrderID     int64          `json:"webshopOrderId"`
	WebshopType        string         `json:"webshopType"`
	WebshopOrderNumber string         `json:"webshopOrderNumber"`
	InvoiceType        string         `json:"invoiceType"`
	CreatedAt          string         `json:"createdAt"`
	Currency           string         `json:"currency"`
	PaymentType        string         `json:"paymentType"`
	TaxesIncluded      bool           `json:"taxesIncluded"`
	Brutto             float64        `json:"brutto"`
	Netto              float64        `json:"netto"`
	TaxValue           float64        `json:"taxValue"`
	BillingAddress     BillingAddress `json:"billingAddress"`
	LineItems          []LineItem     `json:"lineItems"`
}

// BillingAddress is the minimal address the authority requires.
type BillingAddress struct {
	Country string  `json:"country"`
	Email   *string `json:"email,omitempty"`
}

// LineItem is one grouped line in the outbound payload.
type LineItem struct {
	ProductCode string  `json:"productCode"`
	LineItemID  string  `json:"lineItemId"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Name        string  `json:"name"`
	TaxRate     float64 `json:"taxRate"`
}

// groupItems collapses raw order lines by product code. Quantity is the
// count of occurrences; unit price and name come from the first occurrence
// seen. First-seen wins even when later lines of the same code drift in
// price; this keeps submissions reproducible.
func groupItems(items []OrderItem) []LineItem {
	index := make(map[string]int)
	var lines []LineItem

	for _, item := range items {
		code := item.ProductCode
		if code == "" || code == sentinelProductCode {
			continue
		}

		i, seen := index[code]
		if !seen {
			name := item.Name
			if name == "" {
				name = item.ArticleName
			}
			index[code] = len(lines)
			lines = append(lines, LineItem{
				ProductCode: code,
				LineItemID:  code,
				Quantity:    1,
				Price:       item.Price,
				Name:        name,
				TaxRate:     lineTaxRate,
			})
			continue
		}
		lines[i].Quantity++
	}

	return lines
}

// orderIdentifier extracts the digits of the order code, truncated to the
// last 15, as the numeric webshop order id.
func orderIdentifier(code string) int64 {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 15 {
		digits = digits[len(digits)-15:]
	}
	if digits == "" {
		return 0
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ParseInvoiceDate parses the authority's LocalDateTime invoice date.
func ParseInvoiceDate(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

// round2 rounds for transmission only; internal accumulation stays exact.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
