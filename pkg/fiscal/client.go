package fiscal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// apiKeyHeader carries the credential on every submission.
const apiKeyHeader = "FIRA-Api-Key"

// DefaultTimeout bounds the synchronous call to the authority so a slow
// provider cannot hold a sale open indefinitely.
const DefaultTimeout = 20 * time.Second

// Gateway is the seam the receipt orchestrator depends on; Client is the
// production implementation.
type Gateway interface {
	Fiscalize(ctx context.Context, order *Order) *Outcome
}

// Config holds the client configuration.
type Config struct {
	APIURL      string
	APIKey      string
	InvoiceType string
	Country     string
	Timeout     time.Duration
}

// Client submits invoices to the fiscal authority over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a fiscal authority client.
func NewClient(cfg Config) *Client {
	if cfg.InvoiceType == "" {
		cfg.InvoiceType = "PONUDA"
	}
	if cfg.Country == "" {
		cfg.Country = "HR"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// BuildRequest assembles the outbound payload for an order. The second
// return value is false when no item carries a usable product code and the
// submission must be skipped.
func (c *Client) BuildRequest(order *Order) (*Request, bool) {
	lines := groupItems(order.Items)
	if len(lines) == 0 {
		return nil, false
	}

	// Prices are tax-included: netto = brutto / (1 + rate), tax = the rest.
	var brutto, netto, taxValue float64
	for _, line := range lines {
		lineBrutto := line.Price * float64(line.Quantity)
		lineNetto := lineBrutto / (1 + line.TaxRate)
		brutto += lineBrutto
		netto += lineNetto
		taxValue += lineBrutto - lineNetto
	}

	req := &Request{
		WebshopOrderID:     orderIdentifier(order.Code),
		WebshopType:        "CUSTOM",
		WebshopOrderNumber: order.Code,
		InvoiceType:        c.cfg.InvoiceType,
		CreatedAt:          order.CreatedAt.Format(timestampLayout),
		Currency:           order.Currency,
		PaymentType:        "KARTICA",
		TaxesIncluded:      true,
		Brutto:             round2(brutto),
		Netto:              round2(netto),
		TaxValue:           round2(taxValue),
		BillingAddress:     BillingAddress{Country: c.cfg.Country},
		LineItems:          lines,
	}
	if order.Email != nil && *order.Email != "" {
		req.BillingAddress.Email = order.Email
	}
	return req, true
}

// Fiscalize submits the order and classifies the outcome. It never returns
// an error: rejections and transport failures come back as outcomes so the
// sale proceeds without fiscal data instead of crashing.
func (c *Client) Fiscalize(ctx context.Context, order *Order) *Outcome {
	payload, ok := c.BuildRequest(order)
	if !ok {
		log.Printf("fiscal: no items with usable product code for order %s, skipping submission", order.Code)
		return &Outcome{Status: StatusSkipped}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &Outcome{Status: StatusRejected, Detail: fmt.Sprintf("marshal payload: %v", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return &Outcome{Status: StatusUnreachable, Detail: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("fiscal: submission for order %s failed: %v", order.Code, err)
		return &Outcome{Status: StatusUnreachable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Outcome{Status: StatusUnreachable, Detail: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("fiscal: order %s rejected with status %d: %s", order.Code, resp.StatusCode, respBody)
		return &Outcome{
			Status: StatusRejected,
			Detail: fmt.Sprintf("status %d: %s", resp.StatusCode, respBody),
		}
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Printf("fiscal: order %s returned unparseable body: %v", order.Code, err)
		return &Outcome{Status: StatusRejected, Detail: fmt.Sprintf("parse response: %v", err)}
	}

	log.Printf("fiscal: order %s fiscalized, invoice %s, JIR %s", order.Code, result.InvoiceNumber, result.JIR)
	return &Outcome{Status: StatusFiscalized, Result: &result}
}
