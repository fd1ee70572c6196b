// Package tax computes net/tax/gross breakdowns for tax-inclusive prices.
//
// Prices are gross (tax included); the net share of a line is
// gross / (1 + rate/100) and the tax share is the remainder. Aggregates
// accumulate unrounded so rounding error never compounds; callers round
// with Round2 only at the reporting boundary.
package tax

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTaxRate is returned for rates outside [0, 100). A rate of 100
// or more would zero or invert the net share.
var ErrInvalidTaxRate = errors.New("tax rate must be at least 0 and below 100")

// LineItem is one cart line: a unit gross price, a quantity and a tax rate
// in percent.
type LineItem struct {
	Price    float64
	Quantity int
	TaxRate  float64
}

// RateTotals holds the net and tax sums for one tax rate.
type RateTotals struct {
	Net float64
	Tax float64
}

// Totals is the aggregate breakdown of a cart.
type Totals struct {
	Gross  float64
	Net    float64
	Tax    float64
	ByRate map[float64]RateTotals
}

// ComputeTotals computes per-line and aggregate net/tax/gross amounts and
// groups net/tax sums by tax rate. Gross is the exact sum of price*quantity,
// never re-derived from rounded lines.
func ComputeTotals(items []LineItem) (*Totals, error) {
	totals := &Totals{ByRate: make(map[float64]RateTotals)}

	for i, item := range items {
		if item.TaxRate < 0 || item.TaxRate >= 100 {
			return nil, fmt.Errorf("item %d: rate %v: %w", i, item.TaxRate, ErrInvalidTaxRate)
		}

		lineGross := item.Price * float64(item.Quantity)
		lineNet := lineGross / (1 + item.TaxRate/100)
		lineTax := lineGross - lineNet

		totals.Gross += lineGross
		totals.Net += lineNet
		totals.Tax += lineTax

		rt := totals.ByRate[item.TaxRate]
		rt.Net += lineNet
		rt.Tax += lineTax
		totals.ByRate[item.TaxRate] = rt
	}

	return totals, nil
}

// Round2 rounds a monetary amount to 2 decimal places for external
// reporting or display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
