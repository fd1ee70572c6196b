package tax

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		items     []LineItem
		wantGross float64
		wantNet   float64
		wantTax   float64
	}{
		{
			name:      "single line at 5 percent",
			items:     []LineItem{{Price: 10, Quantity: 2, TaxRate: 5}},
			wantGross: 20,
			wantNet:   20 / 1.05,
			wantTax:   20 - 20/1.05,
		},
		{
			name:      "zero rate keeps net equal to gross",
			items:     []LineItem{{Price: 7.5, Quantity: 4, TaxRate: 0}},
			wantGross: 30,
			wantNet:   30,
			wantTax:   0,
		},
		{
			name: "mixed rates accumulate per line",
			items: []LineItem{
				{Price: 10, Quantity: 1, TaxRate: 25},
				{Price: 5, Quantity: 2, TaxRate: 13},
			},
			wantGross: 20,
			wantNet:   10/1.25 + 10/1.13,
			wantTax:   (10 - 10/1.25) + (10 - 10/1.13),
		},
		{
			name:      "empty input yields zeros",
			items:     nil,
			wantGross: 0,
			wantNet:   0,
			wantTax:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := ComputeTotals(tt.items)
			if err != nil {
				t.Fatalf("ComputeTotals() error = %v", err)
			}
			if !almostEqual(totals.Gross, tt.wantGross) {
				t.Errorf("Gross = %v, want %v", totals.Gross, tt.wantGross)
			}
			if !almostEqual(totals.Net, tt.wantNet) {
				t.Errorf("Net = %v, want %v", totals.Net, tt.wantNet)
			}
			if !almostEqual(totals.Tax, tt.wantTax) {
				t.Errorf("Tax = %v, want %v", totals.Tax, tt.wantTax)
			}
			// The split must reassemble exactly
			if !almostEqual(totals.Net+totals.Tax, totals.Gross) {
				t.Errorf("Net+Tax = %v, want Gross %v", totals.Net+totals.Tax, totals.Gross)
			}
		})
	}
}

func TestComputeTotalsGrossIsExactSum(t *testing.T) {
	// Gross must be the plain sum of price*quantity, never re-derived from
	// rounded per-line values.
	items := []LineItem{
		{Price: 0.1, Quantity: 3, TaxRate: 25},
		{Price: 0.2, Quantity: 1, TaxRate: 25},
	}
	totals, err := ComputeTotals(items)
	if err != nil {
		t.Fatalf("ComputeTotals() error = %v", err)
	}
	want := 0.1*3 + 0.2
	if totals.Gross != want {
		t.Errorf("Gross = %v, want exact %v", totals.Gross, want)
	}
}

func TestComputeTotalsByRate(t *testing.T) {
	items := []LineItem{
		{Price: 10, Quantity: 1, TaxRate: 25},
		{Price: 10, Quantity: 1, TaxRate: 25},
		{Price: 10, Quantity: 1, TaxRate: 5},
	}
	totals, err := ComputeTotals(items)
	if err != nil {
		t.Fatalf("ComputeTotals() error = %v", err)
	}

	if len(totals.ByRate) != 2 {
		t.Fatalf("ByRate has %d entries, want 2", len(totals.ByRate))
	}
	rt25 := totals.ByRate[25]
	if !almostEqual(rt25.Net, 20/1.25) {
		t.Errorf("ByRate[25].Net = %v, want %v", rt25.Net, 20/1.25)
	}
	rt5 := totals.ByRate[5]
	if !almostEqual(rt5.Net+rt5.Tax, 10) {
		t.Errorf("ByRate[5] net+tax = %v, want 10", rt5.Net+rt5.Tax)
	}
}

func TestComputeTotalsInvalidRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{"negative rate", -1},
		{"rate of 100", 100},
		{"rate above 100", 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals([]LineItem{{Price: 10, Quantity: 1, TaxRate: tt.rate}})
			if !errors.Is(err, ErrInvalidTaxRate) {
				t.Errorf("ComputeTotals() error = %v, want ErrInvalidTaxRate", err)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0},  // stored as 1.00499..., rounds down
		{1.015, 1.01}, // same binary artifact
		{19.047619047619047, 19.05},
		{-0.955, -0.95},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
