package utils

import (
	"fmt"
	"time"
)

// PlaceholderInvoiceNumber generates the locally-unique invoice number a
// receipt carries until the fiscal authority assigns the legal one.
func PlaceholderInvoiceNumber() string {
	return fmt.Sprintf("RCN-%d", time.Now().UnixMilli())
}

// DuplicateSuffixedInvoiceNumber disambiguates an invoice number the
// authority returned that collides with one already stored locally.
func DuplicateSuffixedInvoiceNumber(number string) string {
	return fmt.Sprintf("%s-DUP-%d", number, time.Now().UnixMilli())
}
