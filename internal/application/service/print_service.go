package service

import (
	"context"
	"fmt"
	"math"

	"github.com/blagajna/pos-api/internal/config"
	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/apperror"
	"github.com/google/uuid"
)

// printTimeLayout is the Croatian date-time format printed on receipts.
const printTimeLayout = "02.01.2006. 15:04"

// verificationURL is the tax authority's public invoice check. Customers
// scan it as a QR code to verify the JIR.
const verificationURL = "https://porezna.gov.hr/rn"

// PrintService builds the flat printable projection of a receipt
type PrintService struct {
	receiptRepo repository.ReceiptRepository
	org         config.OrgConfig
}

// NewPrintService creates a new print service
func NewPrintService(receiptRepo repository.ReceiptRepository, org config.OrgConfig) *PrintService {
	return &PrintService{receiptRepo: receiptRepo, org: org}
}

// BuildPrintView composes the printable projection of one receipt. The
// verification link exists only for fiscalized receipts.
func (s *PrintService) BuildPrintView(ctx context.Context, receiptID uuid.UUID) (*entity.PrintView, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	cashier := receipt.User.Name
	if cashier == "" {
		cashier = "N/A"
	}

	view := &entity.PrintView{
		Num:     receipt.InvoiceNumber,
		Payment: receipt.PaymentType.String(),
		Time:    receipt.CreatedAt.Format(printTimeLayout),
		Cashier: cashier,
		Base:    receipt.Netto,
		Tax:     receipt.TaxValue,
		JIR:     receipt.JIR,
		ZKI:     receipt.ZKI,
		Phone:   s.org.ContactPhone,
		Email:   s.org.ContactEmail,
	}

	for _, item := range receipt.Items {
		name := item.Name
		if name == "" && item.Article != nil {
			name = item.Article.Name
		}
		if name == "" {
			name = "N/A"
		}
		view.Items = append(view.Items, entity.PrintLine{
			Name:     name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	if receipt.Fiscalized() {
		link := s.verificationLink(receipt)
		view.Link = &link
	}

	return view, nil
}

// verificationLink builds the tax authority check URL. The datv parameter
// carries the creation time, not the fiscal invoice date; the amount wants
// the absolute total with the integer part zero-padded to 8 digits and a
// comma as decimal separator.
func (s *PrintService) verificationLink(receipt *entity.Receipt) string {
	cents := int64(math.Round(math.Abs(receipt.Brutto) * 100))
	amount := fmt.Sprintf("%08d,%02d", cents/100, cents%100)

	return fmt.Sprintf("%s?jir=%s&datv=%s&izn=%s",
		verificationURL, *receipt.JIR, receipt.CreatedAt.Format("20060102_1504"), amount)
}
