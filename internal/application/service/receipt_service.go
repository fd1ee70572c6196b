package service

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/apperror"
	"github.com/blagajna/pos-api/pkg/fiscal"
	"github.com/blagajna/pos-api/pkg/tax"
	"github.com/blagajna/pos-api/pkg/utils"
	"github.com/google/uuid"
)

// amountTolerance is the largest accepted drift between the total declared
// by the client and the server-recomputed one. Anything above it is a data
// error, not rounding.
const amountTolerance = 0.01

// Notifier delivers operator alerts when a sale completes without fiscal
// proof. Delivery is best effort; a nil Notifier disables alerts.
type Notifier interface {
	SendFiscalFailureAlert(invoiceNumber, status, detail string) error
}

// ReceiptService orchestrates the sale flow: validation, atomic persistence
// of the receipt with its ledger entry, fiscalization and reconciliation of
// the authority's answer. Fiscal failures never abort a sale; storage
// failures do.
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	articleRepo repository.ArticleRepository
	addressRepo repository.AddressRepository
	gateway     fiscal.Gateway
	notifier    Notifier
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	articleRepo repository.ArticleRepository,
	addressRepo repository.AddressRepository,
	gateway fiscal.Gateway,
	notifier Notifier,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		articleRepo: articleRepo,
		addressRepo: addressRepo,
		gateway:     gateway,
		notifier:    notifier,
	}
}

// ReceiptItemInput represents one line of a submitted sale
type ReceiptItemInput struct {
	ArticleID  *uuid.UUID
	Name       string
	LineItemID *string
	Quantity   int
	Price      float64
	TaxRate    float64
	Unit       string
}

// AddressInput represents a billing or shipping address on a sale
type AddressInput struct {
	FirstName string
	LastName  string
	Company   string
	Street    string
	City      string
	Zip       string
	Country   string
	Email     *string
	Phone     *string
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	UserID          uuid.UUID
	PaymentType     string
	InvoiceNumber   *string
	Brutto          float64
	Currency        string
	InternalNote    *string
	DiscountValue   float64
	ShippingCost    float64
	BillingAddress  *AddressInput
	ShippingAddress *AddressInput
	Items           []ReceiptItemInput
}

// Create books a sale. The declared total is checked against the recomputed
// one before anything is written; after the receipt and its ledger entry are
// committed the fiscalization outcome can no longer fail the call.
func (s *ReceiptService) Create(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	paymentType := enum.PaymentType(input.PaymentType)
	if !paymentType.Valid() {
		return nil, apperror.NewInvalidPaymentTypeError(input.PaymentType)
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Receipt needs at least one item")
	}

	lines := make([]tax.LineItem, len(input.Items))
	for i, item := range input.Items {
		lines[i] = tax.LineItem{Price: item.Price, Quantity: item.Quantity, TaxRate: item.TaxRate}
	}
	totals, err := tax.ComputeTotals(lines)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	if math.Abs(input.Brutto-totals.Gross) > amountTolerance {
		return nil, apperror.NewAmountMismatchError(input.Brutto, tax.Round2(totals.Gross))
	}

	invoiceNumber := utils.PlaceholderInvoiceNumber()
	if input.InvoiceNumber != nil && *input.InvoiceNumber != "" {
		invoiceNumber = *input.InvoiceNumber
	}
	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	receipt := &entity.Receipt{
		InvoiceNumber: invoiceNumber,
		Status:        enum.ReceiptStatusActive,
		PaymentType:   paymentType,
		UserID:        input.UserID,
		Brutto:        totals.Gross,
		Netto:         tax.Round2(totals.Net),
		TaxValue:      tax.Round2(totals.Tax),
		Currency:      currency,
		TaxesIncluded: true,
		InternalNote:  input.InternalNote,
		DiscountValue: input.DiscountValue,
		ShippingCost:  input.ShippingCost,
	}

	if input.BillingAddress != nil {
		receipt.BillingAddress = billingFromInput(input.BillingAddress)
	}
	if input.ShippingAddress != nil {
		shipping := shippingFromInput(input.ShippingAddress)
		if err := s.addressRepo.CreateShipping(ctx, shipping); err != nil {
			return nil, err
		}
		receipt.ShippingAddressID = &shipping.ID
	}

	items := make([]entity.ReceiptItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = entity.ReceiptItem{
			ArticleID:  item.ArticleID,
			Name:       item.Name,
			LineItemID: item.LineItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			TaxRate:    item.TaxRate,
			Unit:       item.Unit,
		}
	}
	receipt.Items = items

	// Reversals book their own negated ledger entry in Reverse; a receipt
	// arriving pre-flagged as a storno must not book a positive one here.
	var ledger *entity.Transaction
	if !receipt.IsStornoFlagged() {
		ledger = &entity.Transaction{
			UserID: input.UserID,
			Amount: receipt.Brutto,
		}
	}

	if err := s.receiptRepo.CreateWithItems(ctx, receipt, ledger); err != nil {
		return nil, err
	}

	if err := s.fiscalize(ctx, receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

// Reverse books a storno for a fiscalized or plain receipt. The original is
// flagged with a compare-and-set, so concurrent reversals of the same
// receipt produce exactly one storno.
func (s *ReceiptService) Reverse(ctx context.Context, id, userID uuid.UUID) (*entity.Receipt, error) {
	original, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	reversed, err := s.receiptRepo.MarkReversed(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reversed {
		return nil, apperror.ErrAlreadyReversed
	}

	note := entity.StornoNoteMarker + original.InvoiceNumber
	storno := &entity.Receipt{
		InvoiceNumber: utils.PlaceholderInvoiceNumber(),
		Status:        enum.ReceiptStatusStorno,
		PaymentType:   original.PaymentType,
		UserID:        userID,
		Brutto:        -original.Brutto,
		Netto:         -original.Netto,
		TaxValue:      -original.TaxValue,
		Currency:      original.Currency,
		TaxesIncluded: original.TaxesIncluded,
		InternalNote:  &note,
	}

	items := make([]entity.ReceiptItem, len(original.Items))
	for i, item := range original.Items {
		items[i] = entity.ReceiptItem{
			ArticleID:  item.ArticleID,
			Name:       item.Name,
			LineItemID: item.LineItemID,
			Quantity:   item.Quantity,
			Price:      -item.Price,
			TaxRate:    item.TaxRate,
			Unit:       item.Unit,
		}
	}
	storno.Items = items

	ledger := &entity.Transaction{
		UserID: userID,
		Amount: storno.Brutto,
	}
	if err := s.receiptRepo.CreateWithItems(ctx, storno, ledger); err != nil {
		return nil, err
	}

	if err := s.fiscalize(ctx, storno); err != nil {
		return nil, err
	}

	return storno, nil
}

// GetByID loads one receipt with its items
func (s *ReceiptService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// List returns receipts newest first
func (s *ReceiptService) List(ctx context.Context, params *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	return s.receiptRepo.List(ctx, params)
}

// UpdateReceiptInput represents a full receipt update
type UpdateReceiptInput struct {
	PaymentType   *string
	InternalNote  *string
	DiscountValue *float64
	ShippingCost  *float64
	Items         []ReceiptItemInput
}

// Update replaces a receipt's item set and recomputes its totals. The
// invoice number and fiscal fields are never touched here.
func (s *ReceiptService) Update(ctx context.Context, id uuid.UUID, input *UpdateReceiptInput) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	if input.PaymentType != nil {
		paymentType := enum.PaymentType(*input.PaymentType)
		if !paymentType.Valid() {
			return nil, apperror.NewInvalidPaymentTypeError(*input.PaymentType)
		}
		receipt.PaymentType = paymentType
	}
	if input.InternalNote != nil {
		receipt.InternalNote = input.InternalNote
	}
	if input.DiscountValue != nil {
		receipt.DiscountValue = *input.DiscountValue
	}
	if input.ShippingCost != nil {
		receipt.ShippingCost = *input.ShippingCost
	}

	items := receipt.Items
	if input.Items != nil {
		lines := make([]tax.LineItem, len(input.Items))
		items = make([]entity.ReceiptItem, len(input.Items))
		for i, item := range input.Items {
			lines[i] = tax.LineItem{Price: item.Price, Quantity: item.Quantity, TaxRate: item.TaxRate}
			items[i] = entity.ReceiptItem{
				ArticleID:  item.ArticleID,
				Name:       item.Name,
				LineItemID: item.LineItemID,
				Quantity:   item.Quantity,
				Price:      item.Price,
				TaxRate:    item.TaxRate,
				Unit:       item.Unit,
			}
		}
		totals, err := tax.ComputeTotals(lines)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		receipt.Brutto = totals.Gross
		receipt.Netto = tax.Round2(totals.Net)
		receipt.TaxValue = tax.Round2(totals.Tax)
	}

	if err := s.receiptRepo.ReplaceItems(ctx, receipt, items); err != nil {
		return nil, err
	}
	return receipt, nil
}

// fiscalize submits the receipt and folds the authority's answer back in.
// Only storage failures surface as errors; every fiscal outcome lets the
// sale stand.
func (s *ReceiptService) fiscalize(ctx context.Context, receipt *entity.Receipt) error {
	order, err := s.buildOrder(ctx, receipt)
	if err != nil {
		return err
	}

	outcome := s.gateway.Fiscalize(ctx, order)
	if outcome.Status != fiscal.StatusFiscalized {
		if outcome.Status != fiscal.StatusSkipped {
			log.Printf("receipt %s completed without fiscal proof: %s (%s)",
				receipt.InvoiceNumber, outcome.Status, outcome.Detail)
			s.notifyFailure(receipt.InvoiceNumber, outcome)
		}
		return nil
	}

	result := outcome.Result
	patch := &repository.FiscalPatch{
		InvoiceNumber: result.InvoiceNumber,
		JIR:           result.JIR,
		ZKI:           result.ZKI,
	}
	if result.InvoiceDate != "" {
		if parsed, err := fiscal.ParseInvoiceDate(result.InvoiceDate); err == nil {
			patch.InvoiceDate = &parsed
		}
	}

	err = s.receiptRepo.UpdateFiscalFields(ctx, receipt.ID, patch)
	if errors.Is(err, repository.ErrDuplicateInvoiceNumber) {
		// The authority can hand back a number we already hold, e.g. after
		// a replayed submission. Keep the signatures, disambiguate the
		// number and try exactly once more.
		patch.InvoiceNumber = utils.DuplicateSuffixedInvoiceNumber(result.InvoiceNumber)
		log.Printf("invoice number %s already stored, retrying as %s", result.InvoiceNumber, patch.InvoiceNumber)
		err = s.receiptRepo.UpdateFiscalFields(ctx, receipt.ID, patch)
	}
	if err != nil {
		return err
	}

	receipt.InvoiceNumber = patch.InvoiceNumber
	receipt.JIR = &result.JIR
	receipt.ZKI = &result.ZKI
	receipt.InvoiceDate = patch.InvoiceDate
	return nil
}

// buildOrder projects a receipt onto the gateway's flat order shape. Each
// item is expanded into one occurrence per quantity unit so the gateway's
// occurrence counting reproduces the quantities.
func (s *ReceiptService) buildOrder(ctx context.Context, receipt *entity.Receipt) (*fiscal.Order, error) {
	var articleIDs []uuid.UUID
	for _, item := range receipt.Items {
		if item.ArticleID != nil {
			articleIDs = append(articleIDs, *item.ArticleID)
		}
	}
	articles, err := s.articleRepo.GetByIDs(ctx, articleIDs)
	if err != nil {
		return nil, err
	}
	articleMap := make(map[uuid.UUID]*entity.Article, len(articles))
	for i := range articles {
		articleMap[articles[i].ID] = &articles[i]
	}

	order := &fiscal.Order{
		Code:      receipt.InvoiceNumber,
		CreatedAt: receipt.CreatedAt,
		Currency:  receipt.Currency,
	}
	if receipt.BillingAddress != nil {
		order.Email = receipt.BillingAddress.Email
	}

	for _, item := range receipt.Items {
		var productCode, articleName string
		if item.ArticleID != nil {
			if article, ok := articleMap[*item.ArticleID]; ok {
				productCode = article.ProductCode
				articleName = article.Name
			}
		}
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		for n := 0; n < quantity; n++ {
			order.Items = append(order.Items, fiscal.OrderItem{
				ProductCode: productCode,
				Name:        item.Name,
				ArticleName: articleName,
				Price:       item.Price,
			})
		}
	}

	return order, nil
}

func (s *ReceiptService) notifyFailure(invoiceNumber string, outcome *fiscal.Outcome) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendFiscalFailureAlert(invoiceNumber, outcome.Status.String(), outcome.Detail); err != nil {
		log.Printf("failed to send fiscal failure alert for %s: %v", invoiceNumber, err)
	}
}

func billingFromInput(in *AddressInput) *entity.BillingAddress {
	return &entity.BillingAddress{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Company:   in.Company,
		Street:    in.Street,
		City:      in.City,
		Zip:       in.Zip,
		Country:   in.Country,
		Email:     in.Email,
		Phone:     in.Phone,
	}
}

func shippingFromInput(in *AddressInput) *entity.ShippingAddress {
	return &entity.ShippingAddress{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Company:   in.Company,
		Street:    in.Street,
		City:      in.City,
		Zip:       in.Zip,
		Country:   in.Country,
		Phone:     in.Phone,
	}
}
