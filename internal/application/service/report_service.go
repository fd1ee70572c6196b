package service

import (
	"context"
	"log"
	"time"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/tax"
)

// ReportSender mails a finished daily report to the operator. Delivery is
// best effort; a nil sender disables it.
type ReportSender interface {
	SendDailyReport(date time.Time, total float64, invoiceCount int) error
}

// ReportService handles sales report operations
type ReportService struct {
	reportRepo  repository.ReportRepository
	receiptRepo repository.ReceiptRepository
	sender      ReportSender
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, receiptRepo repository.ReceiptRepository, sender ReportSender) *ReportService {
	return &ReportService{reportRepo: reportRepo, receiptRepo: receiptRepo, sender: sender}
}

// ReportInput represents the create report input
type ReportInput struct {
	Date             time.Time
	TotalSalesAmount float64
	InvoiceCount     int
	Description      *string
}

// Create stores a manually entered sales report
func (s *ReportService) Create(ctx context.Context, input *ReportInput) (*entity.SalesReport, error) {
	report := &entity.SalesReport{
		Date:             input.Date,
		TotalSalesAmount: input.TotalSalesAmount,
		InvoiceCount:     input.InvoiceCount,
		Description:      input.Description,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns all sales reports, newest first
func (s *ReportService) List(ctx context.Context) ([]entity.SalesReport, error) {
	return s.reportRepo.List(ctx)
}

// GenerateDaily aggregates one day's receipts into a stored report.
// Reversals carry negative amounts, so the sum is the day's net takings.
func (s *ReportService) GenerateDaily(ctx context.Context, day time.Time) (*entity.SalesReport, error) {
	total, count, err := s.receiptRepo.SalesForDay(ctx, day)
	if err != nil {
		return nil, err
	}

	description := "Generated daily report"
	report := &entity.SalesReport{
		Date:             day,
		TotalSalesAmount: tax.Round2(total),
		InvoiceCount:     int(count),
		Description:      &description,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	if s.sender != nil {
		if err := s.sender.SendDailyReport(report.Date, report.TotalSalesAmount, report.InvoiceCount); err != nil {
			log.Printf("failed to send daily report for %s: %v", day.Format("2006-01-02"), err)
		}
	}

	return report, nil
}
