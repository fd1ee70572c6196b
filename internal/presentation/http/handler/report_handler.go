package handler

import (
	"time"

	"github.com/blagajna/pos-api/internal/application/service"
	"github.com/blagajna/pos-api/internal/presentation/http/dto/request"
	"github.com/blagajna/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List handles listing sales reports
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reportService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Reports retrieved successfully", reports)
}

// Create handles storing a manually entered report
func (h *ReportHandler) Create(c *gin.Context) {
	var req request.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), &service.ReportInput{
		Date:             req.Date,
		TotalSalesAmount: req.TotalSalesAmount,
		InvoiceCount:     req.InvoiceCount,
		Description:      req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Report created successfully", report)
}

// Generate handles aggregating one day's receipts into a report
func (h *ReportHandler) Generate(c *gin.Context) {
	var req request.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Date must be formatted as YYYY-MM-DD")
		return
	}

	report, err := h.reportService.GenerateDaily(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Report generated successfully", report)
}
