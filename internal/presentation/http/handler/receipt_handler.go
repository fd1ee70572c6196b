package handler

import (
	"strconv"
	"time"

	"github.com/blagajna/pos-api/internal/application/service"
	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/internal/presentation/http/dto/request"
	"github.com/blagajna/pos-api/internal/presentation/http/dto/response"
	"github.com/blagajna/pos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	printService   *service.PrintService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, printService *service.PrintService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, printService: printService}
}

// Create handles booking a sale
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateReceiptInput{
		UserID:          *userID,
		PaymentType:     req.PaymentType,
		InvoiceNumber:   req.InvoiceNumber,
		Brutto:          req.Brutto,
		Currency:        req.Currency,
		InternalNote:    req.InternalNote,
		DiscountValue:   req.DiscountValue,
		ShippingCost:    req.ShippingCost,
		BillingAddress:  addressInput(req.BillingAddress),
		ShippingAddress: addressInput(req.ShippingAddress),
		Items:           itemInputs(req.Items),
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// List handles listing receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ReceiptFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.ReceiptStatus(statusStr)
		if status.Valid() {
			params.Status = &status
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Pagination.Validate()
	result := pagination.NewPaginatedResult(receipts,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Get handles retrieving a single receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Update handles a full receipt update
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateReceiptInput{
		PaymentType:   req.PaymentType,
		InternalNote:  req.InternalNote,
		DiscountValue: req.DiscountValue,
		ShippingCost:  req.ShippingCost,
	}
	if req.Items != nil {
		input.Items = itemInputs(req.Items)
	}

	receipt, err := h.receiptService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt updated successfully", receipt)
}

// Reverse handles booking a storno for a receipt
func (h *ReceiptHandler) Reverse(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	storno, err := h.receiptService.Reverse(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt reversed successfully", storno)
}

// Print handles building the printable receipt projection
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	view, err := h.printService.BuildPrintView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print view built successfully", view)
}

func addressInput(req *request.AddressRequest) *service.AddressInput {
	if req == nil {
		return nil
	}
	return &service.AddressInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Street:    req.Street,
		City:      req.City,
		Zip:       req.Zip,
		Country:   req.Country,
		Email:     req.Email,
		Phone:     req.Phone,
	}
}

func itemInputs(items []request.ReceiptItemRequest) []service.ReceiptItemInput {
	inputs := make([]service.ReceiptItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.ReceiptItemInput{
			ArticleID:  item.ArticleID,
			Name:       item.Name,
			LineItemID: item.LineItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			TaxRate:    item.TaxRate,
			Unit:       item.Unit,
		}
	}
	return inputs
}
