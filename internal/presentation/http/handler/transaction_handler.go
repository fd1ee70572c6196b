package handler

import (
	"strconv"

	"github.com/blagajna/pos-api/internal/application/service"
	"github.com/blagajna/pos-api/internal/presentation/http/dto/response"
	"github.com/blagajna/pos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles ledger listing requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles listing ledger entries. A cursor or limit query switches to
// keyset pagination; otherwise the page/per_page form is used.
func (h *TransactionHandler) List(c *gin.Context) {
	if c.Query("cursor") != "" || c.Query("limit") != "" {
		h.listByCursor(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	transactions, total, err := h.transactionService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Validate()
	result := pagination.NewPaginatedResult(transactions,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

func (h *TransactionHandler) listByCursor(c *gin.Context) {
	var params pagination.CursorParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid cursor parameters")
		return
	}

	transactions, meta, err := h.transactionService.ListByCursor(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewCursorPaginatedResult(transactions, meta)
	response.SuccessWithCursorPagination(c, 200, "Transactions retrieved successfully", result)
}
