package handler

import (
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports API liveness and database connectivity
type HealthHandler struct {
	receiptRepo     repository.ReceiptRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(
	receiptRepo repository.ReceiptRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
) *HealthHandler {
	return &HealthHandler{
		receiptRepo:     receiptRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

// Check handles the health probe. Row counts double as a cheap database
// connectivity check.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	receipts, err := h.receiptRepo.Count(ctx)
	if err != nil {
		response.InternalServerError(c, "Database unreachable")
		return
	}
	users, err := h.userRepo.Count(ctx)
	if err != nil {
		response.InternalServerError(c, "Database unreachable")
		return
	}
	transactions, err := h.transactionRepo.Count(ctx)
	if err != nil {
		response.InternalServerError(c, "Database unreachable")
		return
	}

	response.OK(c, "Service healthy", gin.H{
		"status":       "ok",
		"receipts":     receipts,
		"users":        users,
		"transactions": transactions,
	})
}
