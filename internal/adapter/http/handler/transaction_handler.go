package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles ledger transaction endpoints.
type TransactionHandler struct {
	txSvc ports.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txSvc ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

// List handles GET /api/v1/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	page, pageSize := dto.ParsePagination(c)

	params := ports.TransactionListParams{
		TxID:     c.Query("txid"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page,
		PageSize: pageSize,
	}

	if w := c.Query("wallet"); w != "" {
		walletID, err := uuid.Parse(w)
		if err != nil {
			response.Error(c, apperror.Validation("invalid wallet filter"))
			return
		}
		params.WalletID = &walletID
	}

	txns, total, err := h.txSvc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}

	response.OK(c, paginate(c, page, pageSize, total, items))
}

// Create handles POST /api/v1/transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	walletID, err := uuid.Parse(req.Wallet)
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	txn, err := h.txSvc.Create(c.Request.Context(), ports.CreateTransactionRequest{
		WalletID: walletID,
		Amount:   *req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// Get handles GET /api/v1/transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	txn, err := h.txSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

// UpdateNotAllowed handles PUT and PATCH /api/v1/transactions/:id.
// Ledger entries are immutable once written.
func (h *TransactionHandler) UpdateNotAllowed(c *gin.Context) {
	response.Error(c, apperror.ErrTransactionImmutable("Updating"))
}

// DeleteNotAllowed handles DELETE /api/v1/transactions/:id.
func (h *TransactionHandler) DeleteNotAllowed(c *gin.Context) {
	response.Error(c, apperror.ErrTransactionImmutable("Deleting"))
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        tx.ID.String(),
		Wallet:    tx.WalletID.String(),
		TxID:      tx.TxID,
		Amount:    tx.Amount.StringFixed(domain.AmountScale),
		CreatedAt: tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
