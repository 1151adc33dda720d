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

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
	txSvc     ports.TransactionService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, txSvc ports.TransactionService) *WalletHandler {
	return &WalletHandler{
		walletSvc: walletSvc,
		txSvc:     txSvc,
	}
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	page, pageSize := dto.ParsePagination(c)

	params := ports.WalletListParams{
		Label:    c.Query("label"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page,
		PageSize: pageSize,
	}

	wallets, total, err := h.walletSvc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletResponse(&wallets[i]))
	}

	response.OK(c, paginate(c, page, pageSize, total, items))
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.Create(c.Request.Context(), req.Label)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(wallet))
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	id, err := walletIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.walletSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletDetailResponse(detail))
}

// Update handles PUT and PATCH /api/v1/wallets/:id. Label is the only
// mutable wallet field, so both verbs share one handler.
func (h *WalletHandler) Update(c *gin.Context) {
	id, err := walletIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.Update(c.Request.Context(), id, req.Label)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(wallet))
}

// Delete handles DELETE /api/v1/wallets/:id. Deleting a wallet removes its
// transactions with it.
func (h *WalletHandler) Delete(c *gin.Context) {
	id, err := walletIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.walletSvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListTransactions handles GET /api/v1/wallets/:id/transactions.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	id, err := walletIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := dto.ParsePagination(c)

	txns, total, err := h.txSvc.ListByWallet(c.Request.Context(), id, page, pageSize)
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

// walletIDParam parses the :id path parameter.
func walletIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid wallet id")
	}
	return id, nil
}

// toWalletResponse converts domain.Wallet to DTO.
func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		ID:                w.ID.String(),
		Label:             w.Label,
		Balance:           w.Balance.StringFixed(domain.AmountScale),
		TransactionsCount: w.TransactionsCount,
		CreatedAt:         w.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:         w.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// toWalletDetailResponse converts ports.WalletDetail to DTO.
func toWalletDetailResponse(d *ports.WalletDetail) dto.WalletDetailResponse {
	recent := make([]dto.TransactionResponse, 0, len(d.RecentTransactions))
	for i := range d.RecentTransactions {
		recent = append(recent, toTransactionResponse(&d.RecentTransactions[i]))
	}
	return dto.WalletDetailResponse{
		WalletResponse:     toWalletResponse(&d.Wallet),
		RecentTransactions: recent,
	}
}
