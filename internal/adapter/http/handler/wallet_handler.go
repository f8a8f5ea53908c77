package handler

import (
	"rangerblock/internal/adapter/http/dto"
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/apperror"
	"rangerblock/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 50

// WalletHandler handles wallet and transfer endpoints.
type WalletHandler struct {
	wallet ports.WalletService
	bridge ports.LedgerBridge
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallet ports.WalletService, bridge ports.LedgerBridge) *WalletHandler {
	return &WalletHandler{wallet: wallet, bridge: bridge}
}

// GetWallet handles GET /api/v1/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	summary, err := h.wallet.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Send handles POST /api/v1/transfers.
func (h *WalletHandler) Send(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	receipt, err := h.bridge.SendTokens(c.Request.Context(), req.To, req.Amount, req.Coin, req.Memo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, receipt)
}

// History handles GET /api/v1/transactions.
func (h *WalletHandler) History(c *gin.Context) {
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultHistoryLimit
	}

	entries, err := h.bridge.History(c.Request.Context(), q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.HistoryResponse{Entries: entries, Count: len(entries)})
}
