package handler

import (
	"rangerblock/internal/adapter/http/dto"
	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler handles mining and chain status endpoints.
type LedgerHandler struct {
	bridge ports.LedgerBridge
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(bridge ports.LedgerBridge) *LedgerHandler {
	return &LedgerHandler{bridge: bridge}
}

// Mine handles POST /api/v1/blocks. An empty pending pool is not an error.
func (h *LedgerHandler) Mine(c *gin.Context) {
	block, err := h.bridge.MineBlock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if block == nil {
		response.OK(c, dto.MineResponse{Mined: false})
		return
	}
	response.Created(c, dto.MineResponse{Mined: true, Block: block})
}

// Status handles GET /api/v1/ledger.
func (h *LedgerHandler) Status(c *gin.Context) {
	status, err := h.bridge.LedgerStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	supply := make(map[string]float64, len(domain.CoinSymbols))
	for _, coin := range domain.CoinSymbols {
		supply[coin] = h.bridge.Supply(coin)
	}
	response.OK(c, dto.LedgerResponse{Status: status, Supply: supply})
}
