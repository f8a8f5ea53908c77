package handler

import (
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContractHandler lists file transfer contracts known to this node.
type ContractHandler struct {
	transfers ports.FileTransferService
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(transfers ports.FileTransferService) *ContractHandler {
	return &ContractHandler{transfers: transfers}
}

// List handles GET /api/v1/contracts.
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.transfers.Contracts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, contracts)
}
