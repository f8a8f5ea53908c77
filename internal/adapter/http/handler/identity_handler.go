package handler

import (
	"rangerblock/internal/adapter/http/dto"
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/response"

	"github.com/gin-gonic/gin"
)

// IdentityHandler exposes the node identity and its session tokens.
type IdentityHandler struct {
	identity ports.IdentityStore
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(identity ports.IdentityStore) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// CreateSession handles POST /api/v1/session.
func (h *IdentityHandler) CreateSession(c *gin.Context) {
	token, expiry, err := h.identity.CreateSessionToken()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SessionResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// GetIdentity handles GET /api/v1/identity.
func (h *IdentityHandler) GetIdentity(c *gin.Context) {
	id, err := h.identity.Identity()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, id.Summary(h.identity.HardwareHash()))
}

// Integrity handles GET /api/v1/identity/integrity.
func (h *IdentityHandler) Integrity(c *gin.Context) {
	report, err := h.identity.VerifyIdentityIntegrity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
