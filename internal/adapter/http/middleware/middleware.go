package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/apperror"
	"rangerblock/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxRequestID = "request_id"
	CtxSession   = "session"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// SessionAuth accepts only session tokens minted by this node's identity
// on this hardware.
func SessionAuth(identity ports.IdentityStore, audit ports.SecurityAuditor, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			response.Error(c, apperror.ErrMalformedToken())
			c.Abort()
			return
		}

		v := identity.VerifySessionToken(token)
		if !v.Valid {
			log.Warn().
				Str("reason", string(v.Reason)).
				Str("client_ip", c.ClientIP()).
				Msg("session token rejected")
			if audit != nil {
				audit.Record(c.Request.Context(), domain.EventSessionTokenRejected, map[string]any{
					"reason":   string(v.Reason),
					"clientIp": c.ClientIP(),
					"path":     c.Request.URL.Path,
				})
			}
			response.Error(c, tokenError(v.Reason))
			c.Abort()
			return
		}

		c.Set(CtxSession, v.Claims)
		c.Next()
	}
}

func tokenError(reason domain.TokenFailure) *apperror.AppError {
	switch reason {
	case domain.TokenExpired:
		return apperror.ErrTokenExpired()
	case domain.TokenHardwareMismatch:
		return apperror.ErrHardwareMismatch()
	case domain.TokenInvalidSignature:
		return apperror.ErrInvalidSignature()
	default:
		return apperror.ErrMalformedToken()
	}
}

// SessionClaims returns the claims SessionAuth stored on the context.
func SessionClaims(c *gin.Context) (domain.SessionClaims, bool) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return domain.SessionClaims{}, false
	}
	claims, ok := v.(domain.SessionClaims)
	return claims, ok
}

// LocalOnly rejects requests that do not come from a loopback address.
func LocalOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := net.ParseIP(c.ClientIP())
		if ip == nil || !ip.IsLoopback() {
			response.Error(c, apperror.ErrLocalOnly())
			c.Abort()
			return
		}
		c.Next()
	}
}

// MaxBodySize limits the request body. Reads past the limit fail and the
// handler's bind error turns into a 400.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(CtxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery turns a handler panic into a 500 envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
