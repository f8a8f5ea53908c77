package handler

import (
	"rangerblock/internal/adapter/http/middleware"
	"rangerblock/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const maxRequestBody = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Identity       ports.IdentityStore
	Wallet         ports.WalletService
	Bridge         ports.LedgerBridge
	Transfers      ports.FileTransferService // nil = contract listing disabled
	Audit          ports.SecurityAuditor
	Limiter        middleware.Limiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Gatherer       prometheus.Gatherer // nil = /metrics disabled
	MetricsPath    string
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxRequestBody))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Gatherer != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, Metrics(deps.Gatherer))
	}

	rl := func(group string) gin.HandlerFunc {
		if deps.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.Throttle(deps.Limiter, group, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	identityHandler := NewIdentityHandler(deps.Identity)
	v1.POST("/session", middleware.LocalOnly(), rl("session"), identityHandler.CreateSession)

	// --- Session-token routes ---
	auth := v1.Group("", middleware.SessionAuth(deps.Identity, deps.Audit, deps.Logger), rl("api"))
	{
		auth.GET("/identity", identityHandler.GetIdentity)
		auth.GET("/identity/integrity", identityHandler.Integrity)

		walletHandler := NewWalletHandler(deps.Wallet, deps.Bridge)
		auth.GET("/wallet", walletHandler.GetWallet)
		auth.POST("/transfers", walletHandler.Send)
		auth.GET("/transactions", walletHandler.History)

		ledgerHandler := NewLedgerHandler(deps.Bridge)
		auth.POST("/blocks", ledgerHandler.Mine)
		auth.GET("/ledger", ledgerHandler.Status)

		if deps.Transfers != nil {
			auth.GET("/contracts", NewContractHandler(deps.Transfers).List)
		}
	}

	return r
}
