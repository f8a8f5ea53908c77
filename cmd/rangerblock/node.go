package main

import (
	"context"
	"fmt"
	"path/filepath"

	"rangerblock/config"
	"rangerblock/internal/adapter/http/middleware"
	"rangerblock/internal/adapter/ledger"
	fileStorage "rangerblock/internal/adapter/storage/file"
	pgStorage "rangerblock/internal/adapter/storage/postgres"
	redisStorage "rangerblock/internal/adapter/storage/redis"
	"rangerblock/internal/adapter/system"
	"rangerblock/internal/core/ports"
	"rangerblock/internal/service"
	"rangerblock/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// node is every component of a running RangerBlock node, wired once per process.
type node struct {
	cfg *config.Config
	log zerolog.Logger

	registry *prometheus.Registry
	metrics  *service.Metrics
	events   *service.EventBus
	audit    ports.SecurityAuditor

	hardware  *service.HardwareService
	identity  *service.SecureIdentityStore
	wallet    *service.Wallet
	chain     *ledger.Chain
	bridge    *service.LedgerBridge
	transfers *service.FileTransfer

	pool           *pgxpool.Pool
	rdb            *goredis.Client
	rateLimits     *redisStorage.RateLimitStore
	healthCheckers []ports.HealthChecker
}

// newNode connects the configured backends and constructs the services.
// Nothing touches the identity files until start is called.
func newNode(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*node, error) {
	n := &node{cfg: cfg, log: log}

	n.registry = prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		n.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		n.metrics = service.NewMetrics(n.registry)
	} else {
		n.metrics = service.NewNopMetrics()
	}
	n.events = service.NewEventBus(64, logger.Component(log, "events"))

	if cfg.UsesPostgres() {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		n.pool = pool
		if err := pgStorage.Migrate(ctx, pool); err != nil {
			n.Close()
			return nil, fmt.Errorf("migrating postgres: %w", err)
		}
		n.healthCheckers = append(n.healthCheckers, pgStorage.NewHealthCheck(pool))
	}
	if cfg.UsesRedis() {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			n.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		n.rdb = rdb
		n.rateLimits = redisStorage.NewRateLimitStore(rdb, cfg.Redis.KeyPrefix)
		n.healthCheckers = append(n.healthCheckers, redisStorage.NewHealthCheck(rdb, cfg.Redis.KeyPrefix))
	}

	var sinks []ports.SecurityEventRepository
	if cfg.Identity.HasSink("file") {
		sinks = append(sinks, fileStorage.NewSecurityLog(cfg.Identity.Dir))
	}
	if cfg.Identity.HasSink("postgres") {
		sinks = append(sinks, pgStorage.NewSecurityEventRepository(n.pool))
	}
	if cfg.Identity.HasSink("metrics") {
		sinks = append(sinks, n.metrics.SecurityEventSink())
	}
	n.audit = service.NewSecurityEventService(logger.Component(log, "security"), sinks...)

	probe := system.NewProbe(cfg.Hardware.ProbeRoot)
	n.hardware = service.NewHardwareService(probe, cfg.Hardware.Policy(), cfg.Hardware.Fingerprint, logger.Component(log, "hardware"))

	crypto := service.NewCryptoEngine()
	tokens := service.NewJWTTokenService(cfg.Token.TTL)
	n.identity = service.NewSecureIdentityStore(
		fileStorage.NewStore(cfg.Identity.Dir),
		n.hardware,
		crypto,
		tokens,
		n.audit,
		service.IdentityStoreConfig{AppType: cfg.Identity.AppType, MatchThreshold: cfg.Identity.MatchThreshold},
		logger.Component(log, "identity"),
	)

	var (
		nonces ports.NonceRepository
		limits ports.RateLimitRepository
	)
	switch cfg.Wallet.Store {
	case "redis":
		nonces = redisStorage.NewNonceRepository(n.rdb, cfg.Redis.KeyPrefix)
		limits = redisStorage.NewWindowRepository(n.rdb, cfg.Redis.KeyPrefix, cfg.Wallet.WindowTTL)
	default:
		nonces = fileStorage.NewNonceRepository(cfg.Identity.Dir)
		limits = fileStorage.NewRateLimitRepository(cfg.Identity.Dir)
	}
	n.wallet = service.NewWallet(
		n.identity,
		crypto,
		nonces,
		limits,
		service.WalletConfig{Username: cfg.Identity.Username, RateLimit: cfg.RateLimit.Policy()},
		logger.Component(log, "wallet"),
	)

	var ledgerRepo ports.LedgerRepository
	switch cfg.Ledger.Store {
	case "postgres":
		ledgerRepo = pgStorage.NewLedgerRepository(n.pool)
	default:
		ledgerRepo = fileStorage.NewLedgerRepository(filepath.Join(cfg.Identity.Dir, "ledger"))
	}
	n.chain = ledger.New(ledgerRepo, ledger.Config{
		Difficulty:              cfg.Ledger.Difficulty,
		MaxTransactionsPerBlock: cfg.Ledger.MaxTransactionsPerBlock,
		AutoMine:                cfg.Ledger.AutoMine,
	}, logger.Component(log, "ledger"))

	n.bridge = service.NewLedgerBridge(n.wallet, n.chain, n.audit, n.events, n.metrics, service.BridgeConfig{
		TrustUnregisteredSenders: cfg.Bridge.TrustUnregisteredSenders,
		WelcomeGrant:             cfg.Bridge.WelcomeGrant,
		HistoryLimit:             cfg.Bridge.HistoryLimit,
		SeenCapacity:             cfg.Bridge.SeenCapacity,
		SeenFalsePositive:        cfg.Bridge.SeenFalsePositive,
	}, logger.Component(log, "bridge"))

	n.transfers = service.NewFileTransfer(
		n.identity,
		fileStorage.NewContractRepository(cfg.Transfer.Dir),
		n.audit,
		n.events,
		service.FileTransferConfig{Dir: cfg.Transfer.Dir, MaxFileSize: cfg.Transfer.MaxFileSize},
		logger.Component(log, "transfer"),
	)

	return n, nil
}

// startIdentity unlocks the secure store with the configured master password.
func (n *node) startIdentity(ctx context.Context) error {
	return n.identity.Init(ctx, n.cfg.Identity.MasterPassword)
}

// startLedger unlocks the identity and replays the chain into the bridge.
func (n *node) startLedger(ctx context.Context) error {
	if err := n.startIdentity(ctx); err != nil {
		return err
	}
	return n.bridge.Init(ctx)
}

// apiLimiter picks the HTTP throttle backend. It returns nil when throttling is off.
func (n *node) apiLimiter() middleware.Limiter {
	rl := n.cfg.RateLimit
	if rl.APIRequestsPerSecond <= 0 {
		return nil
	}
	if rl.APIBackend == "redis" && n.rateLimits != nil {
		return middleware.NewRedisLimiter(n.rateLimits, int64(rl.APIBurst), burstWindow(rl.APIRequestsPerSecond, rl.APIBurst))
	}
	return middleware.NewMemoryLimiter(rl.APIRequestsPerSecond, rl.APIBurst)
}

// Close releases backend connections.
func (n *node) Close() {
	if n.rdb != nil {
		_ = n.rdb.Close()
	}
	if n.pool != nil {
		n.pool.Close()
	}
}
