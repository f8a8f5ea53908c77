package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rangerblock/internal/core/domain"

	"github.com/spf13/viper"
)

// Config holds all node configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Identity  IdentityConfig  `mapstructure:"identity"`
	Hardware  HardwareConfig  `mapstructure:"hardware"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Bridge    BridgeConfig    `mapstructure:"bridge"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Token     TokenConfig     `mapstructure:"token"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Transfer  TransferConfig  `mapstructure:"transfer"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output
}

type IdentityConfig struct {
	// Dir is the owner-only directory for identity, keys and wallet files.
	Dir            string  `mapstructure:"dir"`
	Username       string  `mapstructure:"username"`
	AppType        string  `mapstructure:"app_type"`
	MasterPassword string  `mapstructure:"master_password"`
	MatchThreshold float64 `mapstructure:"match_threshold"`
	// EventSinks lists where security events go besides the log: file, postgres, metrics.
	EventSinks []string `mapstructure:"event_sinks"`
}

// HasSink reports whether name is one of the configured event sinks.
func (i IdentityConfig) HasSink(name string) bool {
	for _, s := range i.EventSinks {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}

type HardwareConfig struct {
	// ProbeRoot prefixes every sysfs and procfs path. "/" in production.
	ProbeRoot           string                    `mapstructure:"probe_root"`
	VMWeights           map[string]float64        `mapstructure:"vm_weights"`
	MinIndicators       int                       `mapstructure:"min_indicators"`
	ConfidenceThreshold int                       `mapstructure:"confidence_threshold"`
	Fingerprint         domain.FingerprintWeights `mapstructure:"fingerprint"`
}

// Policy builds the VM detection policy. Checks without a configured weight count 1.
func (h HardwareConfig) Policy() domain.VMDetectionPolicy {
	p := domain.DefaultVMDetectionPolicy()
	for name, w := range h.VMWeights {
		p.Weights[domain.VMCheck(name)] = w
	}
	if h.MinIndicators > 0 {
		p.MinIndicators = h.MinIndicators
	}
	if h.ConfidenceThreshold > 0 {
		p.ConfidenceThreshold = h.ConfidenceThreshold
	}
	return p
}

type WalletConfig struct {
	Store     string        `mapstructure:"store"` // file, redis
	WindowTTL time.Duration `mapstructure:"window_ttl"`
}

type RateLimitConfig struct {
	DailyCap          float64       `mapstructure:"daily_cap"`
	ReferenceCurrency string        `mapstructure:"reference_currency"`
	Window            time.Duration `mapstructure:"window"`
	MaxTxPerMinute    int           `mapstructure:"max_tx_per_minute"`
	MinuteWindow      time.Duration `mapstructure:"minute_window"`
	// API throttling for the HTTP server, per client IP.
	APIRequestsPerSecond float64 `mapstructure:"api_requests_per_second"`
	APIBurst             int     `mapstructure:"api_burst"`
	APIBackend           string  `mapstructure:"api_backend"` // memory, redis
}

// Policy converts the wallet transfer caps to the domain policy.
func (r RateLimitConfig) Policy() domain.RateLimitPolicy {
	return domain.RateLimitPolicy{
		DailyCap:          r.DailyCap,
		ReferenceCurrency: r.ReferenceCurrency,
		Window:            r.Window,
		MaxTxPerMinute:    r.MaxTxPerMinute,
		MinuteWindow:      r.MinuteWindow,
	}
}

type BridgeConfig struct {
	TrustUnregisteredSenders bool          `mapstructure:"trust_unregistered_senders"`
	WelcomeGrant             float64       `mapstructure:"welcome_grant"`
	HistoryLimit             int           `mapstructure:"history_limit"`
	SeenCapacity             uint          `mapstructure:"seen_capacity"`
	SeenFalsePositive        float64       `mapstructure:"seen_false_positive"`
	MineInterval             time.Duration `mapstructure:"mine_interval"`
}

type LedgerConfig struct {
	Store                   string `mapstructure:"store"` // file, postgres
	Difficulty              int    `mapstructure:"difficulty"`
	MaxTransactionsPerBlock int    `mapstructure:"max_transactions_per_block"`
	AutoMine                bool   `mapstructure:"auto_mine"`
}

type TokenConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type TransferConfig struct {
	Dir         string `mapstructure:"dir"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// Validate checks backend selections and resolves relative paths.
func (c *Config) Validate() error {
	var errs []error
	switch c.Wallet.Store {
	case "file", "redis":
	default:
		errs = append(errs, fmt.Errorf("wallet.store must be file or redis, got %q", c.Wallet.Store))
	}
	switch c.Ledger.Store {
	case "file", "postgres":
	default:
		errs = append(errs, fmt.Errorf("ledger.store must be file or postgres, got %q", c.Ledger.Store))
	}
	switch c.RateLimit.APIBackend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("rate_limit.api_backend must be memory or redis, got %q", c.RateLimit.APIBackend))
	}
	if c.Ledger.Difficulty < 0 || c.Ledger.Difficulty > 8 {
		errs = append(errs, fmt.Errorf("ledger.difficulty must be between 0 and 8, got %d", c.Ledger.Difficulty))
	}
	if c.RateLimit.DailyCap <= 0 {
		errs = append(errs, errors.New("rate_limit.daily_cap must be positive"))
	}
	if c.Identity.MatchThreshold < 0 || c.Identity.MatchThreshold > 1 {
		errs = append(errs, fmt.Errorf("identity.match_threshold must be within [0,1], got %g", c.Identity.MatchThreshold))
	}
	return errors.Join(errs...)
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Wallet.Store == "redis" || c.RateLimit.APIBackend == "redis"
}

// UsesPostgres reports whether any component needs a database connection.
func (c *Config) UsesPostgres() bool {
	return c.Ledger.Store == "postgres" || c.Identity.HasSink("postgres")
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: RBK_.
// Nested keys use underscore: RBK_LEDGER_STORE, RBK_IDENTITY_DIR, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8547)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "rangerblock")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "rangerblock:")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("identity.dir", "")
	v.SetDefault("identity.username", "")
	v.SetDefault("identity.app_type", "rangerblock")
	v.SetDefault("identity.master_password", "")
	v.SetDefault("identity.match_threshold", 0.7)
	v.SetDefault("identity.event_sinks", []string{"file", "metrics"})
	v.SetDefault("hardware.probe_root", "/")
	v.SetDefault("hardware.min_indicators", 2)
	v.SetDefault("hardware.confidence_threshold", 50)
	v.SetDefault("hardware.fingerprint.uuid", 4)
	v.SetDefault("hardware.fingerprint.cpu", 3)
	v.SetDefault("hardware.fingerprint.memory", 2)
	v.SetDefault("hardware.fingerprint.arch", 1)
	v.SetDefault("hardware.fingerprint.memory_tolerance", 0.10)
	v.SetDefault("wallet.store", "file")
	v.SetDefault("wallet.window_ttl", "48h")
	v.SetDefault("rate_limit.daily_cap", 20)
	v.SetDefault("rate_limit.reference_currency", "EUR")
	v.SetDefault("rate_limit.window", "24h")
	v.SetDefault("rate_limit.max_tx_per_minute", 10)
	v.SetDefault("rate_limit.minute_window", "1m")
	v.SetDefault("rate_limit.api_requests_per_second", 5)
	v.SetDefault("rate_limit.api_burst", 20)
	v.SetDefault("rate_limit.api_backend", "memory")
	v.SetDefault("bridge.trust_unregistered_senders", true)
	v.SetDefault("bridge.welcome_grant", 1000)
	v.SetDefault("bridge.history_limit", 50)
	v.SetDefault("bridge.seen_capacity", 100_000)
	v.SetDefault("bridge.seen_false_positive", 0.001)
	v.SetDefault("bridge.mine_interval", "30s")
	v.SetDefault("ledger.store", "file")
	v.SetDefault("ledger.difficulty", 2)
	v.SetDefault("ledger.max_transactions_per_block", 10)
	v.SetDefault("ledger.auto_mine", true)
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("transfer.dir", "")
	v.SetDefault("transfer.max_file_size", 100<<20)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// RBK_LEDGER_STORE -> ledger.store
	v.SetEnvPrefix("RBK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Identity.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.Identity.Dir = filepath.Join(home, ".rangerblock", "secure")
	}
	if cfg.Transfer.Dir == "" {
		cfg.Transfer.Dir = filepath.Join(filepath.Dir(cfg.Identity.Dir), "transfers")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
