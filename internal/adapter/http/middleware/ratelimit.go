package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	redisStore "rangerblock/internal/adapter/storage/redis"
	"rangerblock/pkg/apperror"
	"rangerblock/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Decision is the outcome of one throttle check.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix seconds
}

// Limiter decides whether key may make another request now.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Decision, error)
}

// MemoryLimiter keeps one token bucket per key in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	buckets  map[string]*bucket
	maxKeys  int
	idleTTL  time.Duration
	now      func() time.Time
	lastScan time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewMemoryLimiter refills rps tokens per second up to burst.
func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	return &MemoryLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*bucket),
		maxKeys: 10_000,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (*Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictLocked(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now

	allowed := b.lim.AllowN(now, 1)
	tokens := b.lim.TokensAt(now)
	remaining := int64(math.Max(0, math.Floor(tokens)))

	// Seconds until at least one token is back.
	wait := 0.0
	if tokens < 1 && l.limit > 0 {
		wait = (1 - tokens) / float64(l.limit)
	}
	return &Decision{
		Allowed:   allowed,
		Limit:     int64(l.burst),
		Remaining: remaining,
		ResetAt:   now.Add(time.Duration(math.Ceil(wait)) * time.Second).Unix(),
	}, nil
}

func (l *MemoryLimiter) evictLocked(now time.Time) {
	if len(l.buckets) < l.maxKeys && now.Sub(l.lastScan) < l.idleTTL {
		return
	}
	l.lastScan = now
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.idleTTL {
			delete(l.buckets, k)
		}
	}
}

// RedisLimiter shares fixed request windows across nodes through Redis.
type RedisLimiter struct {
	store  *redisStore.RateLimitStore
	limit  int64
	window time.Duration
}

// NewRedisLimiter allows limit requests per window per key.
func NewRedisLimiter(store *redisStore.RateLimitStore, limit int64, window time.Duration) *RedisLimiter {
	return &RedisLimiter{store: store, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (*Decision, error) {
	res, err := l.store.Allow(ctx, key, l.limit, l.window)
	if err != nil {
		return nil, err
	}
	return &Decision{
		Allowed:   res.Allowed,
		Limit:     res.Limit,
		Remaining: res.Remaining,
		ResetAt:   res.ResetAt,
	}, nil
}

// Throttle creates a rate-limiting middleware for an endpoint group.
// A failing limiter lets the request through.
func Throttle(limiter Limiter, group string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		result, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier keys authenticated requests by node and the rest by IP.
func extractIdentifier(c *gin.Context) string {
	if claims, ok := SessionClaims(c); ok && claims.NodeID != "" {
		return claims.NodeID
	}
	return c.ClientIP()
}
