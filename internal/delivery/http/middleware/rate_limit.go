package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/logger"
	"talent-onboarding-backend/pkg/metrics"
	"talent-onboarding-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig describes one fixed-window limiter.
type RateLimitConfig struct {
	// Name labels the limiter in logs and metrics
	Name   string
	Limit  int
	Window time.Duration
	// KeyFunc extracts the client key (default: client IP)
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects requests when Redis errors instead of falling back
	// to the in-process counter
	FailClosed bool
}

// DefaultRateLimitConfig is the per-IP budget applied to every route.
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Name:      "global",
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
	}
}

// IdentitySyncRateLimitConfig is the stricter budget for identity sync, which
// calls the upstream identity service with the caller's token. It keys on
// the draft session so one browser cannot spread calls over many IPs.
func IdentitySyncRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Name:       "identity_sync",
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:identity:",
		FailClosed: true,
		KeyFunc: func(c *gin.Context) string {
			if sid := c.GetString(string(domain.KeySessionID)); sid != "" {
				return "sid:" + sid
			}
			return "ip:" + c.ClientIP()
		},
	}
}

// INCR with the window TTL set on the first hit. Returns {count, ttl}.
var fixedWindowScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

// windowCounter is the in-process fallback used while Redis is unavailable.
type windowCounter struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var (
	fallbackCounters = sync.Map{}
	sweepOnce        sync.Once
)

func sweepFallbackCounters() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for now := range ticker.C {
			fallbackCounters.Range(func(key, value interface{}) bool {
				wc := value.(*windowCounter)
				wc.mu.Lock()
				if now.After(wc.resetAt) {
					fallbackCounters.Delete(key)
				}
				wc.mu.Unlock()
				return true
			})
		}
	}()
}

// RateLimitMiddleware enforces config using Redis when initialized and the
// in-process counter otherwise.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	sweepOnce.Do(sweepFallbackCounters)
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		count, resetAt, err := countRequest(c.Request.Context(), key, config)
		if err != nil {
			logger.Log.Error("Rate limit backend failure",
				"limiter", config.Name,
				"error", err,
				"path", c.FullPath(),
			)
			metrics.RateLimited.WithLabelValues(config.Name, "backend_unavailable").Inc()
			response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
			c.Abort()
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			requestID, _ := c.Get("RequestID")
			logger.Log.Warn("Rate limit triggered",
				"limiter", config.Name,
				"key", key,
				"path", c.FullPath(),
				"request_id", requestID,
			)
			metrics.RateLimited.WithLabelValues(config.Name, "exceeded").Inc()

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// countRequest records one hit for key. A Redis error only surfaces when the
// limiter fails closed.
func countRequest(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	if client := redis.Client(); client != nil {
		count, resetAt, err := countInRedis(ctx, client, key, config.Window)
		if err == nil {
			return count, resetAt, nil
		}
		if config.FailClosed {
			return 0, time.Time{}, err
		}
		logger.Log.Warn("Rate limit falling back to in-process counter", "limiter", config.Name, "error", err)
	}

	count, resetAt := countInProcess(key, config.Window, time.Now())
	return count, resetAt, nil
}

func countInRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := fixedWindowScript.Run(ctx, client, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected reply %v", result)
	}

	return int(result[0]), time.Now().Add(time.Duration(result[1]) * time.Second), nil
}

func countInProcess(key string, window time.Duration, now time.Time) (int, time.Time) {
	v, _ := fallbackCounters.LoadOrStore(key, &windowCounter{resetAt: now.Add(window)})
	wc := v.(*windowCounter)

	wc.mu.Lock()
	defer wc.mu.Unlock()

	if now.After(wc.resetAt) {
		wc.count = 0
		wc.resetAt = now.Add(window)
	}
	wc.count++
	return wc.count, wc.resetAt
}
