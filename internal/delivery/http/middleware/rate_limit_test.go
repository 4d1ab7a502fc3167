package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedRouter(config RateLimitConfig) *gin.Engine {
	r := gin.New()
	r.Use(RateLimitMiddleware(config))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitMiddleware_InMemoryFallback(t *testing.T) {
	config := DefaultRateLimitConfig(2, time.Minute)
	config.KeyPrefix = "rl:test:fallback:"
	r := rateLimitedRouter(config)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		}
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddleware_KeysPerClient(t *testing.T) {
	config := IdentitySyncRateLimitConfig(1, time.Minute)
	config.KeyPrefix = "rl:test:per-client:"
	r := rateLimitedRouter(config)

	for _, addr := range []string{"203.0.113.8:1", "203.0.113.9:1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, addr)
	}
}

func TestCountInRedis_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		count, resetAt, err := countInRedis(ctx, client, "rl:test:redis", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
		assert.WithinDuration(t, time.Now().Add(time.Minute), resetAt, 2*time.Second)
	}
	assert.Equal(t, time.Minute, mr.TTL("rl:test:redis"))

	mr.FastForward(time.Minute + time.Second)
	count, _, err := countInRedis(ctx, client, "rl:test:redis", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountInRedis_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, _, err := countInRedis(context.Background(), client, "rl:test:down", time.Minute)

	assert.Error(t, err)
}
