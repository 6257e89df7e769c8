package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFallbackLimiter(t *testing.T, config Config) *RateLimiter {
	t.Helper()

	redisClient, err := NewRedisClient("", "", 0)
	require.NoError(t, err)
	require.False(t, redisClient.IsEnabled())

	rl := NewRateLimiter(redisClient, config)
	t.Cleanup(rl.Stop)
	return rl
}

func TestAllowIP_FallbackWithinBurst(t *testing.T) {
	rl := newFallbackLimiter(t, DefaultConfig())

	result, err := rl.AllowIP(context.Background(), "10.0.0.1")
	require.NoError(t, err)

	assert.True(t, result.Allowed)
	assert.Equal(t, 60, result.Limit)
}

func TestAllowSync_FallbackExhaustsBurst(t *testing.T) {
	rl := newFallbackLimiter(t, Config{
		RequestsPerMin:  60,
		SyncsPerMin:     2,
		BurstMultiplier: 1,
	})

	// Burst floor is 5 tokens
	allowed := 0
	var last *Result
	for i := 0; i < 10; i++ {
		result, err := rl.AllowSync(context.Background(), "10.0.0.2")
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		}
		last = result
	}

	assert.Equal(t, 5, allowed)
	assert.False(t, last.Allowed)
	assert.Greater(t, last.RetryAfter.Seconds(), float64(0))
}

func TestAllowIP_SeparateKeysPerIP(t *testing.T) {
	rl := newFallbackLimiter(t, Config{
		RequestsPerMin:  1,
		SyncsPerMin:     1,
		BurstMultiplier: 1,
	})

	for i := 0; i < 5; i++ {
		_, err := rl.AllowIP(context.Background(), "10.0.0.3")
		require.NoError(t, err)
	}

	result, err := rl.AllowIP(context.Background(), "10.0.0.4")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestGetStats_Fallback(t *testing.T) {
	rl := newFallbackLimiter(t, DefaultConfig())

	_, err := rl.AllowIP(context.Background(), "10.0.0.5")
	require.NoError(t, err)

	stats := rl.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
}

func TestIPRateLimitMiddleware_Blocks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := newFallbackLimiter(t, Config{
		RequestsPerMin:  1,
		SyncsPerMin:     1,
		BurstMultiplier: 1,
	})

	router := gin.New()
	router.Use(rl.IPRateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var lastCode int
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.6:1234"
		router.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
