package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IPRateLimitMiddleware throttles all requests per client IP
func (rl *RateLimiter) IPRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.enforce(c, rl.AllowIP, "requests")
	}
}

// SyncRateLimitMiddleware throttles sync requests, which fan out to the
// GitHub API and are far more expensive than reads.
func (rl *RateLimiter) SyncRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.enforce(c, rl.AllowSync, "sync requests")
	}
}

func (rl *RateLimiter) enforce(c *gin.Context, allow func(context.Context, string) (*Result, error), what string) {
	ip := c.ClientIP()

	result, err := allow(c.Request.Context(), ip)
	if err != nil {
		// A broken limiter should not block traffic
		slog.Error("Rate limit check failed", "ip", ip, "error", err)
		c.Next()
		return
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if !result.Allowed {
		c.Header("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate limit exceeded",
			"message":     fmt.Sprintf("You have exceeded the limit of %d %s per minute", result.Limit, what),
			"retry_after": int(result.RetryAfter.Seconds()),
			"reset_at":    result.ResetAt.Unix(),
		})
		c.Abort()
		return
	}

	c.Next()
}
