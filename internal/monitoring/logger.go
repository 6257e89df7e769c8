// Package monitoring carries the service's structured logging, request
// metrics, and the Gin middleware that feeds them.
package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with domain-specific helpers
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stdout
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// SyncLogger logs the outcome of one resource sync
func (l *Logger) SyncLogger(source, resourceID string, wilsonScore float64, totalVotes, ratingCount int, duration time.Duration) {
	l.Info("Resource synced",
		"source", source,
		"resource_id", resourceID,
		"wilson_score", wilsonScore,
		"total_votes", totalVotes,
		"rating_count", ratingCount,
		"duration_ms", duration.Milliseconds(),
	)
}

// ExternalAPILogger logs external API call results
func (l *Logger) ExternalAPILogger(api, method, host string, statusCode int, success bool) {
	if success {
		l.Info("External API call",
			"api", api,
			"method", method,
			"host", host,
			"status_code", statusCode,
		)
		return
	}

	l.Warn("External API call failed",
		"api", api,
		"method", method,
		"host", host,
		"status_code", statusCode,
	)
}

// APIErrorLogger logs API errors with request context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}
