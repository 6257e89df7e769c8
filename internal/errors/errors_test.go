package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToAppError_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		category   ErrorCategory
		httpStatus int
	}{
		{
			name:       "app error passes through",
			err:        NewNotFoundError("no rating"),
			category:   CategoryNotFound,
			httpStatus: http.StatusNotFound,
		},
		{
			name:       "connection refused maps to network",
			err:        fmt.Errorf("dial tcp: connection refused"),
			category:   CategoryNetwork,
			httpStatus: http.StatusBadGateway,
		},
		{
			name:       "timeout string maps to timeout",
			err:        fmt.Errorf("request timeout after 30s"),
			category:   CategoryTimeout,
			httpStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "context deadline maps to timeout",
			err:        context.DeadlineExceeded,
			category:   CategoryTimeout,
			httpStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "unknown error maps to internal",
			err:        errors.New("something odd"),
			category:   CategoryInternal,
			httpStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			assert.Equal(t, tt.category, appErr.Category)
			assert.Equal(t, tt.httpStatus, appErr.HTTPStatus)
		})
	}
}

func TestToAppError_Nil(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "network", err: NewNetworkError("down", nil), retryable: true},
		{name: "timeout", err: NewTimeoutError("slow", nil), retryable: true},
		{name: "external api", err: NewExternalAPIError("GitHub", nil), retryable: true},
		{name: "rate limit", err: NewRateLimitError("60"), retryable: true},
		{name: "validation", err: NewValidationError("bad input"), retryable: false},
		{name: "not found", err: NewNotFoundError("missing"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryableError(tt.err))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	err := NewValidationError("discussion number required")
	assert.Equal(t, "[VALIDATION] discussion number required", err.Error())
}
