package resilience

import (
	"context"
	goerrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/promptkit/bundle-pulse/internal/errors"
)

// Client wraps an http.Client with a tuned transport, retries, and a
// circuit breaker. All upstream API traffic goes through one of these.
type Client struct {
	httpClient *http.Client
	breaker    *CircuitBreaker
	retry      RetryConfig
}

// NewClient creates a resilient HTTP client
func NewClient(timeout time.Duration, breakerConfig CircuitBreakerConfig, retryConfig RetryConfig) *Client {
	transport := &http.Transport{
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if retryConfig.Retryable == nil {
		retryConfig.Retryable = errors.IsRetryableError
	}
	base := retryConfig.Retryable
	retryConfig.Retryable = func(err error) bool {
		var statusErr *HTTPStatusError
		if goerrors.As(err, &statusErr) {
			return true
		}
		// An open circuit will keep rejecting until the recovery
		// timeout, retrying inside it is pointless.
		var openErr *CircuitOpenError
		if goerrors.As(err, &openErr) {
			return false
		}
		return base(err)
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		breaker: NewCircuitBreaker(breakerConfig),
		retry:   retryConfig,
	}
}

// Do executes the request with retries and circuit breaker protection.
// Responses with retryable status codes (429 and 5xx) count as failures
// and are retried; the final response is returned either way.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string) (*http.Response, error) {
	var resp *http.Response

	err := Retry(ctx, c.retry, func() error {
		return c.breaker.Call(func() error {
			req, err := http.NewRequestWithContext(ctx, method, url, nil)
			if err != nil {
				return err
			}
			for key, value := range headers {
				req.Header.Set(key, value)
			}

			r, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}

			if retryableStatus(r.StatusCode) {
				r.Body.Close()
				return &HTTPStatusError{StatusCode: r.StatusCode, Status: r.Status}
			}

			resp = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// BreakerState exposes the circuit state for stats endpoints
func (c *Client) BreakerState() CircuitState {
	return c.breaker.State()
}

// CloseIdleConnections releases idle transport connections
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

func retryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// HTTPStatusError reports an upstream response with a failing status code
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream returned %s", e.Status)
}
