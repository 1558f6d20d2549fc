package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Config holds retry configuration parameters
type Config struct {
	MaxAttempts int           `json:"max_attempts"`
	BaseDelay   time.Duration `json:"base_delay"`
	MaxDelay    time.Duration `json:"max_delay"`
	JitterRatio float64       `json:"jitter_ratio"`
}

// DefaultConfig returns the default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    3 * time.Second,
		JitterRatio: 0.25,
	}
}

// WithRetry performs exponential backoff retries on transient errors.
func WithRetry(ctx context.Context, fn func() error) error {
	return WithRetryConfig(ctx, fn, DefaultConfig())
}

// WithRetryConfig performs exponential backoff retries with custom configuration.
// A Retry-After hint on an HTTPStatusError replaces the computed delay, still
// bounded by MaxDelay.
func WithRetryConfig(ctx context.Context, fn func() error, config Config) error {
	var attempt int
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		attempt++
		if attempt >= config.MaxAttempts {
			return err
		}
		delay := time.Duration(float64(config.BaseDelay) * math.Pow(2, float64(attempt-1)))
		var he *HTTPStatusError
		if errors.As(err, &he) && he.RetryAfter > 0 {
			delay = he.RetryAfter
		}
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
		jitter := time.Duration(rand.Float64() * config.JitterRatio * float64(delay))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay + jitter):
		}
	}
}

// HTTPStatusError is a non-2xx response from the API.
type HTTPStatusError struct {
	Status     int           `json:"status"`
	Body       string        `json:"body"`
	Source     string        `json:"source"` // provider id, e.g. "pinecone.chat"
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// NewHTTPStatusError creates a new HTTP status error
func NewHTTPStatusError(status int, body, source string) *HTTPStatusError {
	return &HTTPStatusError{
		Status: status,
		Body:   body,
		Source: source,
	}
}

// FromResponse builds an HTTPStatusError from resp, reading the Retry-After
// header when present. The body must already be read by the caller.
func FromResponse(resp *http.Response, body, source string) *HTTPStatusError {
	e := NewHTTPStatusError(resp.StatusCode, body, source)
	e.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	return e
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s http %d: %s", e.Source, e.Status, e.Body)
}

// IsTransient determines if an error is worth retrying using proper error type checking.
func IsTransient(err error) bool {
	var he *HTTPStatusError
	if errors.As(err, &he) {
		return he.Status == http.StatusTooManyRequests || he.Status >= 500
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

// parseRetryAfter accepts delay-seconds only; HTTP dates are ignored.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
