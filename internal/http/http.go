// Package for the retrying HTTP transport

package http

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	DefaultRetryMax     = 3
	DefaultRetryWaitMin = 300 * time.Millisecond
	DefaultRetryWaitMax = 10 * time.Second
	DefaultTimeout      = 5 * time.Second
)

// Statuses retried by default
var DefaultStatusForcelist = []int{
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

type Config struct {
	// Retries after the first attempt. Nil means DefaultRetryMax; zero disables retries.
	RetryMax        *int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	Timeout         time.Duration
	StatusForcelist []int
	Logger          *slog.Logger
}

type Client struct {
	*retryablehttp.Client
}

// Pointer to n, for Config.RetryMax
func Retries(n int) *int {
	return &n
}

// Creates a client with the default retry policy
func New() *Client {
	return NewWithConfig(Config{})
}

func NewWithConfig(cfg Config) *Client {
	retryMax := DefaultRetryMax
	if cfg.RetryMax != nil {
		retryMax = max(*cfg.RetryMax, 0)
	}
	if cfg.RetryWaitMin == 0 {
		cfg.RetryWaitMin = DefaultRetryWaitMin
	}
	if cfg.RetryWaitMax == 0 {
		cfg.RetryWaitMax = DefaultRetryWaitMax
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if len(cfg.StatusForcelist) == 0 {
		cfg.StatusForcelist = DefaultStatusForcelist
	}

	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = cfg.RetryWaitMin
	client.RetryWaitMax = cfg.RetryWaitMax
	client.HTTPClient.Timeout = cfg.Timeout
	client.CheckRetry = RetryOn(cfg.StatusForcelist)
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = nil
	if cfg.Logger != nil {
		client.Logger = cfg.Logger
	}
	return &Client{
		Client: client,
	}
}

// Retry policy that retries transport errors and the given statuses only
func RetryOn(statuses []int) retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return slices.Contains(statuses, resp.StatusCode), nil
	}
}

// Flattens response headers, joining repeated values with ", "
func FlattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for k, v := range header {
		flat[k] = strings.Join(v, ", ")
	}
	return flat
}
