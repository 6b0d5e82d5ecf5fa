package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastClient(retries int) *Client {
	return NewWithConfig(Config{
		RetryMax:     Retries(retries),
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})
}

func TestRetryOn(t *testing.T) {
	policy := RetryOn(DefaultStatusForcelist)
	ctx := context.Background()

	for status, want := range map[int]bool{
		http.StatusOK:                  false,
		http.StatusNotFound:            false,
		http.StatusNotImplemented:      false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusGatewayTimeout:      true,
	} {
		retry, err := policy(ctx, &http.Response{StatusCode: status}, nil)
		require.NoError(t, err)
		assert.Equal(t, want, retry, "status %d", status)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err := policy(cancelled, &http.Response{StatusCode: http.StatusTooManyRequests}, nil)
	assert.False(t, retry)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_RetriesForcelistedStatus(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	req, err := retryablehttp.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	res, err := fastClient(3).Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ExhaustedRetriesReturnLastResponse(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"status":429,"message":"API rate limit exceeded"}}`))
	}))
	defer ts.Close()

	req, err := retryablehttp.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	res, err := fastClient(2).Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Equal(t, "0", res.Header.Get("Retry-After"))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	req, err := retryablehttp.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	res, err := fastClient(3).Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ZeroRetries(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	req, err := retryablehttp.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	res, err := fastClient(0).Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewWithConfig_RetryMax(t *testing.T) {
	assert.Equal(t, DefaultRetryMax, New().RetryMax)
	assert.Equal(t, 0, NewWithConfig(Config{RetryMax: Retries(0)}).RetryMax)
	assert.Equal(t, 0, NewWithConfig(Config{RetryMax: Retries(-1)}).RetryMax)
	assert.Equal(t, 5, NewWithConfig(Config{RetryMax: Retries(5)}).RetryMax)
}

func TestFlattenHeaders(t *testing.T) {
	header := http.Header{}
	header.Add("Retry-After", "5")
	header.Add("Vary", "Accept")
	header.Add("Vary", "Origin")

	assert.Equal(t, map[string]string{
		"Retry-After": "5",
		"Vary":        "Accept, Origin",
	}, FlattenHeaders(header))
	assert.Empty(t, FlattenHeaders(http.Header{}))
}
