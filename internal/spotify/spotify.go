// Package for calling the Spotify Web API

package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gatewayHttp "spotify-gateway/internal/http"
	gatewayJson "spotify-gateway/internal/json"
	"spotify-gateway/internal/logging"
	"spotify-gateway/internal/metrics"
	spotifyErrors "spotify-gateway/internal/spotify/errors"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
)

const DefaultBaseURL = "https://api.spotify.com/v1/"

// Receives every failure the client produces
type FailureJournal interface {
	RecordServiceError(ctx context.Context, method, url string, serviceErr *spotifyErrors.ServiceError) error
}

type Client struct {
	http     *gatewayHttp.Client
	tokens   oauth2.TokenSource
	baseURL  string
	language string
	logger   *slog.Logger
	metrics  *metrics.Metrics
	journal  FailureJournal
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

func WithTokenSource(tokens oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// Uses a fixed access token. It cannot be refreshed.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	}
}

// Sets the Accept-Language header (ISO-639 code)
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithJournal(journal FailureJournal) Option {
	return func(c *Client) {
		c.journal = journal
	}
}

// Creates a Spotify API client
func New(httpClient *gatewayHttp.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = gatewayHttp.New()
	}
	c := &Client{
		http:    httpClient,
		baseURL: DefaultBaseURL,
		logger:  slog.New(logging.NullLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	return c.call(ctx, http.MethodGet, path, query, nil, dst)
}

// Sends a request and decodes the JSON response into dst. Every failure is
// returned as a *spotifyErrors.ServiceError.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, payload any, dst any) error {
	endpoint := c.resolve(path, query)
	ctx = logging.AppendCtx(ctx, slog.String("spotify_url", endpoint))

	// Build request
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return c.fail(ctx, method, endpoint, transportError(endpoint, err))
		}
		body = bytes.NewReader(raw)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return c.fail(ctx, method, endpoint, transportError(endpoint, err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return c.fail(ctx, method, endpoint, TokenError(err))
		}
		token.SetAuthHeader(req.Request)
	}

	// Send request
	c.logger.DebugContext(ctx, "Sending spotify request", slog.String("method", method))
	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		// The retry policy can fail after a response arrived
		if res != nil {
			res.Body.Close()
		}
		c.metrics.ObserveRequest(method, 0, time.Since(start))
		return c.fail(ctx, method, endpoint, transportError(endpoint, err))
	}
	defer res.Body.Close()
	c.metrics.ObserveRequest(method, res.StatusCode, time.Since(start))

	if res.StatusCode >= http.StatusBadRequest {
		return c.fail(ctx, method, endpoint, ErrorFromResponse(endpoint, res))
	}
	if dst == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	// Decode response
	c.logger.DebugContext(ctx, "Decoding spotify response")
	if _, err := gatewayJson.DecodeBody(dst, res.Body); err != nil {
		return c.fail(ctx, method, endpoint, spotifyErrors.New(
			fmt.Sprintf("%s:\n %s", endpoint, "invalid response body"),
			spotifyErrors.WithHTTPStatus(res.StatusCode),
			spotifyErrors.WithCode(spotifyErrors.IntCode(-1)),
			spotifyErrors.WithHeaders(gatewayHttp.FlattenHeaders(res.Header)),
			spotifyErrors.WithCause(err),
		))
	}
	return nil
}

func (c *Client) resolve(path string, query url.Values) string {
	endpoint := path
	if !strings.HasPrefix(path, "http") {
		endpoint = c.baseURL + strings.TrimPrefix(path, "/")
	}
	if len(query) == 0 {
		return endpoint
	}
	if strings.Contains(endpoint, "?") {
		return endpoint + "&" + query.Encode()
	}
	return endpoint + "?" + query.Encode()
}

func (c *Client) fail(ctx context.Context, method, endpoint string, serviceErr *spotifyErrors.ServiceError) error {
	c.logger.ErrorContext(ctx, "Spotify request failed",
		slog.String("method", method),
		slog.Any("error", serviceErr),
	)

	status, hasStatus := serviceErr.HTTPStatus()
	reason, hasReason := serviceErr.Reason()
	c.metrics.ObserveFailure(status, hasStatus, reason, hasReason)

	if c.journal != nil {
		if err := c.journal.RecordServiceError(ctx, method, endpoint, serviceErr); err != nil {
			c.logger.WarnContext(ctx, "Failed to record spotify failure", slog.Any("error", err))
		}
	}
	return serviceErr
}
