package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	gatewayHttp "spotify-gateway/internal/http"
	spotifyErrors "spotify-gateway/internal/spotify/errors"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

const maxErrorBody = 1 << 20

// Regular error object: {"error": {"status": 404, "message": "...", "reason": "..."}}
type regularError struct {
	spotify.Error
	Reason string `json:"reason"`
}

// Either the regular error object or the authentication error string
type errorEnvelope struct {
	Error       json.RawMessage `json:"error"`
	Description string          `json:"error_description"`
}

type errorDetails struct {
	message string
	code    spotifyErrors.Code
	reason  *string
}

// Parses a Spotify error body. Unknown bodies yield the message "error".
func parseErrorBody(body []byte) errorDetails {
	details := errorDetails{message: "error", code: spotifyErrors.IntCode(-1)}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return details
	}

	var regular regularError
	if err := json.Unmarshal(envelope.Error, &regular); err == nil {
		if regular.Message != "" {
			details.message = regular.Message
		}
		if regular.Reason != "" {
			details.reason = &regular.Reason
		}
		return details
	}

	var authCode string
	if err := json.Unmarshal(envelope.Error, &authCode); err == nil {
		details.code = spotifyErrors.StringCode(authCode)
		details.message = authCode
		if envelope.Description != "" {
			details.message = envelope.Description
		}
	}
	return details
}

func (d errorDetails) build(endpoint string, status int, header http.Header, extra ...spotifyErrors.Option) *spotifyErrors.ServiceError {
	opts := []spotifyErrors.Option{
		spotifyErrors.WithHTTPStatus(status),
		spotifyErrors.WithCode(d.code),
		spotifyErrors.WithHeaders(gatewayHttp.FlattenHeaders(header)),
	}
	if d.reason != nil {
		opts = append(opts, spotifyErrors.WithReason(*d.reason))
	}
	opts = append(opts, extra...)
	return spotifyErrors.New(fmt.Sprintf("%s:\n %s", endpoint, d.message), opts...)
}

// Builds the error for a non-success response. The body is consumed.
func ErrorFromResponse(endpoint string, res *http.Response) *spotifyErrors.ServiceError {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return parseErrorBody(body).build(endpoint, res.StatusCode, res.Header)
}

// Builds the error for a token acquisition failure
func TokenError(err error) *spotifyErrors.ServiceError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		endpoint := TokenURL
		if retrieveErr.Response.Request != nil {
			endpoint = retrieveErr.Response.Request.URL.String()
		}
		return parseErrorBody(retrieveErr.Body).build(
			endpoint,
			retrieveErr.Response.StatusCode,
			retrieveErr.Response.Header,
			spotifyErrors.WithCause(err),
		)
	}
	return transportError(TokenURL, err)
}

func transportError(endpoint string, err error) *spotifyErrors.ServiceError {
	return spotifyErrors.New(
		fmt.Sprintf("%s:\n %s", endpoint, err),
		spotifyErrors.WithCode(spotifyErrors.IntCode(-1)),
		spotifyErrors.WithCause(err),
	)
}
