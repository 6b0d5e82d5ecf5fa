// Package errors defines the error returned for every failed Spotify Web API call.

package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Status codes a caller may retry. Matches the client's retry forcelist.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Code is the application error code reported by Spotify. It holds either an
// integer or a string.
type Code struct {
	num   int
	text  string
	isNum bool
}

func IntCode(n int) Code {
	return Code{num: n, isNum: true}
}

func StringCode(s string) Code {
	return Code{text: s}
}

// Int returns the integer form of the code, if the code is numeric.
func (c Code) Int() (int, bool) {
	return c.num, c.isNum
}

// Text returns the string form of the code, if the code is textual.
func (c Code) Text() (string, bool) {
	return c.text, !c.isNum
}

func (c Code) String() string {
	if c.isNum {
		return strconv.Itoa(c.num)
	}
	return c.text
}

// ServiceError carries the diagnostics of one failed Spotify call. Message is
// always set; the remaining fields may be absent. A ServiceError cannot be
// changed once built.
type ServiceError struct {
	httpStatus *int
	code       *Code
	message    string
	reason     *string
	headers    map[string]string
	cause      error
}

type Option func(*ServiceError)

func WithHTTPStatus(status int) Option {
	return func(e *ServiceError) {
		e.httpStatus = &status
	}
}

func WithCode(code Code) Option {
	return func(e *ServiceError) {
		e.code = &code
	}
}

func WithReason(reason string) Option {
	return func(e *ServiceError) {
		e.reason = &reason
	}
}

// WithHeaders records the response headers. A nil map leaves headers absent,
// an empty map is kept as present and empty.
func WithHeaders(headers map[string]string) Option {
	return func(e *ServiceError) {
		if headers == nil {
			e.headers = nil
			return
		}
		e.headers = maps.Clone(headers)
		if e.headers == nil {
			e.headers = map[string]string{}
		}
	}
}

// WithCause attaches the underlying transport error.
func WithCause(err error) Option {
	return func(e *ServiceError) {
		e.cause = err
	}
}

// Constructs a ServiceError with the given message
func New(message string, opts ...Option) *ServiceError {
	e := &ServiceError{message: message}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *ServiceError) HTTPStatus() (int, bool) {
	if e.httpStatus == nil {
		return 0, false
	}
	return *e.httpStatus, true
}

func (e *ServiceError) Code() (Code, bool) {
	if e.code == nil {
		return Code{}, false
	}
	return *e.code, true
}

func (e *ServiceError) Message() string {
	return e.message
}

func (e *ServiceError) Reason() (string, bool) {
	if e.reason == nil {
		return "", false
	}
	return *e.reason, true
}

// Headers returns a copy of the captured response headers.
func (e *ServiceError) Headers() (map[string]string, bool) {
	if e.headers == nil {
		return nil, false
	}
	return maps.Clone(e.headers), true
}

func (e *ServiceError) Error() string {
	status, code, reason := "none", "none", "none"
	if s, ok := e.HTTPStatus(); ok {
		status = strconv.Itoa(s)
	}
	if c, ok := e.Code(); ok {
		code = c.String()
	}
	if r, ok := e.Reason(); ok {
		reason = r
	}
	return fmt.Sprintf("http status: %s, code: %s - %s, reason: %s", status, code, e.message, reason)
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

// LogValue renders the error as a group, leaving out absent fields.
func (e *ServiceError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 5)
	if s, ok := e.HTTPStatus(); ok {
		attrs = append(attrs, slog.Int("http_status", s))
	}
	if c, ok := e.Code(); ok {
		attrs = append(attrs, slog.String("code", c.String()))
	}
	attrs = append(attrs, slog.String("message", e.message))
	if r, ok := e.Reason(); ok {
		attrs = append(attrs, slog.String("reason", r))
	}
	if h, ok := e.Headers(); ok {
		attrs = append(attrs, slog.Any("headers", h))
	}
	return slog.GroupValue(attrs...)
}

// Retryable reports whether the failure carries a status worth retrying.
func (e *ServiceError) Retryable() bool {
	s, ok := e.HTTPStatus()
	return ok && retryableStatuses[s]
}

// RetryAfter parses the Retry-After header, which Spotify sends in seconds.
func (e *ServiceError) RetryAfter() (time.Duration, bool) {
	if e.headers == nil {
		return 0, false
	}
	var raw string
	for k, v := range e.headers {
		if strings.EqualFold(k, "Retry-After") {
			raw = v
			break
		}
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// As finds the first ServiceError in err's chain.
func As(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}
