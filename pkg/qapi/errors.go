package qapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrorKind identifies the category of an API failure. Exactly one kind is
// produced per failed call.
type ErrorKind string

// Error kinds produced by Classify and the transport layer.
const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindNotFound       ErrorKind = "not_found"
	KindRemovedAPI     ErrorKind = "removed_api"
	KindRateLimit      ErrorKind = "rate_limit"
	KindServer         ErrorKind = "server"
	KindNetwork        ErrorKind = "network"
	KindTimeout        ErrorKind = "timeout"
	KindAPI            ErrorKind = "api"
)

// FieldError is a single structured validation message from a 400 response.
type FieldError struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"msg"             yaml:"msg"`
}

// APIError is the typed error produced at the transport boundary. Callers
// branch on Kind (or the Is* helpers) instead of matching message strings.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string

	// FieldErrors carries the structured validation messages from a 400
	// response body, verbatim.
	FieldErrors []FieldError

	// RetryAfter is the parsed Retry-After value of a 429 response. Zero
	// means the header was absent.
	RetryAfter time.Duration

	// RequestID is the request-correlation identifier of a 5xx response,
	// when the server sent one.
	RequestID string

	// Migration names the replacement endpoint(s) for a removed API.
	Migration []string

	// Err is the underlying transport error for network/timeout kinds.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch e.Kind {
	case KindNetwork, KindTimeout:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	default:
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// serverError is the platform's error response body shape.
type serverError struct {
	Errors []FieldError `json:"errors"`
}

// Classify maps a non-2xx (status, body, headers) triple into exactly one
// typed *APIError. It is pure and never fails: malformed or non-JSON bodies
// degrade to the raw text or the standard status text.
func Classify(status int, body []byte, header http.Header) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    messageFromBody(status, body),
	}

	fields := fieldErrorsFromBody(body)

	switch {
	case status == http.StatusBadRequest:
		apiErr.Kind = KindValidation
		apiErr.FieldErrors = fields
	case status == http.StatusUnauthorized:
		apiErr.Kind = KindAuthentication
	case status == http.StatusForbidden:
		apiErr.Kind = KindAuthorization
	case status == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case status == http.StatusGone:
		apiErr.Kind = KindRemovedAPI
	case status == http.StatusTooManyRequests:
		apiErr.Kind = KindRateLimit
		apiErr.RetryAfter = parseRetryAfter(header)
	case status >= 500 && status <= 599:
		apiErr.Kind = KindServer
		if header != nil {
			apiErr.RequestID = header.Get("X-Request-Id")
		}
	default:
		apiErr.Kind = KindAPI
	}

	return apiErr
}

// NewNetworkError wraps a transport-level failure (DNS, refused connection,
// aborted socket) for which no HTTP response was obtained.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: err.Error(),
		Err:     err,
	}
}

// NewTimeoutError wraps a deadline or timeout failure with no HTTP response.
func NewTimeoutError(err error) *APIError {
	return &APIError{
		Kind:    KindTimeout,
		Message: err.Error(),
		Err:     err,
	}
}

// NewRemovedAPIError builds the error a resource client returns for an
// endpoint it knows was removed, without issuing a request. The migration
// list names the replacement capabilities.
func NewRemovedAPIError(capability string, migration ...string) *APIError {
	msg := capability + " has been removed from the API"
	if len(migration) > 0 {
		msg += "; use " + strings.Join(migration, ", ") + " instead"
	}

	return &APIError{
		Kind:       KindRemovedAPI,
		StatusCode: http.StatusGone,
		Message:    msg,
		Migration:  migration,
	}
}

// messageFromBody extracts a human-readable message from an error body,
// falling back to the raw text and finally the status text.
func messageFromBody(status int, body []byte) string {
	if fields := fieldErrorsFromBody(body); len(fields) > 0 {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			msgs = append(msgs, f.Message)
		}

		return strings.Join(msgs, "; ")
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return http.StatusText(status)
}

// fieldErrorsFromBody parses the {"errors":[{"msg":...}]} body shape.
// Unparsable bodies yield nil, never an error.
func fieldErrorsFromBody(body []byte) []FieldError {
	if len(body) == 0 {
		return nil
	}

	var parsed serverError
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}

	return parsed.Errors
}

// parseRetryAfter reads the Retry-After header as whole seconds. A missing
// or malformed header yields zero.
func parseRetryAfter(header http.Header) time.Duration {
	if header == nil {
		return 0
	}

	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}

	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}

// kindIs reports whether err is an *APIError of the given kind.
func kindIs(err error, kind ErrorKind) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}

// IsValidation checks if the error is a validation (400) error.
func IsValidation(err error) bool { return kindIs(err, KindValidation) }

// IsAuthentication checks if the error is an authentication (401) error.
func IsAuthentication(err error) bool { return kindIs(err, KindAuthentication) }

// IsAuthorization checks if the error is an authorization (403) error.
func IsAuthorization(err error) bool { return kindIs(err, KindAuthorization) }

// IsNotFound checks if the error is a not-found (404) error.
func IsNotFound(err error) bool { return kindIs(err, KindNotFound) }

// IsRemovedAPI checks if the error reports a removed endpoint.
func IsRemovedAPI(err error) bool { return kindIs(err, KindRemovedAPI) }

// IsRateLimit checks if the error is a rate-limit (429) error.
func IsRateLimit(err error) bool { return kindIs(err, KindRateLimit) }

// IsServer checks if the error is a server-side (5xx) error.
func IsServer(err error) bool { return kindIs(err, KindServer) }

// IsNetwork checks if the error is a transport-level failure with no status.
func IsNetwork(err error) bool { return kindIs(err, KindNetwork) }

// IsTimeout checks if the error is a timeout failure.
func IsTimeout(err error) bool { return kindIs(err, KindTimeout) }

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrServerURLRequired     = errors.New("server URL is required")
	ErrNoHostInURL           = errors.New("no host specified in URL")
	ErrTokenRequired         = errors.New("authentication token is required")
	ErrProjectNotFound       = errors.New("project not found")
	ErrQualityGateNotFound   = errors.New("quality gate not found")
	ErrComponentKeyRequired  = errors.New("component key is required")
	ErrProjectKeyRequired    = errors.New("project key is required")
	ErrConflictingParameters = errors.New("conflicting search parameters")
	ErrUnknownConfigKey      = errors.New("unknown configuration key")
	ErrNotAuthenticated      = errors.New("not authenticated")
)
