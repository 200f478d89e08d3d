package cloudglue

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Error is the uniform error type returned by every SDK operation.
// Transport failures carry the HTTP status code, raw response body, response
// headers, and reason phrase; local failures (validation, poll timeout)
// carry only a message and a wrapped sentinel.
type Error struct {
	// Message is a human-readable description of the failure.
	Message string

	// StatusCode is the HTTP status code, or 0 for non-transport failures.
	StatusCode int

	// Data is the raw response body, if any.
	Data []byte

	// Headers are the response headers, if any.
	Headers http.Header

	// Reason is the HTTP reason phrase (e.g., "Not Found").
	Reason string

	// RequestID is the client-generated request ID sent with the failed call.
	RequestID string

	// Err is the underlying cause, reachable via errors.Is / errors.As.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("cloudglue: %s (status=%d %s)", e.Message, e.StatusCode, e.Reason)
	}
	return "cloudglue: " + e.Message
}

// Unwrap returns the underlying error for error chaining.
func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	// ErrInvalidRequest indicates caller-supplied arguments violated a local
	// precondition. No network call was attempted.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTimeout indicates a polling loop exhausted its wait budget without
	// observing a terminal status.
	ErrTimeout = errors.New("wait timeout")

	// ErrNetwork indicates the HTTP round trip itself failed.
	ErrNetwork = errors.New("network error")

	// ErrDecode indicates a response body could not be decoded.
	ErrDecode = errors.New("decode error")
)

// ErrAPIKeyNotFound is returned by New when no API key is available.
var ErrAPIKeyNotFound = errors.New(
	"cloudglue: API key must be provided with WithAPIKey or via the CLOUDGLUE_API_KEY environment variable")

func newValidationError(message string) *Error {
	return &Error{Message: message, Err: ErrInvalidRequest}
}

func newNetworkError(err error, requestID string) *Error {
	return &Error{Message: err.Error(), RequestID: requestID, Err: errors.Join(ErrNetwork, err)}
}

func newDecodeError(err error, requestID string) *Error {
	return &Error{Message: err.Error(), RequestID: requestID, Err: errors.Join(ErrDecode, err)}
}

func newTimeoutError(what string, timeout time.Duration) *Error {
	return &Error{
		Message: fmt.Sprintf("%s did not complete within %s", what, timeout),
		Err:     ErrTimeout,
	}
}

// apiErrorBody is the error envelope the API returns on non-2xx responses.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
	Message string `json:"message"`
}

// normalizeError converts a non-2xx HTTP response into an *Error, preserving
// the status code, body, headers, and reason phrase.
func normalizeError(resp *http.Response, body []byte, requestID string) *Error {
	message := extractMessage(body)
	if message == "" {
		message = "request failed"
	}

	return &Error{
		Message:    message,
		StatusCode: resp.StatusCode,
		Data:       body,
		Headers:    resp.Header,
		Reason:     reasonPhrase(resp),
		RequestID:  requestID,
	}
}

// extractMessage pulls a message out of the error envelope, falling back to
// the raw body text.
func extractMessage(body []byte) string {
	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// reasonPhrase returns the reason portion of the status line, preferring what
// the server actually sent over the standard text.
func reasonPhrase(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode)
	if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, prefix)); reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
