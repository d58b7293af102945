// pkg/dir_err/errors.go

package dir_err

import (
	"fmt"
	"net/http"
	"strings"
)

// maxBodyExcerpt bounds how much of a remote error body ends up in messages.
const maxBodyExcerpt = 200

// ValidationError reports required values that were empty. No request was sent.
type ValidationError struct {
	Fields []string
}

// MissingFields builds a ValidationError naming fields in the order given.
func MissingFields(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "missing required value"
	}
	return "missing " + strings.Join(e.Fields, " and ")
}

// Missing reports whether field is one of the missing values.
func (e *ValidationError) Missing(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// TransportError is a request that never produced an HTTP response:
// dial failures, TLS errors, timeouts, cancellation.
// Path is relative to the base URL, which carries the access token.
type TransportError struct {
	Method string
	Path   string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// RemoteError is a response the client could not accept: a non-success
// status, or a success status with a body that did not decode.
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Cause      error
}

// NewRemoteError trims body to a short single-line excerpt.
func NewRemoteError(method, path string, status int, body []byte) *RemoteError {
	return &RemoteError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Body:       Excerpt(body),
	}
}

func (e *RemoteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: malformed response (status %d): %v", e.Method, e.Path, e.StatusCode, e.Cause)
	}

	msg := fmt.Sprintf("%s %s: remote returned status %d", e.Method, e.Path, e.StatusCode)
	if text := http.StatusText(e.StatusCode); text != "" {
		msg += " " + text
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// Excerpt collapses whitespace and truncates body for inclusion in messages.
func Excerpt(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	if runes := []rune(text); len(runes) > maxBodyExcerpt {
		text = string(runes[:maxBodyExcerpt]) + "…"
	}
	return text
}
