// pkg/dir_err/classification.go
//
// Error classification with exit codes. The request error types in errors.go
// classify themselves so callers only deal with one category enum.

package dir_err

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - missing input or bad configuration (exit 2)
	CategoryValidation
	// CategoryNetwork - dial failures and timeouts (exit 1)
	CategoryNetwork
	// CategoryRemote - the users service answered with an error (exit 1)
	CategoryRemote
	// CategoryUser - user cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - bugs in userdir itself (exit 3)
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategorySystem:
		return "system"
	case CategoryValidation:
		return "validation"
	case CategoryNetwork:
		return "network"
	case CategoryRemote:
		return "remote"
	case CategoryUser:
		return "user"
	case CategoryInternal:
		return "internal"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ExitCode returns the process exit code for the category.
func (c ErrorCategory) ExitCode() int {
	switch c {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
	DocsURL     string
}

func (e *ClassifiedError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	if e.DocsURL != "" {
		sb.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return sb.String()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

func (e *ClassifiedError) ExitCode() int {
	return e.Category.ExitCode()
}

// Classify reports the category of any error. Unknown errors are CategorySystem.
func Classify(err error) ErrorCategory {
	var classified *ClassifiedError
	var validation *ValidationError
	var transport *TransportError
	var remote *RemoteError

	switch {
	case errors.As(err, &classified):
		return classified.Category
	case errors.As(err, &validation):
		return CategoryValidation
	case cerr.IsAssertionFailure(err):
		return CategoryInternal
	case errors.Is(err, context.Canceled):
		return CategoryUser
	case errors.As(err, &transport):
		return CategoryNetwork
	case errors.As(err, &remote):
		return CategoryRemote
	default:
		return CategorySystem
	}
}

// GetExitCode extracts exit code from any error.
// Returns 0 for nil, the category's code for everything else.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	return Classify(err).ExitCode()
}

// IsExpectedUserError reports errors the user can fix by changing their input.
// They are shown without a stack trace.
func IsExpectedUserError(err error) bool {
	if err == nil {
		return false
	}
	switch Classify(err) {
	case CategoryValidation, CategoryUser:
		return true
	default:
		return false
	}
}

// NewConfigError creates an error for unusable configuration.
func NewConfigError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInternalError creates an error for userdir bugs.
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in userdir",
			"Re-run with LOG_LEVEL=DEBUG and include the log file when reporting it",
		},
	}
}

// NewUserCancelledError creates an error for user-initiated cancellation
func NewUserCancelledError(operation string) error {
	return &ClassifiedError{
		Category:    CategoryUser,
		Message:     fmt.Sprintf("Operation cancelled by user: %s", operation),
		Remediation: []string{"Run the command again to retry"},
	}
}
