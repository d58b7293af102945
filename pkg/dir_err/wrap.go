// pkg/dir_err/wrap.go

package dir_err

import (
	"errors"

	cerr "github.com/cockroachdb/errors"
)

// WrapValidationError marks err as bad input, keeping its message.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return cerr.WithHint(cerr.WithStack(asValidation(err)), "validation failed")
}

// WrapConfigError marks err as a configuration problem and attaches the
// base URL hint.
func WrapConfigError(err error) error {
	if err == nil {
		return nil
	}
	return cerr.WithHint(cerr.WithStack(asValidation(err)),
		"set --base-url or USERDIR_BASE_URL, e.g. https://crudcrud.com/api/<token>")
}

func asValidation(err error) error {
	var classified *ClassifiedError
	var validation *ValidationError
	if errors.As(err, &classified) || errors.As(err, &validation) {
		return err
	}
	return &ClassifiedError{Category: CategoryValidation, Message: err.Error(), Cause: err}
}

// Hints returns the user-facing hints attached anywhere in err's chain.
func Hints(err error) string {
	if err == nil {
		return ""
	}
	return cerr.FlattenHints(err)
}
