// pkg/apiclient/validation.go
// Presence checks for parameters and fields. Values are not type-checked:
// the remote service is the authority on what it accepts.

package apiclient

import (
	"fmt"
	"strings"
)

// MissingValues returns the names of required parameters, then required
// fields, whose values are absent or blank after trimming whitespace.
func MissingValues(op *Operation, params map[string]string, fields map[string]interface{}) []string {
	var missing []string

	for _, def := range op.Params {
		if def.Required && strings.TrimSpace(params[def.Name]) == "" {
			missing = append(missing, def.Name)
		}
	}

	for _, def := range op.Fields {
		if def.Required && isBlank(fields[def.Name]) {
			missing = append(missing, def.Name)
		}
	}

	return missing
}

func isBlank(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case fmt.Stringer:
		return strings.TrimSpace(v.String()) == ""
	default:
		return false
	}
}
