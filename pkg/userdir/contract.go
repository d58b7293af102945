// pkg/userdir/contract.go

package userdir

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/apiclient"
	"github.com/hashicorp/go-multierror"
)

// expectation is the fixed shape of one users operation. A definition
// override may reword descriptions but not change these.
type expectation struct {
	op         Operation
	method     string
	path       string
	params     []string
	fields     []string
	emptyOn404 bool
}

var contract = []expectation{
	{op: OpList, method: http.MethodGet, path: "/users"},
	{op: OpGet, method: http.MethodGet, path: "/users/{id}", params: []string{"id"}, emptyOn404: true},
	{op: OpCreate, method: http.MethodPost, path: "/users", fields: []string{"name"}},
	{op: OpUpdate, method: http.MethodPut, path: "/users/{id}", params: []string{"id"}, fields: []string{"name"}},
	{op: OpDelete, method: http.MethodDelete, path: "/users/{id}", params: []string{"id"}},
}

// checkContract reports every way def strays from the users operations.
func checkContract(def *apiclient.APIDefinition) error {
	res, ok := def.Resources[Resource]
	if !ok {
		return fmt.Errorf("resource %q is not defined", Resource)
	}

	var result error
	for _, want := range contract {
		op, ok := res.Operations[string(want.op)]
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%s: operation is not defined", want.op))
			continue
		}

		if got := strings.ToUpper(string(op.Method)); got != want.method {
			result = multierror.Append(result, fmt.Errorf("%s: method is %s, want %s", want.op, got, want.method))
		}

		path := res.Path
		if op.Path != "" {
			path = op.Path
		}
		if path != want.path {
			result = multierror.Append(result, fmt.Errorf("%s: path is %q, want %q", want.op, path, want.path))
		}

		for _, name := range want.params {
			if !paramRequired(op.Params, name) {
				result = multierror.Append(result, fmt.Errorf("%s: parameter %q must be required", want.op, name))
			}
		}
		for _, name := range want.fields {
			if !fieldRequired(op.Fields, name) {
				result = multierror.Append(result, fmt.Errorf("%s: field %q must be required", want.op, name))
			}
		}

		if want.emptyOn404 && !hasStatus(op.EmptyOnStatus, http.StatusNotFound) {
			result = multierror.Append(result, fmt.Errorf("%s: empty_on_status must include 404", want.op))
		}
	}
	return result
}

func paramRequired(params []apiclient.Parameter, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return p.Required
		}
	}
	return false
}

func fieldRequired(fields []apiclient.Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return f.Required
		}
	}
	return false
}

func hasStatus(statuses []int, want int) bool {
	for _, s := range statuses {
		if s == want {
			return true
		}
	}
	return false
}
