// pkg/apiclient/types.go

package apiclient

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/httpclient"
)

// HTTPMethod is one of the methods a definition may use.
type HTTPMethod string

const (
	HTTPMethodGET    HTTPMethod = "GET"
	HTTPMethodPOST   HTTPMethod = "POST"
	HTTPMethodPUT    HTTPMethod = "PUT"
	HTTPMethodPATCH  HTTPMethod = "PATCH"
	HTTPMethodDELETE HTTPMethod = "DELETE"
)

// HasBody reports whether requests with this method carry a JSON body.
func (m HTTPMethod) HasBody() bool {
	return m == HTTPMethodPOST || m == HTTPMethodPUT || m == HTTPMethodPATCH
}

// ParameterType names the JSON type of a parameter or field.
type ParameterType string

const (
	ParameterTypeString  ParameterType = "string"
	ParameterTypeInteger ParameterType = "integer"
	ParameterTypeBoolean ParameterType = "boolean"
	ParameterTypeJSON    ParameterType = "json"
)

// APIDefinition describes one REST service.
type APIDefinition struct {
	Service     string              `yaml:"service"`
	Version     string              `yaml:"version"`
	Description string              `yaml:"description"`
	BaseURL     string              `yaml:"base_url"`
	Resources   map[string]Resource `yaml:"resources"`
}

// Resource is a collection endpoint and the operations allowed on it.
type Resource struct {
	Path        string               `yaml:"path"`
	Description string               `yaml:"description"`
	Operations  map[string]Operation `yaml:"operations"`
}

// Operation maps one named action onto an HTTP exchange.
// Path overrides the resource path and may contain {param} placeholders.
type Operation struct {
	Method        HTTPMethod  `yaml:"method"`
	Path          string      `yaml:"path"`
	Description   string      `yaml:"description"`
	Params        []Parameter `yaml:"params"`
	Fields        []Field     `yaml:"fields"`
	Confirm       bool        `yaml:"confirm"`
	EmptyOnStatus []int       `yaml:"empty_on_status"`
}

// Parameter is a path placeholder.
type Parameter struct {
	Name        string        `yaml:"name"`
	Type        ParameterType `yaml:"type"`
	Required    bool          `yaml:"required"`
	Description string        `yaml:"description"`
}

// Field is a member of the JSON request body.
type Field struct {
	Name        string        `yaml:"name"`
	Type        ParameterType `yaml:"type"`
	Required    bool          `yaml:"required"`
	Description string        `yaml:"description"`
}

// HTTPClient is the transport the executor delegates to.
type HTTPClient interface {
	Do(ctx context.Context, method, url string, body interface{}) (*httpclient.Response, error)
}

// Result is a successful exchange. Empty is set when the operation treats the
// status as "nothing there" (EmptyOnStatus) or the body was blank.
type Result struct {
	StatusCode int
	Body       []byte
	Empty      bool
}
