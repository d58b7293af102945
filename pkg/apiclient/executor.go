// pkg/apiclient/executor.go
// Runtime executor for declarative API definitions
//
// ARCHITECTURE: Interprets a loaded APIDefinition and executes CRUD operations
// RESPONSIBILITY: Path building and presence checks only; HTTP transport is delegated

package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Executor performs API operations described by a definition.
type Executor struct {
	definition *APIDefinition
	httpClient HTTPClient
	baseURL    string
}

// NewExecutor binds def to a base URL and transport. An empty baseURL falls
// back to the definition's base_url.
func NewExecutor(def *APIDefinition, baseURL string, httpClient HTTPClient) (*Executor, error) {
	if def == nil {
		return nil, fmt.Errorf("API definition is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(def.BaseURL, "/")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("no base URL for %s: none configured and the definition has no base_url", def.Service)
	}

	return &Executor{definition: def, httpClient: httpClient, baseURL: baseURL}, nil
}

// Definition returns the definition the executor interprets.
func (e *Executor) Definition() *APIDefinition {
	return e.definition
}

// Operation looks up an operation definition.
func (e *Executor) Operation(resource, operation string) (*Operation, error) {
	res, err := e.getResource(resource)
	if err != nil {
		return nil, err
	}
	return e.getOperation(res, operation)
}

// List runs the resource's "list" operation.
func (e *Executor) List(ctx context.Context, resource string) (*Result, error) {
	return e.Do(ctx, resource, "list", nil, nil)
}

// Get runs the resource's "get" operation.
func (e *Executor) Get(ctx context.Context, resource string, params map[string]string) (*Result, error) {
	return e.Do(ctx, resource, "get", params, nil)
}

// Create runs the resource's "create" operation.
func (e *Executor) Create(ctx context.Context, resource string, fields map[string]interface{}) (*Result, error) {
	return e.Do(ctx, resource, "create", nil, fields)
}

// Update runs the resource's "update" operation.
func (e *Executor) Update(ctx context.Context, resource string, params map[string]string, fields map[string]interface{}) (*Result, error) {
	return e.Do(ctx, resource, "update", params, fields)
}

// Delete runs the resource's "delete" operation.
func (e *Executor) Delete(ctx context.Context, resource string, params map[string]string) (*Result, error) {
	return e.Do(ctx, resource, "delete", params, nil)
}

// Do executes one operation.
//
// Errors:
//   - *dir_err.ValidationError when a required value is blank (nothing is sent)
//   - *dir_err.TransportError when no response arrived
//   - *dir_err.RemoteError for a non-2xx status not listed in EmptyOnStatus
func (e *Executor) Do(ctx context.Context, resource, operation string, params map[string]string, fields map[string]interface{}) (res *Result, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := otelzap.Ctx(ctx)

	resDef, err := e.getResource(resource)
	if err != nil {
		return nil, err
	}
	op, err := e.getOperation(resDef, operation)
	if err != nil {
		return nil, err
	}

	if missing := MissingValues(op, params, fields); len(missing) > 0 {
		logger.Debug("Refusing request with missing values",
			zap.String("operation", operation),
			zap.Strings("missing", missing))
		return nil, dir_err.MissingFields(missing...)
	}

	template := resDef.Path
	if op.Path != "" {
		template = op.Path
	}
	path := buildPath(template, params)
	method := string(op.Method)

	ctx, span := telemetry.Start(ctx, resource+"."+operation,
		attribute.String("http.method", method),
		attribute.String("http.route", template),
	)
	defer func() {
		result := "success"
		if err != nil {
			result = dir_err.Classify(err).String()
			span.RecordError(err)
			span.SetStatus(codes.Error, result)
		}
		telemetry.RecordRequest(ctx, operation, result)
		span.End()
	}()

	var body interface{}
	if op.Method.HasBody() && len(fields) > 0 {
		body = fields
	}

	logger.Debug("Sending request",
		zap.String("method", method),
		zap.String("path", path))

	resp, err := e.httpClient.Do(ctx, method, e.baseURL+path, body)
	if err != nil {
		return nil, &dir_err.TransportError{Method: method, Path: path, Cause: unwrapURLError(err)}
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if op.emptyOn(resp.StatusCode) {
		logger.Debug("Status means no content for this operation",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode))
		return &Result{StatusCode: resp.StatusCode, Empty: true}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dir_err.NewRemoteError(method, path, resp.StatusCode, resp.Body)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Empty:      len(bytes.TrimSpace(resp.Body)) == 0,
	}, nil
}

func (op *Operation) emptyOn(status int) bool {
	for _, s := range op.EmptyOnStatus {
		if s == status {
			return true
		}
	}
	return false
}

func (e *Executor) getResource(resourceName string) (*Resource, error) {
	resource, ok := e.definition.Resources[resourceName]
	if !ok {
		return nil, fmt.Errorf("unknown resource: %s\n\n"+
			"Available resources for %s:\n"+
			"  %s",
			resourceName, e.definition.Service, strings.Join(ListResources(e.definition), ", "))
	}
	return &resource, nil
}

func (e *Executor) getOperation(resource *Resource, operationName string) (*Operation, error) {
	operation, ok := resource.Operations[operationName]
	if !ok {
		return nil, fmt.Errorf("operation %s not supported for resource\n\n"+
			"Available operations:\n"+
			"  %s",
			operationName, strings.Join(sortedKeys(resource.Operations), ", "))
	}
	return &operation, nil
}

// buildPath substitutes {name} placeholders with path-escaped, trimmed values.
// EXAMPLE: buildPath("/users/{id}", {id: "a b"}) → "/users/a%20b"
func buildPath(template string, params map[string]string) string {
	path := template
	for key, val := range params {
		placeholder := "{" + key + "}"
		path = strings.ReplaceAll(path, placeholder, url.PathEscape(strings.TrimSpace(val)))
	}
	return path
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the full
// URL and with it the access token embedded in the base URL.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
