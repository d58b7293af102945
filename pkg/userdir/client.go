// pkg/userdir/client.go

package userdir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/apiclient"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/httpclient"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	// Service is the API definition the client interprets.
	Service = "users"
	// Resource is the collection within that definition.
	Resource = "users"
)

// Config is what a Client needs. HTTP may be nil for httpclient.DefaultConfig.
type Config struct {
	BaseURL string
	HTTP    *httpclient.Config
}

// Client translates the five operations into requests against
// {BaseURL}/users[/{id}]. It holds no state between calls.
type Client struct {
	executor *apiclient.Executor
	baseURL  string
	log      *zap.Logger
	onCall   func(Operation)
}

type clientOptions struct {
	transport http.RoundTripper
	log       *zap.Logger
	onCall    func(Operation)
}

// Option customizes a Client at construction.
type Option func(*clientOptions)

// WithTransport sends requests through rt instead of the default transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// WithLogger sets the logger for construction and transport messages.
func WithLogger(log *zap.Logger) Option {
	return func(o *clientOptions) { o.log = log }
}

// WithCallHook runs fn before every network call.
func WithCallHook(fn func(Operation)) Option {
	return func(o *clientOptions) { o.onCall = fn }
}

// New builds a client for cfg.BaseURL, which must be an absolute http(s) URL.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := clientOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := checkBaseURL(baseURL); err != nil {
		return nil, dir_err.WrapConfigError(err)
	}

	def, err := apiclient.LoadDefinition(Service)
	if err != nil {
		return nil, dir_err.NewInternalError("users API definition is unusable", err)
	}
	if err := checkContract(def); err != nil {
		return nil, dir_err.NewConfigError("users API definition does not match the users service", err,
			"remove the override from $"+apiclient.DefinitionsEnv+" or ~/.userdir/api_definitions")
	}

	hc, err := httpclient.NewClient(cfg.HTTP,
		httpclient.WithTransport(o.transport),
		httpclient.WithLogger(o.log),
	)
	if err != nil {
		return nil, dir_err.NewConfigError("HTTP client configuration is invalid", err,
			"check the timeout and TLS settings in your config file")
	}

	exec, err := apiclient.NewExecutor(def, baseURL, hc)
	if err != nil {
		return nil, dir_err.WrapConfigError(err)
	}

	o.log.Debug("Users client ready", zap.String("base_url", RedactURL(baseURL)))

	return &Client{executor: exec, baseURL: baseURL, log: o.log, onCall: o.onCall}, nil
}

func checkBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL has no host")
	}
	if u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return fmt.Errorf("base URL must not carry a query or fragment")
	}
	return nil
}

// BaseURL returns the configured endpoint, including its token.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Run dispatches req to the matching operation.
func (c *Client) Run(ctx context.Context, req Request) Outcome {
	switch req.Op {
	case OpList:
		return c.List(ctx)
	case OpGet:
		return c.GetByID(ctx, req.ID)
	case OpCreate:
		return c.Create(ctx, req.Name)
	case OpUpdate:
		return c.UpdateByID(ctx, req.ID, req.Name)
	case OpDelete:
		return c.DeleteByID(ctx, req.ID)
	default:
		return Failure(dir_err.NewInternalError(fmt.Sprintf("unknown operation %q", req.Op), nil))
	}
}

// List fetches every user. An empty collection is a success with no records.
func (c *Client) List(ctx context.Context) Outcome {
	res, err := c.do(ctx, OpList, nil, nil)
	if err != nil {
		return c.fail(ctx, OpList, err)
	}

	records, err := decodeRecords(res.Body)
	if err != nil {
		return c.fail(ctx, OpList, malformed(http.MethodGet, "/users", res.StatusCode, err))
	}
	return SuccessList(records)
}

// GetByID fetches one user. An unknown id is a success with no payload.
func (c *Client) GetByID(ctx context.Context, id string) Outcome {
	id = strings.TrimSpace(id)
	if err := requireValues(value{"id", id}); err != nil {
		return c.fail(ctx, OpGet, err)
	}
	res, err := c.do(ctx, OpGet, map[string]string{"id": id}, nil)
	if err != nil {
		return c.fail(ctx, OpGet, err)
	}
	if res.Empty || isJSONNull(res.Body) {
		return SuccessEmpty()
	}

	record, err := decodeRecord(res.Body)
	if err != nil {
		return c.fail(ctx, OpGet, malformed(http.MethodGet, "/users/"+url.PathEscape(id), res.StatusCode, err))
	}
	return Success(record)
}

// Create adds a user and returns the stored record with its assigned id.
func (c *Client) Create(ctx context.Context, name string) Outcome {
	name = strings.TrimSpace(name)
	if err := requireValues(value{"name", name}); err != nil {
		return c.fail(ctx, OpCreate, err)
	}
	res, err := c.do(ctx, OpCreate, nil, map[string]interface{}{"name": name})
	if err != nil {
		return c.fail(ctx, OpCreate, err)
	}
	if res.Empty {
		return SuccessEmpty()
	}

	record, err := decodeRecord(res.Body)
	if err != nil {
		return c.fail(ctx, OpCreate, malformed(http.MethodPost, "/users", res.StatusCode, err))
	}
	return Success(record)
}

// UpdateByID replaces a user's name. Services that answer with an empty body
// produce a success with no payload.
func (c *Client) UpdateByID(ctx context.Context, id, name string) Outcome {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if err := requireValues(value{"id", id}, value{"name", name}); err != nil {
		return c.fail(ctx, OpUpdate, err)
	}
	res, err := c.do(ctx, OpUpdate, map[string]string{"id": id}, map[string]interface{}{"name": name})
	if err != nil {
		return c.fail(ctx, OpUpdate, err)
	}
	if res.Empty || isJSONNull(res.Body) {
		return SuccessEmpty()
	}

	record, err := decodeRecord(res.Body)
	if err != nil {
		return c.fail(ctx, OpUpdate, malformed(http.MethodPut, "/users/"+url.PathEscape(id), res.StatusCode, err))
	}
	return Success(record)
}

// DeleteByID removes a user. Any response body is ignored.
func (c *Client) DeleteByID(ctx context.Context, id string) Outcome {
	id = strings.TrimSpace(id)
	if err := requireValues(value{"id", id}); err != nil {
		return c.fail(ctx, OpDelete, err)
	}
	if _, err := c.do(ctx, OpDelete, map[string]string{"id": id}, nil); err != nil {
		return c.fail(ctx, OpDelete, err)
	}
	return SuccessEmpty()
}

func (c *Client) do(ctx context.Context, op Operation, params map[string]string, fields map[string]interface{}) (*apiclient.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.onCall != nil {
		c.onCall(op)
	}
	return c.executor.Do(ctx, Resource, string(op), params, fields)
}

type value struct {
	name string
	val  string
}

// requireValues names every blank value, in argument order, so an update
// with neither reports "missing id and name".
func requireValues(values ...value) error {
	var missing []string
	for _, v := range values {
		if v.val == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return dir_err.MissingFields(missing...)
	}
	return nil
}

func (c *Client) fail(ctx context.Context, op Operation, err error) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	category := dir_err.Classify(err)
	fields := []zap.Field{
		zap.String("operation", string(op)),
		zap.String("category", category.String()),
		zap.Error(err),
	}
	if category == dir_err.CategoryValidation {
		otelzap.Ctx(ctx).Debug("Request not sent", fields...)
	} else {
		otelzap.Ctx(ctx).Warn("Request failed", fields...)
	}
	return Failure(err)
}

func malformed(method, path string, status int, cause error) error {
	return &dir_err.RemoteError{Method: method, Path: path, StatusCode: status, Cause: cause}
}

func isJSONNull(body []byte) bool {
	return bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}

func decodeRecords(body []byte) ([]UserRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []UserRecord{}, nil
	}
	var records []UserRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeRecord(body []byte) (UserRecord, error) {
	var record UserRecord
	if err := json.Unmarshal(bytes.TrimSpace(body), &record); err != nil {
		return UserRecord{}, err
	}
	return record, nil
}
