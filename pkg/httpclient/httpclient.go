// pkg/httpclient/httpclient.go

package httpclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client sends JSON requests through a resty client. It never retries.
type Client struct {
	resty  *resty.Client
	config *Config
	log    *zap.Logger
}

// Response is the part of an HTTP response callers need.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithTransport replaces the underlying round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.resty.SetTransport(rt)
		}
	}
}

// WithLogger sets the logger used for request logging and resty's own warnings.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient validates config and builds a client. A nil config means DefaultConfig.
func NewClient(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid http client config: %w", err)
	}

	tlsConfig, err := SecureTLSConfig(config.TLSConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build TLS config: %w", err)
	}

	r := resty.New().
		SetTimeout(config.Timeout).
		SetTLSClientConfig(tlsConfig).
		SetRetryCount(0)
	if config.UserAgent != "" {
		r.SetHeader("User-Agent", config.UserAgent)
	}
	r.SetHeaders(config.Headers)

	c := &Client{resty: r, config: config, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	r.SetLogger(c.log.Sugar())

	if lc := config.LogConfig; lc != nil {
		if lc.LogRequests {
			r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
				c.log.Debug("HTTP request", zap.String("method", req.Method))
				return nil
			})
		}
		if lc.LogResponses {
			r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
				c.log.Debug("HTTP response",
					zap.String("method", resp.Request.Method),
					zap.Int("status", resp.StatusCode()),
					zap.Duration("duration", resp.Time()),
					zap.Int("bytes", len(resp.Body())),
				)
				return nil
			})
		}
	}

	return c, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() *Config {
	return c.config
}

// Do sends one request. A non-nil body is encoded as JSON.
// Any HTTP status is returned as a Response; only transport failures are errors.
func (c *Client) Do(ctx context.Context, method, url string, body interface{}) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req := c.resty.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}
