// pkg/testutil/transport.go

package testutil

import (
	"net/http"
	"sync"
	"sync/atomic"
)

var _ http.RoundTripper = (*CountingTransport)(nil)

// CountingTransport records every request before handing it to Base.
// A nil Base fails every request with Err, or ConnectionRefused when Err is nil.
type CountingTransport struct {
	Base http.RoundTripper
	Err  error

	calls atomic.Int64
	mu    sync.Mutex
	seen  []RecordedRequest
}

// RecordedRequest is the part of a request tests usually assert on.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
}

func (c *CountingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	c.mu.Lock()
	c.seen = append(c.seen, RecordedRequest{
		Method:      req.Method,
		Path:        req.URL.Path,
		ContentType: req.Header.Get("Content-Type"),
	})
	c.mu.Unlock()

	if c.Base == nil {
		if c.Err != nil {
			return nil, c.Err
		}
		return nil, ConnectionRefused()
	}
	return c.Base.RoundTrip(req)
}

// Calls reports how many requests reached the transport.
func (c *CountingTransport) Calls() int64 {
	return c.calls.Load()
}

// Requests returns a copy of the recorded requests in arrival order.
func (c *CountingTransport) Requests() []RecordedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RecordedRequest, len(c.seen))
	copy(out, c.seen)
	return out
}
