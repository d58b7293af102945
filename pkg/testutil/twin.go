// pkg/testutil/twin.go

package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/usertwin"
	"go.uber.org/zap/zaptest"
)

// TwinPrefix mimics the token segment of a hosted base URL.
const TwinPrefix = "/api/0123456789abcdef0123456789abcdef"

// Twin is a users twin served over HTTP for one test.
type Twin struct {
	*usertwin.Server
	URL string
}

// NewTwin starts a users twin and returns it with its base URL
// (server URL plus TwinPrefix). It is closed when the test ends.
func NewTwin(t *testing.T) *Twin {
	t.Helper()

	twin := usertwin.NewServer(usertwin.NewStore(),
		usertwin.WithPrefix(TwinPrefix),
		usertwin.WithLogger(zaptest.NewLogger(t)),
	)
	srv := httptest.NewServer(twin)
	t.Cleanup(srv.Close)

	return &Twin{Server: twin, URL: srv.URL + TwinPrefix}
}

// ClosedURL returns a base URL nothing listens on.
func ClosedURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(nil)
	url := srv.URL + TwinPrefix
	srv.Close()
	return url
}
