// pkg/testutil/context.go

package testutil

import (
	"context"
	"testing"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/logger"
	"go.uber.org/zap/zaptest"
)

// NewTestContext returns a RuntimeContext whose logs go to t.Log.
// The process logger is restored when the test ends.
func NewTestContext(t *testing.T) *dir_io.RuntimeContext {
	t.Helper()

	prev := logger.L()
	logger.SetLogger(zaptest.NewLogger(t))
	t.Cleanup(func() { logger.SetLogger(prev) })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return dir_io.NewContext(ctx, t.Name())
}
