package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartWithoutInit(t *testing.T) {
	//nolint:staticcheck // nil context is tolerated on purpose
	ctx, span := Start(nil, "noop", attribute.String("k", "v"))
	defer span.End()

	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsSampled())
}

func TestInitDisabled(t *testing.T) {
	t.Setenv(TraceEnv, "")
	require.NoError(t, Init("userdir-test"))
	require.NoError(t, Shutdown(context.Background()))
}

func TestInitWritesSpansToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans", "trace.jsonl")
	t.Setenv(TraceEnv, path)

	require.NoError(t, Init("userdir-test"))
	_, span := Start(context.Background(), "users.list", attribute.String("operation", "list"))
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "users.list")

	t.Setenv(TraceEnv, "")
	require.NoError(t, Init("userdir-test"))
}

func TestRecordRequestWithNoopMeter(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRequest(context.Background(), "list", "success")
		RecordRequest(context.Background(), "get", "failure")
	})
}
