// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TraceEnv selects the span destination: unset for none, "stdout", or a file path.
const TraceEnv = "USERDIR_TRACE"

var (
	mu       sync.RWMutex
	tracer   trace.Tracer = noop.NewTracerProvider().Tracer("userdir")
	shutdown              = func(context.Context) error { return nil }

	requestsOnce sync.Once
	requests     metric.Int64Counter
)

// Init configures OpenTelemetry; call this early in main().
func Init(service string) error {
	target := strings.TrimSpace(os.Getenv(TraceEnv))
	if target == "" {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		setTracer(tp.Tracer(service), nil)
		return nil
	}

	var w io.Writer
	var closer io.Closer
	if target == "stdout" {
		w = os.Stderr
	} else {
		if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
			return cerr.Wrap(err, "failed to create telemetry directory")
		}
		file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return cerr.Wrap(err, "failed to open telemetry file")
		}
		w, closer = file, file
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithoutTimestamps(), // Spans already have timestamps
	)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return cerr.Wrap(err, "failed to create span exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(
			sdkresource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("service.name", service),
				attribute.String("host.name", hostname()),
			),
		),
	)

	otel.SetTracerProvider(tp)
	setTracer(tp.Tracer(service), func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if closer != nil {
			if cerrClose := closer.Close(); err == nil {
				err = cerrClose
			}
		}
		return err
	})
	return nil
}

// Shutdown flushes pending spans. Safe to call when tracing is off.
func Shutdown(ctx context.Context) error {
	mu.RLock()
	fn := shutdown
	mu.RUnlock()
	return fn(ctx)
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	mu.RLock()
	t := tracer
	mu.RUnlock()
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordRequest counts one network call against the users service.
// The counter reports through whatever MeterProvider is registered with otel.
func RecordRequest(ctx context.Context, operation, result string) {
	requestsOnce.Do(func() {
		c, err := otel.Meter("userdir").Int64Counter(
			"userdir.requests",
			metric.WithDescription("Requests sent to the users service"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			otel.Handle(err)
			return
		}
		requests = c
	})
	if requests == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
}

func setTracer(t trace.Tracer, fn func(context.Context) error) {
	mu.Lock()
	defer mu.Unlock()
	tracer = t
	if fn == nil {
		fn = func(context.Context) error { return nil }
	}
	shutdown = fn
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
