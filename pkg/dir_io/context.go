// pkg/dir_io/context.go

package dir_io

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries one command invocation: its context, span, and scoped logger.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Component  string
	TraceID    string
	Attributes map[string]string
}

// NewContext sets up tracing and logging for cmdName.
// A nil parent is treated as context.Background().
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	if parent == nil {
		parent = context.Background()
	}
	ctx, span := telemetry.Start(parent, cmdName)

	traceID := logger.GenerateTraceID()
	if sc := span.SpanContext(); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}

	comp, _ := resolveCallContext(3)
	log := logger.L().With(
		zap.String("component", comp),
		zap.String("command", cmdName),
		zap.String("trace_id", traceID),
	).Named(comp)

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        log,
		Timestamp:  time.Now(),
		Component:  comp,
		Command:    cmdName,
		TraceID:    traceID,
		Attributes: make(map[string]string),
	}
}

// Logger returns a trace-aware logger for rc.Ctx.
func (rc *RuntimeContext) Logger() otelzap.LoggerWithCtx {
	return otelzap.Ctx(rc.Ctx)
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome, closes the span with key attributes, and flushes.
func (rc *RuntimeContext) End(errPtr *error) {
	defer logger.Sync()
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)

	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}

	if err == nil {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
		rc.Span.SetAttributes(attrs...)
		return
	}

	category := dir_err.Classify(err)
	attrs = append(attrs, attribute.String("error_type", category.String()))
	rc.Span.SetAttributes(attrs...)
	rc.Span.RecordError(err)
	rc.Span.SetStatus(codes.Error, category.String())

	if dir_err.IsExpectedUserError(err) {
		rc.Log.Warn("Command failed", zap.Duration("duration", duration), zap.String("category", category.String()), zap.Error(err))
		return
	}
	rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.String("category", category.String()), zap.Error(err))
}

func resolveCallContext(skip int) (component, action string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	parts := strings.Split(file, "/")
	if len(parts) >= 2 {
		component = parts[len(parts)-2]
	} else {
		component = "unknown"
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields := strings.Split(fn.Name(), ".")
		action = fields[len(fields)-1]
	} else {
		action = "unknown"
	}
	return component, action
}
