// pkg/logger/logger.go

package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.Logger

	// level gates the console core. The file core always records INFO and above.
	level = zap.NewAtomicLevelAt(consoleLevelFromEnv())

	// terminalOut receives "terminal prompt:" entries.
	terminalOut io.Writer = os.Stdout
)

// L returns the process logger, or zap's global logger before initialization.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if log == nil {
		return zap.L()
	}
	return log
}

// SetLogger installs l as the process logger and as the zap and otelzap globals.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()

	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l, otelzap.WithMinLevel(zapcore.InfoLevel)))
}

// SetLevel changes the console level at runtime. Unknown values fall back to INFO.
func SetLevel(value string) {
	level.SetLevel(ParseLogLevel(value))
}

// Level reports the current console level.
func Level() zapcore.Level {
	return level.Level()
}

// SetTerminalOutput redirects "terminal prompt:" entries and returns a restore func.
func SetTerminalOutput(w io.Writer) func() {
	mu.Lock()
	prev := terminalOut
	terminalOut = w
	mu.Unlock()
	return func() {
		mu.Lock()
		terminalOut = prev
		mu.Unlock()
	}
}

func terminalWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return terminalOut
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() {
	l := L()
	if err := l.Sync(); err != nil && !isIgnorableSyncError(err) {
		l.Debug("Failed to sync logger", zap.Error(err))
	}
}

// ParseLogLevel maps LOG_LEVEL style names onto zap levels.
func ParseLogLevel(value string) zapcore.Level {
	switch value {
	case "TRACE", "DEBUG", "trace", "debug":
		return zapcore.DebugLevel
	case "WARN", "WARNING", "warn", "warning":
		return zapcore.WarnLevel
	case "ERROR", "error":
		return zapcore.ErrorLevel
	case "FATAL", "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// The console stays quiet (WARN) unless LOG_LEVEL asks for more.
func consoleLevelFromEnv() zapcore.Level {
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		return ParseLogLevel(value)
	}
	return zapcore.WarnLevel
}

// syncing stdout/stderr on a terminal returns EINVAL or ENOTTY on linux.
func isIgnorableSyncError(err error) bool {
	if err == nil {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}
