/* pkg/logger/fallback.go */

package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFallbackLogger logs to stderr only, at the console level.
func NewFallbackLogger() *zap.Logger {
	core := newTerminalConsoleCore(zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback tees a human console core on stderr with a JSON file core.
// When no log path is writable it degrades to console only.
func InitializeWithFallback() {
	path, err := FindWritableLogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  No writable log path found. Logging to console only.")
		SetLogger(NewFallbackLogger())
		return
	}

	writer, err := GetLogFileWriter(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Could not write to log file, logging to console only:", err)
		SetLogger(NewFallbackLogger())
		return
	}

	core := zapcore.NewTee(
		newTerminalConsoleCore(zapcore.NewCore(
			zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
			zapcore.Lock(os.Stderr),
			level,
		)),
		zapcore.NewCore(zapcore.NewJSONEncoder(DefaultFileEncoderConfig()), writer, zap.InfoLevel),
	)

	SetLogger(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	L().Debug("Logger initialized",
		zap.String("log_level", level.String()),
		zap.String("log_path", path),
	)
}

// InitializeFileOnly keeps the terminal free for full-screen programs.
// Entries go to the JSON log file, or nowhere when no path is writable.
func InitializeFileOnly() (string, error) {
	path, err := FindWritableLogPath()
	if err != nil {
		SetLogger(zap.NewNop())
		return "", err
	}
	writer, err := GetLogFileWriter(path)
	if err != nil {
		SetLogger(zap.NewNop())
		return "", err
	}

	minLevel := zapcore.InfoLevel
	if level.Level() < minLevel {
		minLevel = level.Level()
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(DefaultFileEncoderConfig()), writer, minLevel)
	SetLogger(zap.New(core, zap.AddCaller()))
	return path, nil
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func DefaultFileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
