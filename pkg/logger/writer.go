// pkg/logger/writer.go

package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
)

// GetLogFileWriter opens path for appending, creating the directory (0700) and file (0600).
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("log directory error: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return zapcore.AddSync(file), nil
}

// FindWritableLogPath returns the first entry of PlatformLogPaths that can be opened.
func FindWritableLogPath() (string, error) {
	for _, path := range PlatformLogPaths() {
		ws, err := GetLogFileWriter(path)
		if err != nil {
			continue
		}
		if f, ok := ws.(interface{ Close() error }); ok {
			_ = f.Close()
		}
		return path, nil
	}
	return "", fmt.Errorf("no writable log path found")
}
