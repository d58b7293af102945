/* pkg/logger/lifecycle.go */

package logger

import (
	"github.com/google/uuid"
)

// GenerateTraceID returns a short 8-char id for correlating one command's log lines.
func GenerateTraceID() string {
	return uuid.New().String()[:8]
}
