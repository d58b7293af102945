// pkg/interaction/reader.go

package interaction

import (
	"bufio"
	"context"
	"strings"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ReadLine shows label through the terminal logger and returns one trimmed
// line from reader. A final line without a newline is returned together with
// io.EOF.
func ReadLine(ctx context.Context, reader *bufio.Reader, label string) (string, error) {
	log := otelzap.Ctx(ctx)

	// Prompts go through the logger so stdout stays clean for output.
	log.Info(logger.TerminalPrefix + " " + label + ":")

	text, err := reader.ReadString('\n')
	value := strings.TrimSpace(text)
	if err != nil {
		log.Debug("Input ended", zap.String("label", label), zap.Error(err))
		return value, err
	}

	log.Debug("User input received", zap.String("label", label))
	return value, nil
}
