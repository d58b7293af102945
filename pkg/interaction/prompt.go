// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	YesShort = "y"
	YesLong  = "yes"
	NoShort  = "n"
	NoLong   = "no"

	DefaultYesPrompt = "Y/n"
	DefaultNoPrompt  = "y/N"
)

// ErrNoAnswer is returned when input ends before any answer was typed.
var ErrNoAnswer = errors.New("no answer on input")

// PromptYesNo asks a yes/no question on the terminal and reads the answer
// from r. An empty or unrecognized answer yields defaultYes.
func PromptYesNo(ctx context.Context, r io.Reader, prompt string, defaultYes bool) (bool, error) {
	logger := otelzap.Ctx(ctx)

	defPrompt := DefaultYesPrompt
	if !defaultYes {
		defPrompt = DefaultNoPrompt
	}
	label := fmt.Sprintf("%s [%s]", prompt, defPrompt)

	input, err := ReadLine(ctx, bufio.NewReader(r), label)
	if err != nil {
		if errors.Is(err, io.EOF) && input == "" {
			logger.Debug("Input closed before an answer", zap.String("prompt", prompt))
			return defaultYes, ErrNoAnswer
		}
		if !errors.Is(err, io.EOF) {
			return defaultYes, err
		}
	}

	if answer, ok := NormalizeYesNoInput(input); ok {
		logger.Debug("User input parsed", zap.Bool("answer", answer))
		return answer, nil
	}

	logger.Debug("Default applied", zap.String("prompt", prompt), zap.Bool("default_yes", defaultYes))
	return defaultYes, nil
}

// NormalizeYesNoInput reports the answer in input and whether it was
// recognized. It trims whitespace and lowercases input before comparison.
func NormalizeYesNoInput(input string) (answer bool, ok bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case YesShort, YesLong:
		return true, true
	case NoShort, NoLong:
		return false, true
	default:
		return false, false
	}
}
