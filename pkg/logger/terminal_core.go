package logger

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
)

// TerminalPrefix marks entries that are meant for the user rather than the log.
const TerminalPrefix = "terminal prompt:"

// terminalConsoleCore wraps a zapcore.Core and renders "terminal prompt" logs
// as plain text for human-friendly CLI output. Those entries bypass the
// console level so a quiet console still shows them.
type terminalConsoleCore struct {
	base zapcore.Core
}

func newTerminalConsoleCore(base zapcore.Core) zapcore.Core {
	return &terminalConsoleCore{base: base}
}

func (c *terminalConsoleCore) Enabled(level zapcore.Level) bool {
	return level >= zapcore.InfoLevel || c.base.Enabled(level)
}

func (c *terminalConsoleCore) With(fields []zapcore.Field) zapcore.Core {
	return &terminalConsoleCore{base: c.base.With(fields)}
}

func (c *terminalConsoleCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if isTerminalEntry(entry) {
		return ce.AddCore(entry, c)
	}
	return c.base.Check(entry, ce)
}

func (c *terminalConsoleCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if isTerminalEntry(entry) {
		c.writeTerminal(terminalWriter(), entry.Message, fields)
		return nil
	}
	return c.base.Write(entry, fields)
}

func (c *terminalConsoleCore) Sync() error {
	return c.base.Sync()
}

func isTerminalEntry(entry zapcore.Entry) bool {
	return entry.Level >= zapcore.InfoLevel && strings.HasPrefix(entry.Message, TerminalPrefix)
}

func (c *terminalConsoleCore) writeTerminal(w io.Writer, message string, fields []zapcore.Field) {
	text := strings.TrimSpace(strings.TrimPrefix(message, TerminalPrefix))
	if text != "" {
		printLines(w, text)
	}

	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, field := range fields {
			field.AddTo(enc)
		}

		if output, ok := enc.Fields["output"]; ok {
			printLines(w, fmt.Sprint(output))
			delete(enc.Fields, "output")
		}

		keys := make([]string, 0, len(enc.Fields))
		for key := range enc.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			printLines(w, fmt.Sprintf("%s: %v", key, enc.Fields[key]))
		}
	}

	if text == "" && len(fields) == 0 {
		fmt.Fprintln(w)
	}
}

func printLines(w io.Writer, value string) {
	if value == "" {
		fmt.Fprintln(w)
		return
	}

	for _, line := range strings.Split(value, "\n") {
		fmt.Fprintln(w, line)
	}
}
