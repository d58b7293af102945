// pkg/interaction/tty.go

package interaction

import (
	"os"

	"golang.org/x/term"
)

// stdinIsTerminal is swapped out in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsInteractive reports whether stdin is a terminal a person can answer on.
func IsInteractive() bool {
	return stdinIsTerminal()
}
