// Package terminal provides TTY detection for commands that need an
// interactive session.
package terminal

import (
	"syscall"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(syscall.Stdin))
}
