package ui

import (
	"os"

	"golang.org/x/term"
)

const fallbackWidth = 80

// terminalWidth returns the current terminal width, or a fallback when
// stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}
