package ui

import (
	"os"

	"golang.org/x/term"
)

// StdinIsTerminal reports whether stdin is attached to a terminal. The
// interactive wizard refuses to start without one; prompts would otherwise
// block forever on piped input.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
// Piped or redirected output gets plain text.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Icon returns unicode when the terminal supports it, ascii otherwise.
func Icon(unicode, ascii string) string {
	if StderrIsTerminal() && os.Getenv("TERM") != "dumb" {
		return unicode
	}
	return ascii
}
