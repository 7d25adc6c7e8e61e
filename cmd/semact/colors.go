package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// shouldUseColor reports whether diagnostics written to w get ANSI colors.
// Respects --no-color and NO_COLOR, and colors terminals only.
func shouldUseColor(w io.Writer, noColorFlag bool) bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
