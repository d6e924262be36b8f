//go:build !unix

package terminal

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// winsize falls back to x/term where TIOCGWINSZ is unavailable; no pixel
// sizes are reported.
func winsize(fd uintptr) (Size, bool) {
	if fd != os.Stdout.Fd() && fd != os.Stderr.Fd() {
		return Size{}, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return Size{}, false
	}
	return Size{Cols: w, Rows: h}, true
}
