// Package terminal probes the host terminal for the few capabilities the
// presentation cares about: which emulator it is, whether it can show an
// inline image preview, and how many pixels a cell covers.
//
// Probing only inspects environment variables and one TIOCGWINSZ ioctl; it
// never writes query sequences, so it is safe to call before the TUI owns
// the screen.
package terminal

import (
	"os"
	"strings"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermGeneric   Terminal = iota
	TermGhostty            // kitty graphics
	TermKitty              // kitty graphics
	TermWezTerm            // kitty graphics, sixel, iterm2 images
	TermITerm2             // iterm2 images
	TermAlacritty          // no graphics
	TermVTE                // GNOME Terminal, Tilix
	TermVSCode
	TermTmux
)

var terminalNames = [...]string{
	TermGeneric:   "generic",
	TermGhostty:   "ghostty",
	TermKitty:     "kitty",
	TermWezTerm:   "wezterm",
	TermITerm2:    "iterm2",
	TermAlacritty: "alacritty",
	TermVTE:       "vte",
	TermVSCode:    "vscode",
	TermTmux:      "tmux",
}

func (t Terminal) String() string {
	if int(t) >= 0 && int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// TrueColor reports whether the emulator is known to render 24-bit colour.
// The particle layer blends opacity into the background colour and looks
// banded without it.
func (t Terminal) TrueColor() bool {
	switch t {
	case TermGhostty, TermKitty, TermWezTerm, TermITerm2,
		TermAlacritty, TermVTE, TermVSCode:
		return true
	}
	return false
}

// Detect identifies the terminal emulator from the environment, most
// reliable signal first: TERM_PROGRAM, TERM, emulator-specific variables,
// then multiplexers.
func Detect() Terminal {
	switch strings.ToLower(os.Getenv("TERM_PROGRAM")) {
	case "ghostty":
		return TermGhostty
	case "kitty":
		return TermKitty
	case "wezterm":
		return TermWezTerm
	case "iterm.app":
		return TermITerm2
	case "vscode":
		return TermVSCode
	case "alacritty":
		return TermAlacritty
	case "tmux":
		return TermTmux
	}

	switch term := os.Getenv("TERM"); {
	case term == "xterm-ghostty":
		return TermGhostty
	case term == "xterm-kitty":
		return TermKitty
	case strings.HasPrefix(term, "alacritty"):
		return TermAlacritty
	}

	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "":
		return TermKitty
	case os.Getenv("ITERM_SESSION_ID") != "", os.Getenv("LC_TERMINAL") == "iTerm2":
		return TermITerm2
	case os.Getenv("WEZTERM_EXECUTABLE") != "":
		return TermWezTerm
	case os.Getenv("VTE_VERSION") != "":
		return TermVTE
	case os.Getenv("TMUX") != "":
		return TermTmux
	}
	return TermGeneric
}

// trueColorEnv reports COLORTERM's 24-bit hint.
func trueColorEnv() bool {
	ct := strings.ToLower(os.Getenv("COLORTERM"))
	return ct == "truecolor" || ct == "24bit"
}

func isSSH() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CONNECTION") != "" ||
		os.Getenv("SSH_CLIENT") != ""
}
