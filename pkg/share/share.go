// Package share copies a short share text to the system clipboard.
//
// Terminals have no share sheet; the closest equivalent is OSC 52, which
// asks the terminal emulator to place text on the clipboard. It only works
// when stdout is a terminal.
package share

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

// ErrUnsupported is returned when the output cannot reach a clipboard.
var ErrUnsupported = errors.New("share: not supported in this terminal")

// Notices shown for each outcome.
const (
	UnsupportedNotice = "Sharing is not supported in this terminal."
	CopiedNotice      = "Share text copied to clipboard."
)

// Message is what gets shared.
type Message struct {
	Title string
	Text  string
	URL   string
}

// String joins the non-empty parts with newlines.
func (m Message) String() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{m.Title, m.Text, m.URL} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// ForPayload builds the share message for p.
func ForPayload(p *wrapped.Payload) Message {
	return Message{
		Title: "LeetCode Wrapped 2024 - " + p.User,
		Text:  fmt.Sprintf("I had a %d day streak on LeetCode! Check out my 2024 Wrapped.", p.Stats.LongestStreak),
		URL:   "https://leetcode.com/u/" + url.PathEscape(p.User) + "/",
	}
}

// Sharer delivers a message.
type Sharer interface {
	Share(m Message) error
}

// Clipboard shares through OSC 52.
type Clipboard struct {
	out   *termenv.Output
	isTTY func() bool
}

// NewClipboard writes OSC 52 sequences to w. Sharing is supported only when
// w is a terminal.
func NewClipboard(w io.Writer) *Clipboard {
	return &Clipboard{
		out:   termenv.NewOutput(w),
		isTTY: func() bool { return isTerminal(w) },
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Share copies m to the clipboard.
func (c *Clipboard) Share(m Message) error {
	if c == nil || c.isTTY == nil || !c.isTTY() {
		return ErrUnsupported
	}
	c.out.Copy(m.String())
	return nil
}

// DoneMsg reports the outcome of a share started with Cmd.
type DoneMsg struct {
	Err error
}

// Notice is the text to show for the outcome.
func (d DoneMsg) Notice() string {
	switch {
	case d.Err == nil:
		return CopiedNotice
	case errors.Is(d.Err, ErrUnsupported):
		return UnsupportedNotice
	default:
		return "Share failed: " + d.Err.Error()
	}
}

// Cmd shares m with s.
func Cmd(s Sharer, m Message) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return DoneMsg{Err: ErrUnsupported}
		}
		return DoneMsg{Err: s.Share(m)}
	}
}
