package share

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

func TestForPayload(t *testing.T) {
	m := ForPayload(&wrapped.Payload{User: "al ice", Stats: wrapped.Stats{LongestStreak: 42}})
	if m.Title != "LeetCode Wrapped 2024 - al ice" {
		t.Errorf("title = %q", m.Title)
	}
	if m.Text != "I had a 42 day streak on LeetCode! Check out my 2024 Wrapped." {
		t.Errorf("text = %q", m.Text)
	}
	if m.URL != "https://leetcode.com/u/al%20ice/" {
		t.Errorf("url = %q", m.URL)
	}
}

func TestMessageString(t *testing.T) {
	if got := (Message{Title: "a", URL: "c"}).String(); got != "a\nc" {
		t.Errorf("String() = %q", got)
	}
}

func TestClipboardNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	c := NewClipboard(&buf)
	if err := c.Share(Message{Text: "x"}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q to a non-terminal", buf.String())
	}
}

func TestClipboardWritesOSC52(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer
	c := NewClipboard(&buf)
	c.isTTY = func() bool { return true }

	m := Message{Title: "LeetCode Wrapped 2024 - alice", Text: "hi"}
	if err := c.Share(m); err != nil {
		t.Fatalf("Share: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b]52;") {
		t.Fatalf("output %q is not OSC 52", out)
	}
	if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte(m.String()))) {
		t.Errorf("payload missing from %q", out)
	}
}

type stubSharer struct{ err error }

func (s stubSharer) Share(Message) error { return s.err }

func TestCmdNotices(t *testing.T) {
	tests := []struct {
		sharer Sharer
		want   string
	}{
		{stubSharer{}, CopiedNotice},
		{stubSharer{err: ErrUnsupported}, UnsupportedNotice},
		{nil, UnsupportedNotice},
		{stubSharer{err: errors.New("boom")}, "Share failed: boom"},
	}
	for _, tt := range tests {
		msg := Cmd(tt.sharer, Message{})().(DoneMsg)
		if got := msg.Notice(); got != tt.want {
			t.Errorf("Notice() = %q, want %q", got, tt.want)
		}
	}
}
