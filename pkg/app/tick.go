package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/audio"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

// FetchCmd returns a Cmd that fetches user's payload and delivers it as a
// FetchDoneEvent no earlier than minDelay after it started, so the loading
// view never flashes. Cancelling ctx ends the wait early.
func FetchCmd(ctx context.Context, seq int, f wrapped.Fetcher, user string, minDelay time.Duration) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		p, err := f.Fetch(ctx, user)
		if rest := minDelay - time.Since(start); rest > 0 {
			t := time.NewTimer(rest)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
			}
		}
		return FetchDoneEvent{
			Seq:       seq,
			User:      user,
			Payload:   p,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
}

// NoticeCmd expires notice seq after ttl.
func NoticeCmd(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return NoticeExpiredEvent{Seq: seq}
	})
}

// AudioNotifier returns an audio.Options.Notify func that forwards states to
// ch without blocking. When ch is full the oldest state is dropped to make
// room, so the newest one always gets through; the model orders what
// arrives by Rev.
func AudioNotifier(ch chan audio.State) func(audio.State) {
	return func(s audio.State) {
		for range cap(ch) + 1 {
			select {
			case ch <- s:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}

// waitAudioCmd delivers the next audio state as an audio.StateMsg. It
// returns nil once done is closed.
func waitAudioCmd(ch <-chan audio.State, done <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case s := <-ch:
			return audio.StateMsg{State: s}
		case <-done:
			return nil
		}
	}
}
