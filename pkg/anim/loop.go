// Package anim provides cancellable frame loops for bubbletea models.
//
// A Loop schedules FrameMsg values with tea.Tick. Each Start bumps a
// generation counter; frames from an older generation, or any frame after
// Stop, are rejected by Accept and never reschedule. This gives every
// animation an explicit start and an idempotent cancel.
package anim

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// FrameMsg is delivered once per scheduled frame.
type FrameMsg struct {
	ID   int
	Gen  int
	Time time.Time
}

// Loop is a single cancellable frame schedule. The zero value is not usable;
// call NewLoop.
type Loop struct {
	id       int
	gen      int
	interval time.Duration
	running  bool
	last     time.Time
}

// NewLoop returns a stopped loop ticking at fps frames per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = 30
	}
	return &Loop{
		id:       nextID(),
		interval: time.Second / time.Duration(fps),
	}
}

// ID identifies the loop across all loops in the process.
func (l *Loop) ID() int { return l.id }

// Gen is the current generation.
func (l *Loop) Gen() int { return l.gen }

// Interval is the time between frames.
func (l *Loop) Interval() time.Duration { return l.interval }

// Running reports whether frames are being scheduled.
func (l *Loop) Running() bool { return l.running }

// Start begins a new generation and returns the first frame command. Any
// frame still in flight from a previous generation is dropped.
func (l *Loop) Start() tea.Cmd {
	l.gen++
	l.running = true
	l.last = time.Time{}
	return l.tick()
}

// Stop cancels the loop. Safe to call any number of times.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.gen++
}

// Accept reports whether msg is a live frame of this loop and returns the
// elapsed time since the previous accepted frame (Interval for the first).
func (l *Loop) Accept(msg FrameMsg) (time.Duration, bool) {
	if !l.running || msg.ID != l.id || msg.Gen != l.gen {
		return 0, false
	}
	dt := l.interval
	if !l.last.IsZero() && msg.Time.After(l.last) {
		dt = msg.Time.Sub(l.last)
	}
	l.last = msg.Time
	return dt, true
}

// Next schedules the following frame of the current generation, or returns
// nil once stopped.
func (l *Loop) Next() tea.Cmd {
	if !l.running {
		return nil
	}
	return l.tick()
}

func (l *Loop) tick() tea.Cmd {
	id, gen := l.id, l.gen
	return tea.Tick(l.interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Gen: gen, Time: t}
	})
}
