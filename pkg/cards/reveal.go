package cards

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/anim"
)

// Reveal tracks the count-up animation of each slide. A slide starts at 0
// and eases to 1 the first time it becomes current; it never replays.
type Reveal struct {
	loop     *anim.Loop
	enabled  bool
	duration float32
	tweens   map[int]*gween.Tween
	progress map[int]float64
}

// NewReveal returns a reveal driver. When disabled every slide is shown at
// its final values immediately.
func NewReveal(enabled bool, fps int, d time.Duration) *Reveal {
	if d <= 0 {
		d = 1200 * time.Millisecond
	}
	return &Reveal{
		loop:     anim.NewLoop(fps),
		enabled:  enabled,
		duration: float32(d.Seconds()),
		tweens:   make(map[int]*gween.Tween),
		progress: make(map[int]float64),
	}
}

// Begin starts slide i's reveal if it has not been seen yet.
func (r *Reveal) Begin(i int) tea.Cmd {
	if _, seen := r.progress[i]; seen {
		return nil
	}
	if !r.enabled {
		r.progress[i] = 1
		return nil
	}
	r.progress[i] = 0
	r.tweens[i] = gween.New(0, 1, r.duration, ease.OutCubic)
	if r.loop.Running() {
		return nil
	}
	return r.loop.Start()
}

// Update advances running tweens on the reveal loop's own frames.
func (r *Reveal) Update(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(anim.FrameMsg)
	if !ok {
		return nil
	}
	dt, live := r.loop.Accept(frame)
	if !live {
		return nil
	}
	for i, tw := range r.tweens {
		v, done := tw.Update(float32(dt.Seconds()))
		if done {
			r.progress[i] = 1
			delete(r.tweens, i)
			continue
		}
		r.progress[i] = float64(v)
	}
	if len(r.tweens) == 0 {
		r.loop.Stop()
		return nil
	}
	return r.loop.Next()
}

// Progress is slide i's reveal fraction in [0,1]; unseen slides are 0.
func (r *Reveal) Progress(i int) float64 {
	return r.progress[i]
}

// Running reports whether any tween is in flight.
func (r *Reveal) Running() bool { return r.loop.Running() }

// Stop cancels the loop and snaps every started slide to its final value.
func (r *Reveal) Stop() {
	r.loop.Stop()
	for i := range r.tweens {
		r.progress[i] = 1
	}
	clear(r.tweens)
}
