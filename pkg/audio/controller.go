// Package audio plays the looping background track. Playback may be refused
// until the output device is ready, so the controller retries once shortly
// after start and then waits for the user's first interaction.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"
)

var (
	// ErrNotAllowed means the platform refused to start playback yet.
	ErrNotAllowed = errors.New("audio: playback not allowed")

	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("audio: controller closed")
)

// DefaultVolume is the initial volume.
const DefaultVolume = 0.7

// DefaultRetryDelay is the wait before the second autoplay attempt.
const DefaultRetryDelay = 100 * time.Millisecond

// Backend is a single looping track.
type Backend interface {
	// Play starts or resumes playback. It returns ErrNotAllowed when the
	// platform refuses playback.
	Play() error
	Pause()
	SetVolume(v float64)
	Close() error
}

// Phase is the controller's lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhasePlaying
	PhaseBlocked
	PhasePaused
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitializing:
		return "initializing"
	case PhasePlaying:
		return "playing"
	case PhaseBlocked:
		return "blocked"
	case PhasePaused:
		return "paused"
	case PhaseClosed:
		return "closed"
	}
	return "unknown"
}

// State is a snapshot of the controller.
type State struct {
	Phase   Phase
	Playing bool
	Volume  float64
	Muted   bool

	// Rev increases with every published state. Notifications may arrive
	// out of order; the one with the highest Rev is current.
	Rev uint64
}

// EffectiveVolume is 0 while muted, otherwise Volume.
func (s State) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.Volume
}

// StateMsg carries a state change to the UI.
type StateMsg struct {
	State State
}

// Options configures a Controller.
type Options struct {
	Volume     float64
	RetryDelay time.Duration
	Logger     *slog.Logger

	// Notify is called with every state change, outside the controller lock.
	Notify func(State)

	// AfterFunc schedules f after d and returns a cancel func. Defaults to
	// time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) (stop func() bool)
}

// Controller owns the audio state. Methods are safe for concurrent use: the
// retry timer fires on its own goroutine.
type Controller struct {
	backend    Backend
	retryDelay time.Duration
	logger     *slog.Logger
	notify     func(State)
	afterFunc  func(time.Duration, func()) func() bool

	mu          sync.Mutex
	state       State
	started     bool
	closed      bool
	cancelRetry func() bool
	hookArmed   bool
	hookUsed    bool

	// userPaused is set by a manual pause and cleared by a manual play. A
	// play attempt that succeeds while it is set is undone.
	userPaused bool
}

// NewController wraps backend. Nothing plays until Start.
func NewController(backend Backend, opts Options) *Controller {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		}
	}
	return &Controller{
		backend:    backend,
		retryDelay: opts.RetryDelay,
		logger:     opts.Logger,
		notify:     opts.Notify,
		afterFunc:  opts.AfterFunc,
		state: State{
			Phase:  PhaseIdle,
			Volume: clamp01(opts.Volume),
		},
	}
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// EffectiveVolume is the volume actually applied to the backend.
func (c *Controller) EffectiveVolume() float64 {
	return c.State().EffectiveVolume()
}

// Start applies the volume and attempts playback now and once more after
// the retry delay. Only the first call has any effect.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.state.Phase = PhaseInitializing
	c.backend.SetVolume(c.state.EffectiveVolume())
	c.cancelRetry = c.afterFunc(c.retryDelay, c.autoplay)
	c.mu.Unlock()

	c.publish()
	c.autoplay()
}

// autoplay is one automatic play attempt. It backs off if playback is
// already running or the user has taken control.
func (c *Controller) autoplay() {
	c.mu.Lock()
	if c.closed || c.state.Playing || c.userPaused {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	err := c.backend.Play()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if err == nil {
			c.backend.Pause()
		}
		return
	}
	if err != nil {
		c.logger.Debug("audio: autoplay refused", "error", err)
		if !c.state.Playing && !c.userPaused {
			c.state.Phase = PhaseBlocked
			if !c.hookUsed {
				c.hookArmed = true
			}
		}
		c.mu.Unlock()
		c.publish()
		return
	}
	if c.userPaused {
		// The user paused while this attempt was in flight; the resource
		// is playing again, so stop it to match the reported state.
		c.mu.Unlock()
		c.backend.Pause()
		return
	}
	c.state.Playing = true
	c.state.Phase = PhasePlaying
	c.hookArmed = false
	c.mu.Unlock()
	c.publish()
}

// Interact fires the one-shot interaction fallback: if an autoplay attempt
// was refused, playback is attempted once more. Later calls do nothing.
func (c *Controller) Interact() {
	c.mu.Lock()
	if c.closed || !c.hookArmed || c.hookUsed {
		c.mu.Unlock()
		return
	}
	c.hookArmed = false
	c.hookUsed = true
	c.mu.Unlock()

	_ = c.resolveManualPlay(c.backend.Play())
}

// Toggle pauses when playing, otherwise attempts playback. A refused play
// leaves the state unchanged and returns the error.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.stopRetryLocked()
	if c.state.Playing {
		c.backend.Pause()
		c.state.Playing = false
		c.state.Phase = PhasePaused
		c.userPaused = true
		c.mu.Unlock()
		c.publish()
		return nil
	}
	// A manual play consumes the fallback.
	c.hookArmed = false
	c.hookUsed = true
	c.userPaused = false
	c.mu.Unlock()

	if err := c.resolveManualPlay(c.backend.Play()); err != nil {
		return fmt.Errorf("audio: play: %w", err)
	}
	return nil
}

func (c *Controller) resolveManualPlay(err error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if err == nil {
			c.backend.Pause()
		}
		return ErrClosed
	}
	if err != nil {
		c.logger.Warn("audio: play failed", "error", err)
		c.mu.Unlock()
		return err
	}
	if c.userPaused {
		c.mu.Unlock()
		c.backend.Pause()
		return nil
	}
	c.state.Playing = true
	c.state.Phase = PhasePlaying
	c.mu.Unlock()
	c.publish()
	return nil
}

// SetVolume clamps v to [0,1], applies it and clears mute. It never restarts
// the track.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Volume = clamp01(v)
	c.state.Muted = false
	c.backend.SetVolume(c.state.EffectiveVolume())
	c.mu.Unlock()
	c.publish()
}

// AdjustVolume adds delta to the current volume.
func (c *Controller) AdjustVolume(delta float64) {
	c.SetVolume(c.State().Volume + delta)
}

// ToggleMute flips mute and keeps the stored volume.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Muted = !c.state.Muted
	c.backend.SetVolume(c.state.EffectiveVolume())
	c.mu.Unlock()
	c.publish()
}

// Close cancels the retry, removes the interaction fallback, stops playback
// and releases the backend. Safe to call more than once; no notification is
// sent after it returns.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.stopRetryLocked()
	c.hookArmed = false
	if c.state.Playing {
		c.backend.Pause()
	}
	c.state.Playing = false
	c.state.Phase = PhaseClosed
	c.mu.Unlock()

	if err := c.backend.Close(); err != nil {
		return fmt.Errorf("audio: close: %w", err)
	}
	return nil
}

func (c *Controller) stopRetryLocked() {
	if c.cancelRetry != nil {
		c.cancelRetry()
		c.cancelRetry = nil
	}
}

func (c *Controller) publish() {
	c.mu.Lock()
	if c.closed || c.notify == nil {
		c.mu.Unlock()
		return
	}
	c.state.Rev++
	st := c.state
	fn := c.notify
	c.mu.Unlock()
	fn(st)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
