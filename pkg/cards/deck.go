// Package cards renders the ten wrapped slides from a payload.
//
// Cards are stateless views over the payload apart from the reveal
// progress, which only scales the numbers shown while a slide animates in.
package cards

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/theme"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

// Total is the number of slides.
const Total = 10

// Slide indices.
const (
	SlidePersona = iota
	SlideStreak
	SlideBurst
	SlideContest
	SlideTopics
	SlideLanguages
	SlideRhythm
	SlidePeakMonth
	SlideHeartbeat
	SlideSummary
)

// Titles are short slide names for the status bar.
var Titles = [Total]string{
	"Identity", "Streak", "Burst", "Contest", "Topics",
	"Languages", "Rhythm", "Peak", "Heartbeat", "Summary",
}

// Deck renders slides for one payload.
type Deck struct {
	payload  *wrapped.Payload
	pal      theme.Palette
	reveal   *Reveal
	calendar [CalendarCells]float64
	mounted  bool
}

// Option configures a Deck.
type Option func(*Deck)

// WithReveal sets the count-up animation. Disabled shows final values at
// once.
func WithReveal(enabled bool, fps int, d time.Duration) Option {
	return func(dk *Deck) { dk.reveal = NewReveal(enabled, fps, d) }
}

// NewDeck returns a deck over p. p is never modified.
func NewDeck(p *wrapped.Payload, pal theme.Palette, opts ...Option) *Deck {
	d := &Deck{
		payload: p,
		pal:     pal,
		reveal:  NewReveal(true, 30, 0),
	}
	for _, o := range opts {
		o(d)
	}
	d.calendar = calendarIntensities(p.Stats.PeakMonth.Label)
	return d
}

// Payload returns the payload being shown.
func (d *Deck) Payload() *wrapped.Payload { return d.payload }

// SetPalette recolours subsequent renders.
func (d *Deck) SetPalette(pal theme.Palette) { d.pal = pal }

// Begin starts slide i's reveal animation the first time it is current.
func (d *Deck) Begin(i int) tea.Cmd { return d.reveal.Begin(i) }

// Update drives the reveal animation.
func (d *Deck) Update(msg tea.Msg) tea.Cmd { return d.reveal.Update(msg) }

// Stop cancels the reveal animation.
func (d *Deck) Stop() { d.reveal.Stop() }

// Render draws slide i centred in a width x height area. It satisfies
// slides.RenderFunc.
func (d *Deck) Render(i, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	s := styler{pal: d.pal}
	cw := min(width-4, 76)
	p := d.reveal.Progress(i)

	var body string
	switch i {
	case SlidePersona:
		body = d.persona(s)
	case SlideStreak:
		body = d.streak(s, cw, p)
	case SlideBurst:
		body = d.burst(s, cw, p)
	case SlideContest:
		body = d.contest(s, cw, p)
	case SlideTopics:
		body = d.topics(s, cw, height, p)
	case SlideLanguages:
		body = d.languages(s, cw, height, p)
	case SlideRhythm:
		body = d.rhythm(s, cw)
	case SlidePeakMonth:
		body = d.peakMonth(s, cw, p)
	case SlideHeartbeat:
		body = d.heartbeat(s, cw, height, p)
	case SlideSummary:
		body = d.summary(s)
		d.mounted = true
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
