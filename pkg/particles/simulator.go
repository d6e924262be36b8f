package particles

import (
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/anim"
)

// Simulator ties a Field to a frame loop and a Renderer. Sizes are in
// terminal cells; the field works in dots.
type Simulator struct {
	field    *Field
	renderer *Renderer
	loop     *anim.Loop
	cols     int
	rows     int
}

// NewSimulator returns a stopped simulator.
func NewSimulator(fps int, density float64, rng *rand.Rand, fg, bg string) *Simulator {
	return &Simulator{
		field:    NewField(density, rng),
		renderer: NewRenderer(fg, bg),
		loop:     anim.NewLoop(fps),
	}
}

// Resize regenerates the field for a cols x rows surface.
func (s *Simulator) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	s.field.Resize(cols*DotsPerCol, rows*DotsPerRow)
}

// SetColors recolours the field without touching particle state.
func (s *Simulator) SetColors(fg, bg string) {
	s.renderer.SetColors(fg, bg)
}

// Start begins the frame loop.
func (s *Simulator) Start() tea.Cmd {
	return s.loop.Start()
}

// Stop cancels the frame loop. No frame is processed afterwards.
func (s *Simulator) Stop() {
	s.loop.Stop()
}

// Running reports whether the loop is live.
func (s *Simulator) Running() bool { return s.loop.Running() }

// Update advances the field on its own frames and schedules the next one.
// Other messages are ignored.
func (s *Simulator) Update(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(anim.FrameMsg)
	if !ok {
		return nil
	}
	if _, live := s.loop.Accept(frame); !live {
		return nil
	}
	s.field.Step()
	return s.loop.Next()
}

// View draws the current frame as rows lines.
func (s *Simulator) View() []string {
	return s.renderer.Render(s.field.particles, s.cols, s.rows)
}

// Field exposes the underlying field.
func (s *Simulator) Field() *Field { return s.field }
