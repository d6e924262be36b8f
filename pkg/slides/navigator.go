// Package slides maps a vertical scroll offset onto a fixed sequence of
// full-height slides and drives smooth scrolling between them.
package slides

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/anim"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/components"
)

// Spring tuning for smooth scroll. Critically damped so it never overshoots
// past the target slide.
const (
	springFrequency = 7.0
	springDamping   = 1.0

	// settle thresholds in lines and lines/frame.
	settlePos = 0.5
	settleVel = 0.5

	// maxFrames bounds an animation; it snaps to the target afterwards.
	maxFramesSeconds = 3
)

// IndexFor returns the slide nearest to offset: round(offset/height) clamped
// to [0, total-1]. A non-positive height maps to 0.
func IndexFor(offset, height float64, total int) int {
	if height <= 0 || total <= 0 {
		return 0
	}
	i := int(math.Round(offset / height))
	return min(max(i, 0), total-1)
}

// RenderFunc draws slide i at the given size.
type RenderFunc func(i, width, height int) string

// Navigator owns the scroll container and the current slide index. The index
// is derived from the offset on every scroll and never set directly.
type Navigator struct {
	vp      viewport.Model
	total   int
	current int
	render  RenderFunc
	smooth  bool

	loop      *anim.Loop
	spring    harmonica.Spring
	pos, vel  float64
	target    float64
	frames    int
	maxFrames int
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithFPS sets the scroll animation frame rate.
func WithFPS(fps int) Option {
	return func(n *Navigator) {
		n.loop = anim.NewLoop(fps)
		n.spring = harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)
		n.maxFrames = fps * maxFramesSeconds
	}
}

// WithSmooth toggles animated jumps. Without it jumps land immediately.
func WithSmooth(on bool) Option {
	return func(n *Navigator) { n.smooth = on }
}

// New returns a navigator over total slides drawn by render.
func New(total int, render RenderFunc, opts ...Option) *Navigator {
	n := &Navigator{
		vp:     viewport.New(0, 0),
		total:  max(total, 1),
		render: render,
		smooth: true,
	}
	WithFPS(60)(n)
	for _, o := range opts {
		o(n)
	}
	return n
}

// Total is the number of slides.
func (n *Navigator) Total() int { return n.total }

// Current is the slide nearest the scroll offset.
func (n *Navigator) Current() int { return n.current }

// Offset is the scroll offset in lines.
func (n *Navigator) Offset() int { return n.vp.YOffset }

// Height is one slide's height in lines.
func (n *Navigator) Height() int { return n.vp.Height }

// Width is the slide width in cells.
func (n *Navigator) Width() int { return n.vp.Width }

// Animating reports whether a smooth scroll is in progress.
func (n *Navigator) Animating() bool { return n.loop.Running() }

// SetSize resizes the container. The offset is kept on the current slide
// boundary so a resize never drifts to a neighbour.
//
// A running animation keeps its target slide: the target and the in-flight
// position are rescaled to the new slide height.
func (n *Navigator) SetSize(width, height int) {
	running := n.loop.Running()
	slide := n.targetSlide()
	oldH := n.vp.Height

	n.vp.Width = max(width, 0)
	n.vp.Height = max(height, 0)
	n.refresh()

	switch {
	case running && n.vp.Height > 0 && oldH > 0:
		scale := float64(n.vp.Height) / float64(oldH)
		n.target = float64(slide * n.vp.Height)
		n.pos *= scale
		n.vel *= scale
		n.vp.SetYOffset(int(math.Round(n.pos)))
	case running:
		// Nothing to animate across; land on the target.
		n.loop.Stop()
		n.vp.SetYOffset(slide * n.vp.Height)
	default:
		n.vp.SetYOffset(n.current * n.vp.Height)
	}
	n.HandleScroll(n.vp.YOffset)
}

// HandleScroll re-derives the current slide from offset. It is called for
// every scroll change, whatever its source.
func (n *Navigator) HandleScroll(offset int) {
	n.current = IndexFor(float64(offset), float64(n.vp.Height), n.total)
}

// ScrollBy moves the offset by lines, cancelling any running animation.
func (n *Navigator) ScrollBy(lines int) {
	n.loop.Stop()
	n.refresh()
	n.vp.SetYOffset(n.vp.YOffset + lines)
	n.HandleScroll(n.vp.YOffset)
}

// ScrollToSlide starts a smooth scroll to slide i, clamped to the valid
// range. A running animation is retargeted rather than restarted.
func (n *Navigator) ScrollToSlide(i int) tea.Cmd {
	i = min(max(i, 0), n.total-1)
	n.refresh()
	n.target = float64(i * n.vp.Height)

	if !n.smooth || n.vp.Height == 0 {
		n.loop.Stop()
		n.vp.SetYOffset(int(n.target))
		n.HandleScroll(n.vp.YOffset)
		return nil
	}

	n.frames = 0
	if n.loop.Running() {
		return nil
	}
	n.pos = float64(n.vp.YOffset)
	n.vel = 0
	return n.loop.Start()
}

// Next and Prev jump one slide.
func (n *Navigator) Next() tea.Cmd { return n.ScrollToSlide(n.targetSlide() + 1) }
func (n *Navigator) Prev() tea.Cmd { return n.ScrollToSlide(n.targetSlide() - 1) }

// targetSlide is the slide being animated toward, or the current one.
func (n *Navigator) targetSlide() int {
	if n.loop.Running() && n.vp.Height > 0 {
		return int(n.target) / n.vp.Height
	}
	return n.current
}

// Update advances the scroll animation on its own frames.
func (n *Navigator) Update(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(anim.FrameMsg)
	if !ok {
		return nil
	}
	if _, live := n.loop.Accept(frame); !live {
		return nil
	}

	n.pos, n.vel = n.spring.Update(n.pos, n.vel, n.target)
	n.frames++

	settled := math.Abs(n.pos-n.target) < settlePos && math.Abs(n.vel) < settleVel
	if settled || n.frames >= n.maxFrames {
		n.pos, n.vel = n.target, 0
		n.vp.SetYOffset(int(n.target))
		n.HandleScroll(n.vp.YOffset)
		n.loop.Stop()
		return nil
	}

	n.vp.SetYOffset(int(math.Round(n.pos)))
	n.HandleScroll(n.vp.YOffset)
	return n.loop.Next()
}

// Stop cancels the scroll animation, leaving the offset where it is.
func (n *Navigator) Stop() {
	n.loop.Stop()
}

// ShowPrev reports whether a previous slide exists.
func (n *Navigator) ShowPrev() bool { return n.current > 0 }

// ShowNext reports whether a following slide exists.
func (n *Navigator) ShowNext() bool { return n.current < n.total-1 }

// Dots returns one entry per slide, true for the current one.
func (n *Navigator) Dots() []bool {
	d := make([]bool, n.total)
	d[n.current] = true
	return d
}

// View draws the visible part of the slide stack. Only slides overlapping
// the window are rendered; the rest are blank.
func (n *Navigator) View() string {
	n.refresh()
	return n.vp.View()
}

// refresh rebuilds the content so that the viewport can clamp offsets
// against the full stack height.
func (n *Navigator) refresh() {
	h := n.vp.Height
	if h <= 0 {
		n.vp.SetContent("")
		return
	}
	top, bottom := n.vp.YOffset, n.vp.YOffset+h
	blank := strings.Repeat("\n", h-1)

	var sb strings.Builder
	for i := 0; i < n.total; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		start := i * h
		if start+h <= top || start >= bottom || n.render == nil {
			sb.WriteString(blank)
			continue
		}
		sb.WriteString(components.FitLines(n.render(i, n.vp.Width, h), n.vp.Width, h))
	}
	n.vp.SetContent(sb.String())
}
