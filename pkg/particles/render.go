package particles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille cells pack 2x4 dots. Bit layout per dot (col, row):
//
//	(0,0)=0x01 (1,0)=0x08
//	(0,1)=0x02 (1,1)=0x10
//	(0,2)=0x04 (1,2)=0x20
//	(0,3)=0x40 (1,3)=0x80
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const (
	brailleBase = 0x2800

	// DotsPerCol and DotsPerRow convert terminal cells to canvas dots.
	DotsPerCol = 2
	DotsPerRow = 4

	alphaLevels = 16
)

type cell struct {
	bits  rune
	alpha float64
}

// Renderer draws particles as coloured braille cells. Colours are blended
// from the background toward the particle colour by each particle's opacity.
type Renderer struct {
	fg, bg string
	styles [alphaLevels + 1]lipgloss.Style
	cells  []cell
}

// NewRenderer returns a renderer for the given "#RRGGBB" colours.
func NewRenderer(fg, bg string) *Renderer {
	r := &Renderer{}
	r.SetColors(fg, bg)
	return r
}

// SetColors swaps the palette. Particle state is untouched.
func (r *Renderer) SetColors(fg, bg string) {
	if fg == r.fg && bg == r.bg {
		return
	}
	r.fg, r.bg = fg, bg
	from, err := colorful.Hex(bg)
	if err != nil {
		from = colorful.Color{}
	}
	to, err := colorful.Hex(fg)
	if err != nil {
		to = colorful.Color{R: 1, G: 1, B: 1}
	}
	for i := range r.styles {
		c := from.BlendRgb(to, float64(i)/alphaLevels).Clamped()
		r.styles[i] = lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Hex())).
			Background(lipgloss.Color(bg))
	}
}

// Colors returns the current particle and background colours.
func (r *Renderer) Colors() (fg, bg string) { return r.fg, r.bg }

// Render clears the canvas, draws every particle as a filled disc and returns
// rows lines of cols cells each.
func (r *Renderer) Render(ps []Particle, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if cap(r.cells) < cols*rows {
		r.cells = make([]cell, cols*rows)
	}
	r.cells = r.cells[:cols*rows]
	clear(r.cells)

	for _, p := range ps {
		r.disc(p, cols, rows)
	}

	lines := make([]string, rows)
	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < rows; y++ {
		sb.Reset()
		level := -1
		for x := 0; x < cols; x++ {
			c := r.cells[y*cols+x]
			lv := 0
			ch := ' '
			if c.bits != 0 {
				lv = int(math.Round(c.alpha * alphaLevels))
				lv = min(max(lv, 1), alphaLevels)
				ch = brailleBase + c.bits
			}
			if lv != level && run.Len() > 0 {
				sb.WriteString(r.styles[level].Render(run.String()))
				run.Reset()
			}
			level = lv
			run.WriteRune(ch)
		}
		if run.Len() > 0 {
			sb.WriteString(r.styles[level].Render(run.String()))
			run.Reset()
		}
		lines[y] = sb.String()
	}
	return lines
}

// disc sets every dot whose centre lies within the particle radius, plus the
// dot under the particle centre so sub-dot particles stay visible. Dots off
// the canvas are clipped.
func (r *Renderer) disc(p Particle, cols, rows int) {
	w, h := cols*DotsPerCol, rows*DotsPerRow
	set := func(dx, dy int) {
		if dx < 0 || dy < 0 || dx >= w || dy >= h {
			return
		}
		c := &r.cells[(dy/DotsPerRow)*cols+dx/DotsPerCol]
		c.bits |= brailleBits[dx%DotsPerCol][dy%DotsPerRow]
		if p.Opacity > c.alpha {
			c.alpha = p.Opacity
		}
	}

	set(int(p.X), int(p.Y))
	rad := p.Radius
	for dy := int(math.Floor(p.Y - rad)); dy <= int(math.Ceil(p.Y+rad)); dy++ {
		for dx := int(math.Floor(p.X - rad)); dx <= int(math.Ceil(p.X+rad)); dx++ {
			ox := float64(dx) + 0.5 - p.X
			oy := float64(dy) + 0.5 - p.Y
			if ox*ox+oy*oy <= rad*rad {
				set(dx, dy)
			}
		}
	}
}
