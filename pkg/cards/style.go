package cards

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/components"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/theme"
)

// styler renders text in one palette.
type styler struct {
	pal theme.Palette
}

func (s styler) color(c, text string) string {
	return s.pal.Text(c).Render(text)
}

func (s styler) bold(c, text string) string {
	return s.pal.Text(c).Bold(true).Render(text)
}

func (s styler) italic(c, text string) string {
	return s.pal.Text(c).Italic(true).Render(text)
}

// label is the small upper-case caption above figures.
func (s styler) label(text string) string {
	return s.pal.Text(s.pal.Muted).Bold(true).Render(strings.ToUpper(text))
}

func (s styler) box(accent string, body string) string {
	return s.pal.Box(accent).Render(body)
}

func (s styler) bar(r float64, width int, fill string) string {
	return components.Bar(r, width, components.BarStyle{
		Fill:       fill,
		Track:      s.pal.Dim,
		Background: s.pal.Background,
	})
}

// gradient colours text rune by rune along the given stops.
func (s styler) gradient(text string, stops ...string) string {
	runes := []rune(text)
	if len(runes) == 0 || len(stops) == 0 {
		return text
	}
	cols := make([]colorful.Color, 0, len(stops))
	for _, st := range stops {
		c, err := colorful.Hex(st)
		if err != nil {
			return s.bold(s.pal.Foreground, text)
		}
		cols = append(cols, c)
	}

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(s.bold(blendStops(cols, t).Hex(), string(r)))
	}
	return b.String()
}

// blendStops interpolates evenly spaced stops at t in [0,1].
func blendStops(cols []colorful.Color, t float64) colorful.Color {
	if len(cols) == 1 {
		return cols[0]
	}
	seg := t * float64(len(cols)-1)
	i := int(seg)
	if i >= len(cols)-1 {
		return cols[len(cols)-1]
	}
	return cols[i].BlendLuv(cols[i+1], seg-float64(i)).Clamped()
}

// center stacks blocks centred on each other.
func center(blocks ...string) string {
	return lipgloss.JoinVertical(lipgloss.Center, blocks...)
}

// row places blocks side by side when they fit width, else stacks them.
func row(width int, gap int, blocks ...string) string {
	total := 0
	for _, b := range blocks {
		total += lipgloss.Width(b)
	}
	total += gap * (len(blocks) - 1)
	if total > width {
		return center(blocks...)
	}
	spaced := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 {
			spaced = append(spaced, strings.Repeat(" ", gap))
		}
		spaced = append(spaced, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, spaced...)
}

// bigGlyphs is a three-row block font for figures.
var bigGlyphs = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▀█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	'.': {" ", " ", "▀"},
	',': {" ", " ", "█"},
	'+': {"   ", "▀█▀", "   "},
	'-': {"   ", "▀▀▀", "   "},
	'%': {"█ ▄", "▄▀ ", "▀ █"},
}

// big renders text in the block font; runes without a glyph are dropped.
func (s styler) big(c, text string) string {
	var rows [3][]string
	for _, r := range text {
		g, ok := bigGlyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	lines := make([]string, 3)
	for i := range rows {
		lines[i] = s.color(c, strings.Join(rows[i], " "))
	}
	return strings.Join(lines, "\n")
}
