package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Block characters for sub-cell precision (8 levels per cell).
var barBlocks = [9]rune{
	' ',      // 0/8 empty
	'\u258F', // 1/8
	'\u258E', // 2/8
	'\u258D', // 3/8
	'\u258C', // 4/8
	'\u258B', // 5/8
	'\u258A', // 6/8
	'\u2589', // 7/8
	'\u2588', // 8/8
}

// BarStyle holds the colours of a horizontal bar.
type BarStyle struct {
	Fill       string
	Track      string
	Background string
}

// Bar renders ratio (clamped to [0,1]) as a width-cell bar with eighth-cell
// precision. The unfilled part is drawn with a light shade in Track.
func Bar(ratio float64, width int, st BarStyle) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	units := int(math.Round(ratio * float64(width*8)))
	full := units / 8
	partial := units % 8
	empty := width - full
	if partial > 0 {
		empty--
	}

	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Fill))
	track := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Track))
	if st.Background != "" {
		fill = fill.Background(lipgloss.Color(st.Background))
		track = track.Background(lipgloss.Color(st.Background))
	}

	var b strings.Builder
	if full > 0 || partial > 0 {
		seg := strings.Repeat(string(barBlocks[8]), full)
		if partial > 0 {
			seg += string(barBlocks[partial])
		}
		b.WriteString(fill.Render(seg))
	}
	if empty > 0 {
		b.WriteString(track.Render(strings.Repeat("░", empty)))
	}
	return b.String()
}

// Lower block characters, 1/8 to 8/8 of a cell.
var vbarBlocks = [9]rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// VBar renders ratio as a column height cells tall and width cells wide,
// filled from the bottom with eighth-cell precision. It returns height
// lines, top first. A positive ratio always shows at least one eighth.
func VBar(ratio float64, width, height int, st BarStyle) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	units := int(math.Round(ratio * float64(height*8)))
	if ratio > 0 && units == 0 {
		units = 1
	}

	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Fill))
	if st.Background != "" {
		fill = fill.Background(lipgloss.Color(st.Background))
	}

	lines := make([]string, height)
	for row := range height {
		// Rows count down from the top; level is this row's share of units.
		level := units - (height-1-row)*8
		switch {
		case level >= 8:
			lines[row] = fill.Render(strings.Repeat(string(vbarBlocks[8]), width))
		case level > 0:
			lines[row] = fill.Render(strings.Repeat(string(vbarBlocks[level]), width))
		default:
			lines[row] = strings.Repeat(" ", width)
		}
	}
	return lines
}
