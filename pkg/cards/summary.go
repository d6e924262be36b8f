package cards

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/components"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/export"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/theme"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

// summaryColW is the width of each figure column on the summary card.
const summaryColW = 18

// TotalImpact is the headline figure of the summary card.
func TotalImpact(p *wrapped.Payload) int {
	return p.Stats.PeakMonth.Count + 100
}

// Consistency is the longest streak as a percentage of the year, one
// decimal.
func Consistency(p *wrapped.Payload) string {
	return fixed1(float64(p.Stats.LongestStreak)/365*100) + "%"
}

// summaryRows lays out the summary card as centred spans. The screen and
// the exported image are both drawn from these rows.
func summaryRows(p *wrapped.Payload, pal theme.Palette) [][]export.Span {
	pad := func(s string) string { return components.PadRight(s, summaryColW) }
	rows := [][]export.Span{
		{{Text: "♦", Color: pal.Pink, Bold: true}},
		{},
		{
			{Text: "What a Year, ", Color: pal.Foreground, Bold: true},
			{Text: p.User, Color: pal.Cyan, Bold: true},
			{Text: ".", Color: pal.Foreground, Bold: true},
		},
		{},
		{
			{Text: pad("TOTAL IMPACT"), Color: pal.Muted, Bold: true},
			{Text: pad("CONSISTENCY"), Color: pal.Muted, Bold: true},
		},
		{
			{Text: pad(strconv.Itoa(TotalImpact(p)) + "+"), Color: pal.Cyan, Bold: true},
			{Text: pad(Consistency(p)), Color: pal.Purple, Bold: true},
		},
		{},
		{{Text: "Share your journey to unlock your 2025 badge.", Color: pal.Muted}},
	}

	widths := make([]int, len(rows))
	widest := 0
	for i, r := range rows {
		for _, sp := range r {
			widths[i] += ansi.StringWidth(sp.Text)
		}
		widest = max(widest, widths[i])
	}
	for i, r := range rows {
		if lead := (widest - widths[i]) / 2; lead > 0 && len(r) > 0 {
			rows[i] = append([]export.Span{{Text: strings.Repeat(" ", lead)}}, r...)
		}
	}
	return rows
}

func renderSpans(s styler, rows [][]export.Span) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		var b strings.Builder
		for _, sp := range r {
			if strings.TrimSpace(sp.Text) == "" {
				b.WriteString(sp.Text)
				continue
			}
			b.WriteString(s.pal.Text(sp.Color).Bold(sp.Bold).Render(sp.Text))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (s styler) button(fg, bg, text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Bold(true).
		Render(components.Opaque("  " + strings.ToUpper(text) + "  "))
}

func (d *Deck) summary(s styler) string {
	return center(
		renderSpans(s, summaryRows(d.payload, s.pal)),
		"",
		row(80, 3,
			s.button(s.pal.Background, s.pal.Foreground, "[s] Share Analysis"),
			s.button("#ffffff", s.pal.Purple, "[e] Save Image"),
		),
		"",
		s.color(s.pal.Muted, "R restart"),
	)
}

// SummaryRegion is the exportable part of the summary slide: the card
// without its buttons, in the dark palette.
type SummaryRegion struct {
	deck *Deck
}

// Summary returns the export region for the summary slide. It is mounted
// once the slide has been rendered.
func (d *Deck) Summary() *SummaryRegion {
	return &SummaryRegion{deck: d}
}

// Mounted reports whether the summary slide has been drawn.
func (r *SummaryRegion) Mounted() bool {
	return r != nil && r.deck != nil && r.deck.mounted
}

// Rows returns the card in the export palette.
func (r *SummaryRegion) Rows() [][]export.Span {
	if !r.Mounted() {
		return nil
	}
	return summaryRows(r.deck.payload, theme.DefaultPalettes()[theme.Dark])
}
