package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws fg on top of bg. Every cell where fg shows a space is
// transparent and lets the bg cell through, so a background layer reads
// through gaps in the text. Text passed through Opaque keeps its cells.
// bg supplies the row count; each row is fitted to width.
func Overlay(fg string, bg []string, width int) string {
	fgLines := strings.Split(fg, "\n")
	out := make([]string, len(bg))
	for y, bgLine := range bg {
		bgLine = PadRight(Truncate(bgLine, width), width)
		if y >= len(fgLines) || fgLines[y] == "" {
			out[y] = bgLine
			continue
		}
		out[y] = overlayLine(Truncate(fgLines[y], width), bgLine, width)
	}
	return strings.Join(out, "\n")
}

// overlayLine splices the non-space runs of fg into bg.
func overlayLine(fg, bg string, width int) string {
	var b strings.Builder
	prev := 0
	col := 0
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		if runStart > prev {
			b.WriteString(ansi.Cut(bg, prev, runStart))
		}
		b.WriteString(ansi.Cut(fg, runStart, end))
		prev = end
		runStart = -1
	}

	for _, r := range ansi.Strip(fg) {
		w := ansi.StringWidth(string(r))
		if r == ' ' {
			flush(col)
		} else if runStart < 0 && w > 0 {
			runStart = col
		}
		col += w
	}
	flush(col)
	if prev < width {
		b.WriteString(ansi.Cut(bg, prev, width))
	}
	return b.String()
}

// Opaque replaces spaces with no-break spaces so Overlay keeps them, e.g.
// the padding of a filled button.
func Opaque(s string) string {
	return strings.ReplaceAll(s, " ", "\u00a0")
}
