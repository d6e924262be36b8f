package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/audio"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/cards"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/components"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/theme"
)

// Click zones. Only controls that are drawn get a zone.
const (
	zonePrev  = "lcw-prev"
	zoneNext  = "lcw-next"
	zoneTheme = "lcw-theme"
	zoneMusic = "lcw-music"
	zoneMute  = "lcw-mute"
	zoneShare = "lcw-share"
	zoneSave  = "lcw-save"
)

func dotZone(i int) string { return fmt.Sprintf("lcw-dot-%d", i) }

// View composes the active screen over the particle layer, with the status
// bar on the last line.
func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}
	pal := m.theme.Palette()
	h := m.bodyHeight()

	var fg string
	switch m.state {
	case StateLanding:
		fg = m.landingView(pal, h)
	case StateLoading:
		fg = m.loadingView(pal, h)
	case StateError:
		fg = m.errorView(pal, h)
	case StateWrapped:
		fg = m.rt.nav.View()
	}

	body := components.Overlay(fg, m.background(pal, h), m.width)
	if m.help.ShowAll {
		body = m.overlayHelp(pal, body, h)
	}
	return m.zones.Scan(body + "\n" + m.statusBar(pal))
}

// background is the particle frame, or a plain fill when particles are off.
func (m Model) background(pal theme.Palette, h int) []string {
	if m.rt.sim != nil {
		return m.rt.sim.View()
	}
	fill := lipgloss.NewStyle().Background(lipgloss.Color(pal.Background)).
		Render(strings.Repeat(" ", m.width))
	bg := make([]string, h)
	for i := range bg {
		bg[i] = fill
	}
	return bg
}

func (m Model) landingView(pal theme.Palette, h int) string {
	tag := pal.Text(pal.Muted).Render("2024 RECAP EDITION")
	title := lipgloss.JoinVertical(lipgloss.Center,
		pal.Text(pal.Foreground).Bold(true).Render("LEETCODE"),
		pal.Text(pal.Cyan).Bold(true).Render("WRAPPED"),
	)
	m.input.PromptStyle = pal.Text(pal.Cyan)
	m.input.TextStyle = pal.Plain()
	m.input.PlaceholderStyle = pal.Text(pal.Dim)
	field := pal.Box(pal.Purple).Padding(0, 1).Render(m.input.View())
	motto := pal.Text(pal.Muted).Italic(true).Render("ANALYZE · VISUALIZE · FLEX")
	hint := pal.Text(pal.Dim).Render("enter to unwrap · ctrl+c to quit")

	card := lipgloss.JoinVertical(lipgloss.Center, tag, "", title, "", field, "", motto, hint)
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, components.Opaque(card))
}

func (m Model) loadingView(pal theme.Palette, h int) string {
	m.spinner.Style = pal.Text(pal.Cyan)
	line := m.spinner.View() + pal.Plain().Render(" ")
	caption := pal.Text(pal.Muted).Bold(true).Render("COMPILING YOUR YEAR...")
	who := pal.Text(pal.Dim).Render(m.user)
	card := lipgloss.JoinVertical(lipgloss.Center, line, "", caption, who)
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, components.Opaque(card))
}

func (m Model) errorView(pal theme.Palette, h int) string {
	w := min(max(m.width-8, 20), 56)
	head := pal.Text(pal.Error).Bold(true).Render("Something went wrong")
	msg := pal.Text(pal.Muted).Width(w).Align(lipgloss.Center).Render(m.errMsg)
	btn := lipgloss.NewStyle().
		Foreground(lipgloss.Color(pal.Background)).
		Background(lipgloss.Color(pal.Cyan)).
		Bold(true).
		Padding(0, 2).
		Render("Try Again")
	hint := pal.Text(pal.Dim).Render("enter / r")
	card := lipgloss.JoinVertical(lipgloss.Center, head, "", msg, "", btn, hint)
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center,
		components.Opaque(pal.Box(pal.Error).Render(card)))
}

// overlayHelp draws the full key help at the bottom of the body.
func (m Model) overlayHelp(pal theme.Palette, body string, h int) string {
	m.help.Styles.FullKey = pal.Text(pal.Cyan)
	m.help.Styles.FullDesc = pal.Text(pal.Muted)
	m.help.Styles.FullSeparator = pal.Text(pal.Dim)
	box := components.Opaque(pal.Box(pal.Dim).Padding(0, 2).Render(m.help.View(m.keys)))
	fg := lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Bottom, box)
	return components.Overlay(fg, strings.Split(body, "\n"), m.width)
}

// statusBar is one line: slide position or notice on the left, slide
// controls in the middle and theme/audio controls on the right.
func (m Model) statusBar(pal theme.Palette) string {
	base := pal.Plain()
	muted := pal.Text(pal.Muted)

	left := base.Bold(true).Render(" LC WRAPPED")
	if m.state == StateWrapped && m.rt.nav != nil {
		cur := m.rt.nav.Current()
		left += muted.Render(fmt.Sprintf("  %d/%d %s", cur+1, m.rt.nav.Total(), cards.Titles[cur]))
	}
	if m.notice != "" {
		left = pal.Text(pal.Gold).Render(" " + m.notice)
	}

	var mid string
	if m.state == StateWrapped && m.rt.nav != nil {
		mid = m.slideControls(pal)
	}
	right := m.controls(pal)

	gap := m.width - components.VisibleLen(left) - components.VisibleLen(mid) - components.VisibleLen(right)
	if gap < 2 {
		left = components.Truncate(left, max(m.width-components.VisibleLen(mid)-components.VisibleLen(right)-2, 0))
		gap = m.width - components.VisibleLen(left) - components.VisibleLen(mid) - components.VisibleLen(right)
	}
	lgap := max(gap/2, 1)
	rgap := max(gap-lgap, 1)
	line := left + base.Render(strings.Repeat(" ", lgap)) + mid + base.Render(strings.Repeat(" ", rgap)) + right
	return components.Truncate(line, m.width)
}

// slideControls draws prev, the dot rail and next. Prev and next are left
// out entirely at the ends.
func (m Model) slideControls(pal theme.Palette) string {
	nav := m.rt.nav
	on := pal.Text(pal.Cyan)
	off := pal.Text(pal.Dim)
	sp := pal.Plain().Render(" ")

	var b strings.Builder
	if nav.ShowPrev() {
		b.WriteString(m.zones.Mark(zonePrev, on.Render("‹")))
	} else {
		b.WriteString(sp)
	}
	b.WriteString(sp)
	for i, cur := range nav.Dots() {
		dot := off.Render("○")
		if cur {
			dot = on.Render("●")
		}
		b.WriteString(m.zones.Mark(dotZone(i), dot))
	}
	b.WriteString(sp)
	if nav.ShowNext() {
		b.WriteString(m.zones.Mark(zoneNext, on.Render("›")))
	} else {
		b.WriteString(sp)
	}
	if nav.Current() == cards.SlideSummary {
		btn := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Background)).Bold(true)
		b.WriteString(sp + sp)
		b.WriteString(m.zones.Mark(zoneShare, btn.Background(lipgloss.Color(pal.Cyan)).Render("[s] Share")))
		b.WriteString(sp)
		b.WriteString(m.zones.Mark(zoneSave, btn.Background(lipgloss.Color(pal.Purple)).Render("[e] Save")))
	}
	return b.String()
}

// controls draws the audio panel and the theme toggle.
func (m Model) controls(pal theme.Palette) string {
	sp := pal.Plain().Render(" ")
	glyph := "☾"
	if m.theme.Get() == theme.Light {
		glyph = "☀"
	}
	themeBtn := m.zones.Mark(zoneTheme, pal.Text(pal.Purple).Render(glyph))
	if m.opts.Audio == nil {
		return themeBtn + sp
	}
	return audioPanel(pal, m.audioState, m.zones.Mark) + sp + themeBtn + sp
}

// audioPanel shows play state, the effective volume and the mute toggle.
func audioPanel(pal theme.Palette, st audio.State, mark func(id, v string) string) string {
	play := "▶"
	col := pal.Muted
	if st.Playing {
		play = "❚❚"
		col = pal.Cyan
	}
	mute := "♪"
	if st.Muted || st.EffectiveVolume() == 0 {
		mute = "×"
	}
	bar := components.Bar(st.EffectiveVolume(), 5, components.BarStyle{
		Fill:       pal.Cyan,
		Track:      pal.Dim,
		Background: pal.Background,
	})
	pct := pal.Text(pal.Muted).Render(fmt.Sprintf(" %3d%% ", int(st.EffectiveVolume()*100+0.5)))
	sp := pal.Plain().Render(" ")
	return mark(zoneMusic, pal.Text(col).Render(play)) + sp +
		mark(zoneMute, pal.Text(pal.Muted).Render(mute)) + sp + bar + pct
}
