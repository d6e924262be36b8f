package cards

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/components"
)

const (
	rhythmChaos     = "You're unpredictable. When you code, you're a force of nature—dropping solutions in clusters that defy the routine."
	rhythmMetronome = "You are a metronome. Precision and predictability are your weapons. You build progress brick by brick, day by day."

	heartbeatWeekday = "You're a professional. Coding is your mission from 9 to 5."
	heartbeatWeekend = "You're a weekend warrior. The peace of Saturday is your fuel."

	peakZoneCopy = "That month, you were untouchable. The problems didn't stand a chance."
)

// Thresholds for the rhythm slide.
const (
	chaosVariance = 5
	highVelocity  = 2
)

// spread puts left and right at the two ends of width cells.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// wrap reflows text to width in colour c.
func (s styler) wrap(c, text string, width int) string {
	return s.pal.Text(c).Italic(true).Width(width).Render(text)
}

// mix blends a toward b by t and returns the hex colour.
func mix(a, b string, t float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	return ca.BlendRgb(cb, t).Clamped().Hex()
}

func (d *Deck) persona(s styler) string {
	icon := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.pal.Cyan)).
		Padding(0, 2).
		Render(s.bold(s.pal.Cyan, "♦"))
	return center(
		icon, "",
		s.label("Your 2024 Identity"), "",
		s.gradient(d.payload.Persona, s.pal.Cyan, s.pal.Foreground, s.pal.Purple),
	)
}

func (d *Deck) streak(s styler, cw int, p float64) string {
	lines := []string{
		s.bold(s.pal.Foreground, "The Power of"),
		s.bold(s.pal.Cyan, "Consistency"),
		"",
		s.label("Unstoppable Momentum"),
		"",
	}
	for _, h := range d.payload.Highlights {
		lines = append(lines, s.color(s.pal.Cyan, "▌ ✦ ")+
			s.color(s.pal.Foreground, components.TruncateWithTail(h, max(cw-6, 8), "…")))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, lines...)

	card := s.box(s.pal.Cyan, center(
		s.label("Longest Streak"), "",
		s.big(s.pal.Cyan, strconv.Itoa(countInt(d.payload.Stats.LongestStreak, p))), "",
		s.color(s.pal.Muted, "Days"),
	))
	return row(cw, 6, left, card)
}

func (d *Deck) tile(s styler, accent, glyph, value, label string) string {
	return s.box(accent, center(
		s.color(accent, glyph), "",
		s.bold(s.pal.Foreground, value),
		s.label(label),
	))
}

func (d *Deck) burst(s styler, cw int, p float64) string {
	st := d.payload.Stats
	return center(
		s.bold(s.pal.Purple, "Burst")+s.bold(s.pal.Foreground, " Mode"),
		s.pal.Text(s.pal.Muted).Italic(true).Bold(true).Render("INTENSITY DEFINED YOUR YEAR"),
		"",
		row(cw, 2,
			d.tile(s, s.pal.Purple, "ϟ", strconv.Itoa(countInt(st.BurstDays, p)), "Burst Days"),
			d.tile(s, s.pal.Cyan, "∿", fixed1(countFloat(st.AverageSolvesPerDay, p)), "Avg Solves / Day"),
			d.tile(s, s.pal.Pink, "▁▃▅", fixed1(countFloat(st.SolveVariance, p)), "Solve Variance"),
		),
	)
}

func (d *Deck) contest(s styler, cw int, p float64) string {
	c := d.payload.Stats.ContestStats
	head := s.bold(s.pal.Gold, "♛ ") + s.bold(s.pal.Foreground, "Contest Glory")
	if !c.Ranked() {
		return s.box(s.pal.Dim, center(
			head, "",
			s.bold(s.pal.Muted, "Unranked"),
			s.italic(s.pal.Muted, "No rated contests this year. Future champion loading."),
		))
	}

	pw := min(cw-8, 56)
	rating := s.box(s.pal.Dim, center(
		s.label("Rating"),
		s.big(s.pal.Gold, strconv.Itoa(countInt(int(math.Round(c.Rating)), p))),
	))
	rank := s.box(s.pal.Dim, center(
		s.label("Rank"),
		s.bold(s.pal.Foreground, "◍ "+thousands(countInt(c.GlobalRanking, p))),
	))

	lines := []string{
		head, "",
		row(pw, 2, rating, rank), "",
		spread(s.color(s.pal.Muted, "Top Percentage"), s.bold(s.pal.Cyan, number(c.TopPercentage)+"%"), pw),
		s.bar(clampUnit((100-c.TopPercentage)/100)*clampUnit(p), pw, s.pal.Gold),
	}
	if c.Badge != nil && c.Badge.Name != "" {
		lines = append(lines, "", s.label("Latest Badge"), s.bold(s.pal.Foreground, c.Badge.Name))
	}
	return s.box(s.pal.Dim, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// listRows is how many two-line entries fit a boxed list in height.
func listRows(height int) int {
	return max((height-8)/2, 1)
}

func (d *Deck) topics(s styler, cw, height int, p float64) string {
	ts := d.payload.Stats.TopicStats
	head := s.bold(s.pal.Pink, "# ") + s.bold(s.pal.Foreground, "Topic Mastery")
	if len(ts) == 0 {
		return s.box(s.pal.Dim, center(head, "", s.italic(s.pal.Muted, "No topics solved yet.")))
	}

	pw := min(cw-8, 56)
	top := ts[0].ProblemsSolved
	lines := []string{head, ""}
	for _, t := range ts[:min(len(ts), listRows(height))] {
		n := strconv.Itoa(t.ProblemsSolved)
		name := components.TruncateWithTail(t.TagName, pw-len(n)-1, "…")
		lines = append(lines,
			spread(s.bold(s.pal.Foreground, name), s.color(s.pal.Muted, n), pw),
			s.bar(ratio(t.ProblemsSolved, top)*clampUnit(p), pw, s.pal.Pink),
		)
	}
	return s.box(s.pal.Dim, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (d *Deck) languages(s styler, cw, height int, p float64) string {
	ls := d.payload.Stats.LanguageStats
	head := s.bold(s.pal.Cyan, "</> ") + s.bold(s.pal.Foreground, "Language DNA")
	if len(ls) == 0 {
		return s.box(s.pal.Dim, center(head, "", s.italic(s.pal.Muted, "No languages recorded yet.")))
	}

	pw := min(cw-8, 56)
	top := ls[0].ProblemsSolved
	lines := []string{head, ""}
	for _, l := range ls[:min(len(ls), listRows(height)-1)] {
		n := strconv.Itoa(l.ProblemsSolved) + " sol"
		name := components.TruncateWithTail(l.LanguageName, pw-len(n)-1, "…")
		lines = append(lines,
			spread(s.bold(s.pal.Foreground, name), s.color(s.pal.Muted, n), pw),
			s.bar(ratio(l.ProblemsSolved, top)*clampUnit(p), pw, s.pal.Cyan),
		)
	}
	lines = append(lines, "", components.PadCenter(
		s.italic(s.pal.Muted, `"You speak `+ls[0].LanguageName+` fluently."`), pw))
	return s.box(s.pal.Dim, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (d *Deck) rhythm(s styler, cw int) string {
	st := d.payload.Stats
	variability, blurb := "Rhythmic Solver", rhythmMetronome
	if st.SolveVariance > chaosVariance {
		variability, blurb = "Chaos Solver", rhythmChaos
	}
	velocity := "Steady"
	if st.AverageSolvesPerDay > highVelocity {
		velocity = "High"
	}

	pw := min(cw-8, 60)
	left := lipgloss.JoinVertical(lipgloss.Left, s.label("Variability"), s.bold(s.pal.Foreground, variability))
	right := lipgloss.JoinVertical(lipgloss.Right, s.label("Velocity"), s.bold(s.pal.Foreground, velocity))
	gap := max(pw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	header := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)

	return center(
		s.color(s.pal.Cyan, "◎"), "",
		s.pal.Text(s.pal.Foreground).Bold(true).Italic(true).Render("Your Solve ")+
			s.pal.Text(s.pal.Cyan).Bold(true).Italic(true).Render("Rhythm"),
		"",
		s.box(s.pal.Cyan, lipgloss.JoinVertical(lipgloss.Left, header, "", s.wrap(s.pal.Muted, blurb, pw))),
	)
}

func (d *Deck) calendarGrid(s styler, p float64) string {
	shown := int(math.Round(clampUnit(p) * CalendarCells))
	mid := mix(s.pal.Background, s.pal.Cyan, 0.4)
	var b strings.Builder
	for i, v := range d.calendar {
		if i > 0 {
			if i%7 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		if i >= shown {
			b.WriteString("  ")
			continue
		}
		switch calendarLevel(v) {
		case 2:
			b.WriteString(s.color(s.pal.Cyan, "██"))
		case 1:
			b.WriteString(s.color(mid, "██"))
		default:
			b.WriteString(s.color(s.pal.Dim, "██"))
		}
	}
	return b.String()
}

func (d *Deck) peakMonth(s styler, cw int, p float64) string {
	pm := d.payload.Stats.PeakMonth
	card := s.box(s.pal.Dim, center(
		s.color(s.pal.Cyan, "▦"), "",
		s.big(s.pal.Foreground, strconv.Itoa(countInt(pm.Count, p))),
		s.bold(s.pal.Cyan, strings.ToUpper(pm.Label)), "",
		d.calendarGrid(s, p), "",
		s.label("Your golden era"),
	))

	rw := cw - lipgloss.Width(card) - 4
	if rw < 24 {
		rw = min(cw, 48)
	}
	rw = min(rw, 48)
	side := lipgloss.JoinVertical(lipgloss.Left,
		s.bold(s.pal.Foreground, "Your ")+s.bold(s.pal.Cyan, "Peak Zone"), "",
		s.wrap(s.pal.Muted, peakZoneCopy, rw), "",
		s.bar(p, rw, s.pal.Cyan),
	)
	return row(cw, 4, card, side)
}

func (d *Deck) heartbeat(s styler, cw, height int, p float64) string {
	ww := d.payload.Stats.WeekdayVsWeekend
	total := ww.Weekday + ww.Weekend
	barH := min(max(height-14, 3), 10)

	column := func(label string, n int, fill string) string {
		bars := components.VBar(ratio(n, total)*clampUnit(p), 8, barH, components.BarStyle{
			Fill:       fill,
			Background: s.pal.Background,
		})
		return center(
			s.label(label), "",
			strings.Join(bars, "\n"), "",
			s.bold(s.pal.Foreground, strconv.Itoa(countInt(n, p))),
		)
	}

	blurb := heartbeatWeekend
	if ww.Weekday > ww.Weekend {
		blurb = heartbeatWeekday
	}
	return center(
		s.bold(s.pal.Foreground, "The ")+s.bold(s.pal.Pink, "Heartbeat")+s.bold(s.pal.Foreground, " of your Code"),
		"",
		row(cw, 12, column("Weekday", ww.Weekday, s.pal.Cyan), column("Weekend", ww.Weekend, s.pal.Pink)),
		"",
		s.italic(s.pal.Muted, blurb),
	)
}
