package cards

import (
	"math"
	"strconv"
	"strings"
)

// thousands formats n with comma separators, e.g. 20456 -> "20,456".
func thousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// fixed1 formats v with one decimal.
func fixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// number formats v with the shortest exact representation, e.g. 8.5 or 10.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// countInt is n scaled by reveal progress p.
func countInt(n int, p float64) int {
	return int(math.Round(float64(n) * clampUnit(p)))
}

func countFloat(v, p float64) float64 {
	return v * clampUnit(p)
}

func clampUnit(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ratio is n/d with d <= 0 treated as 1.
func ratio(n, d int) float64 {
	if d <= 0 {
		d = 1
	}
	return float64(n) / float64(d)
}
