package cards

import (
	"hash/fnv"
	"math/rand/v2"
)

// CalendarCells is the size of the peak month grid: five weeks of seven days.
const CalendarCells = 35

// calendarIntensities returns a decorative activity level per cell in
// [0,1). The levels are derived from the month label so a given payload
// always shows the same grid.
func calendarIntensities(label string) [CalendarCells]float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var out [CalendarCells]float64
	for i := range out {
		out[i] = rng.Float64()
	}
	return out
}

// calendarLevel buckets an intensity: 2 bright, 1 mid, 0 faint.
func calendarLevel(v float64) int {
	switch {
	case v > 0.7:
		return 2
	case v > 0.4:
		return 1
	}
	return 0
}
