package particles

import (
	"math/rand/v2"
	"testing"
)

// BenchmarkFieldStep advances a field sized for a 200-column terminal.
func BenchmarkFieldStep(b *testing.B) {
	f := NewField(0.1, rand.New(rand.NewPCG(1, 2)))
	f.Resize(200*DotsPerCol, 60*DotsPerRow)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
	}
}

// BenchmarkRender draws one 120x40 frame, the per-tick cost at 30 fps.
func BenchmarkRender(b *testing.B) {
	s := NewSimulator(30, 0.1, rand.New(rand.NewPCG(1, 2)), "#ffffff", "#030303")
	s.Resize(120, 40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.View()
	}
}
