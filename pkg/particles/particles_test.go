package particles

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/anim"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestResizeCount(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{1920, 1080, 192},
		{1919, 1080, 191},
		{9, 100, 0},
		{10, 1, 1},
		{160, 2000, 16},
		{0, 100, 0},
		{100, 0, 0},
	}
	for _, tt := range tests {
		f := NewField(0.1, seeded())
		f.Resize(tt.w, tt.h)
		if f.Len() != tt.want {
			t.Errorf("Resize(%d,%d) count = %d, want %d", tt.w, tt.h, f.Len(), tt.want)
		}
	}
}

func TestCountIndependentOfHeight(t *testing.T) {
	f := NewField(0.1, seeded())
	f.Resize(300, 10)
	a := f.Len()
	f.Resize(300, 5000)
	if f.Len() != a {
		t.Errorf("count changed with height: %d vs %d", a, f.Len())
	}
}

func TestSpawnBounds(t *testing.T) {
	f := NewField(0.1, seeded())
	f.Resize(5000, 700)
	for i, p := range f.Particles() {
		if p.X < 0 || p.X >= 5000 || p.Y < 0 || p.Y >= 700 {
			t.Fatalf("particle %d out of canvas: %+v", i, p)
		}
		if p.Radius < 0 || p.Radius >= MaxRadius {
			t.Fatalf("particle %d radius %v", i, p.Radius)
		}
		if p.DX < -MaxSpeed || p.DX >= MaxSpeed || p.DY < -MaxSpeed || p.DY >= MaxSpeed {
			t.Fatalf("particle %d velocity (%v,%v)", i, p.DX, p.DY)
		}
		if p.Opacity < MinOpacity || p.Opacity >= MaxOpacity {
			t.Fatalf("particle %d opacity %v", i, p.Opacity)
		}
	}
}

func TestResizeRegenerates(t *testing.T) {
	f := NewField(0.1, seeded())
	f.Resize(200, 200)
	before := f.Particles()
	f.Resize(200, 200)
	after := f.Particles()
	same := 0
	for i := range before {
		if before[i] == after[i] {
			same++
		}
	}
	if same == len(before) {
		t.Error("Resize kept the old particles")
	}
}

func TestWrapAfterManyTicks(t *testing.T) {
	sizes := [][2]int{{10, 10}, {37, 3}, {160, 96}, {1, 1}}
	for _, sz := range sizes {
		f := NewField(1, seeded())
		f.Resize(sz[0], sz[1])
		w, h := float64(sz[0]), float64(sz[1])
		for tick := 0; tick < 5000; tick++ {
			f.Step()
			for _, p := range f.particles {
				if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
					t.Fatalf("size %v tick %d: particle escaped: %+v", sz, tick, p)
				}
			}
		}
	}
}

func TestWrapEdges(t *testing.T) {
	tests := []struct {
		v, size, want float64
	}{
		{-0.05, 10, 9.95},
		{10, 10, 0},
		{10.05, 10, 0.05},
		{5, 10, 5},
		{-1e-18, 10, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		got := wrap(tt.v, tt.size)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("wrap(%v, %v) = %v, want %v", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestRenderDimensions(t *testing.T) {
	r := NewRenderer("#ffffff", "#030303")
	f := NewField(0.1, seeded())
	f.Resize(80*DotsPerCol, 24*DotsPerRow)

	lines := r.Render(f.Particles(), 80, 24)
	if len(lines) != 24 {
		t.Fatalf("rows = %d, want 24", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 80 {
			t.Errorf("row %d width = %d, want 80", i, w)
		}
	}
}

func TestRenderDrawsDots(t *testing.T) {
	r := NewRenderer("#ffffff", "#000000")
	ps := []Particle{{X: 0.2, Y: 0.2, Radius: 0, Opacity: 0.5}}
	lines := r.Render(ps, 2, 1)
	plain := ansi.Strip(lines[0])
	if !strings.HasPrefix(plain, string(rune(brailleBase+0x01))) {
		t.Errorf("top-left dot missing: %q", plain)
	}
	if !strings.HasSuffix(plain, " ") {
		t.Errorf("second cell should be blank: %q", plain)
	}
}

func TestRenderClearsBetweenFrames(t *testing.T) {
	r := NewRenderer("#ffffff", "#000000")
	r.Render([]Particle{{X: 1, Y: 1, Radius: 1.5, Opacity: 0.5}}, 4, 2)
	lines := r.Render(nil, 4, 2)
	for _, l := range lines {
		if strings.TrimSpace(ansi.Strip(l)) != "" {
			t.Errorf("stale dots after clear: %q", ansi.Strip(l))
		}
	}
}

func TestSetColorsKeepsParticles(t *testing.T) {
	s := NewSimulator(30, 0.1, seeded(), "#ffffff", "#030303")
	s.Resize(100, 30)
	before := s.Field().Particles()
	s.SetColors("#0f172a", "#ffffff")
	after := s.Field().Particles()
	if len(before) != len(after) || before[0] != after[0] {
		t.Error("colour change reset particles")
	}
	if fg, bg := s.renderer.Colors(); fg != "#0f172a" || bg != "#ffffff" {
		t.Errorf("colors = %s %s", fg, bg)
	}
}

func TestSimulatorFramesAndStop(t *testing.T) {
	s := NewSimulator(30, 0.1, seeded(), "#ffffff", "#030303")
	s.Resize(50, 10)
	if s.Start() == nil {
		t.Fatal("Start returned nil")
	}
	before := s.Field().Particles()

	frame := anim.FrameMsg{ID: s.loop.ID(), Gen: 1, Time: time.Now()}
	if cmd := s.Update(frame); cmd == nil {
		t.Error("live frame did not reschedule")
	}
	moved := s.Field().Particles()
	if before[0] == moved[0] {
		t.Error("frame did not advance particles")
	}

	s.Stop()
	s.Stop()
	if cmd := s.Update(frame); cmd != nil {
		t.Error("frame after Stop rescheduled")
	}
	if s.Field().Particles()[0] != moved[0] {
		t.Error("frame after Stop advanced particles")
	}
}

func TestSimulatorIgnoresForeignFrames(t *testing.T) {
	s := NewSimulator(30, 0.1, seeded(), "#ffffff", "#030303")
	s.Resize(50, 10)
	s.Start()
	if cmd := s.Update(anim.FrameMsg{ID: -1, Gen: 1}); cmd != nil {
		t.Error("foreign frame rescheduled")
	}
	if cmd := s.Update("not a frame"); cmd != nil {
		t.Error("non-frame message produced a command")
	}
}
