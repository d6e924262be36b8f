// Package particles simulates and draws the drifting dot field behind the
// presentation.
package particles

import (
	"math"
	"math/rand/v2"
)

// Spawn ranges. Positions are uniform over the canvas.
const (
	MaxRadius   = 2.0
	MaxSpeed    = 0.1
	MinOpacity  = 0.1
	MaxOpacity  = 0.6
	DefaultRate = 0.1
)

// Particle is one dot. Coordinates are canvas dots.
type Particle struct {
	X, Y    float64
	Radius  float64
	DX, DY  float64
	Opacity float64
}

// Field owns the particle collection for a canvas of a given size.
type Field struct {
	width, height float64
	density       float64
	rng           *rand.Rand
	particles     []Particle
}

// NewField returns an empty field. density is particles per unit of width;
// rng may be nil for a time-seeded source.
func NewField(density float64, rng *rand.Rand) *Field {
	if density <= 0 {
		density = DefaultRate
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{density: density, rng: rng}
}

// Resize discards every particle and spawns floor(width*density) new ones.
// Count depends on width only.
func (f *Field) Resize(width, height int) {
	f.width = float64(max(width, 0))
	f.height = float64(max(height, 0))

	n := int(math.Floor(f.width * f.density))
	if f.width == 0 || f.height == 0 {
		n = 0
	}
	f.particles = make([]Particle, n)
	for i := range f.particles {
		f.particles[i] = f.spawn()
	}
}

func (f *Field) spawn() Particle {
	return Particle{
		X:       wrap(f.rng.Float64()*f.width, f.width),
		Y:       wrap(f.rng.Float64()*f.height, f.height),
		Radius:  f.rng.Float64() * MaxRadius,
		DX:      (f.rng.Float64()*2 - 1) * MaxSpeed,
		DY:      (f.rng.Float64()*2 - 1) * MaxSpeed,
		Opacity: MinOpacity + f.rng.Float64()*(MaxOpacity-MinOpacity),
	}
}

// Step advances every particle by its velocity and wraps it back onto the
// canvas, so 0 <= X < width and 0 <= Y < height hold afterwards.
func (f *Field) Step() {
	for i := range f.particles {
		p := &f.particles[i]
		p.X = wrap(p.X+p.DX, f.width)
		p.Y = wrap(p.Y+p.DY, f.height)
	}
}

// Particles returns a copy of the current particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Len is the particle count.
func (f *Field) Len() int { return len(f.particles) }

// Size is the canvas size in dots.
func (f *Field) Size() (width, height int) {
	return int(f.width), int(f.height)
}

// wrap maps v onto [0, size).
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// Rounding in v+size can land exactly on size.
	if v >= size {
		v = 0
	}
	return v
}
