package config

// Motion presets trade animation for calm output on slow links or for users
// who prefer reduced motion.
//
//	full:  particles at 30 fps, smooth scroll at 60 fps
//	calm:  particles at 10 fps, smooth scroll at 30 fps
//	still: no particles, jumps land immediately
type motionPreset struct {
	particles   bool
	particleFPS int
	smooth      bool
	scrollFPS   int
}

var motionPresets = map[string]motionPreset{
	"full":  {particles: true, particleFPS: 30, smooth: true, scrollFPS: 60},
	"calm":  {particles: true, particleFPS: 10, smooth: true, scrollFPS: 30},
	"still": {particles: false, particleFPS: 30, smooth: false, scrollFPS: 60},
}

// MotionPresets lists the known preset names.
func MotionPresets() []string {
	return []string{"full", "calm", "still"}
}

// ApplyMotion applies the named preset to cfg. Unknown names fall back to
// "full". Keys for which defined reports true are left alone; defined may be
// nil.
func ApplyMotion(cfg *Config, name string, defined func(key ...string) bool) {
	p, ok := motionPresets[name]
	if !ok {
		name = "full"
		p = motionPresets[name]
	}
	isSet := func(key ...string) bool {
		return defined != nil && defined(key...)
	}
	cfg.Slides.Motion = name
	if !isSet("particles", "enabled") {
		cfg.Particles.Enabled = p.particles
	}
	if !isSet("particles", "fps") {
		cfg.Particles.FPS = p.particleFPS
	}
	if !isSet("slides", "smooth") {
		cfg.Slides.Smooth = p.smooth
	}
	if !isSet("slides", "fps") {
		cfg.Slides.FPS = p.scrollFPS
	}
}

// SetMotion applies the named preset, leaving alone the keys that the config
// file or the environment set explicitly.
func (c *Config) SetMotion(name string) {
	ApplyMotion(c, name, c.explicit)
}
