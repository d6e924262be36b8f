package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the full lc-wrapped configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Theme     ThemeConfig     `toml:"theme"`
	Audio     AudioConfig     `toml:"audio"`
	Particles ParticlesConfig `toml:"particles"`
	Slides    SlidesConfig    `toml:"slides"`
	Export    ExportConfig    `toml:"export"`
	Log       LogConfig       `toml:"log"`

	// explicit reports keys set by the file or environment; nil for a
	// config that was not loaded.
	explicit func(key ...string) bool
}

// APIConfig controls the statistics backend client.
type APIConfig struct {
	// BaseURL is the origin serving GET /leetcode/wrapped/{user}.
	BaseURL string `toml:"base_url" env:"LCW_API_URL"`

	// Timeout bounds a single fetch.
	Timeout Duration `toml:"timeout" env:"LCW_API_TIMEOUT"`

	// LoadingDelay is the minimum time the loading view stays up.
	LoadingDelay Duration `toml:"loading_delay" env:"LCW_LOADING_DELAY"`

	// PayloadFile serves a JSON or YAML payload from disk instead of BaseURL.
	PayloadFile string `toml:"payload_file" env:"LCW_PAYLOAD"`
}

// ThemeConfig controls the persisted display preference and palettes.
type ThemeConfig struct {
	StateDir    string `toml:"state_dir" env:"LCW_STATE_DIR"`
	Persist     bool   `toml:"persist" env:"LCW_THEME_PERSIST"`
	PaletteFile string `toml:"palette_file" env:"LCW_PALETTE_FILE"`
}

// AudioConfig controls the ambient track.
type AudioConfig struct {
	Enabled    bool     `toml:"enabled" env:"LCW_AUDIO"`
	Track      string   `toml:"track" env:"LCW_AUDIO_TRACK"`
	Volume     float64  `toml:"volume" env:"LCW_AUDIO_VOLUME"`
	RetryDelay Duration `toml:"retry_delay"`
	SampleRate int      `toml:"sample_rate"`
}

// ParticlesConfig controls the background field.
type ParticlesConfig struct {
	Enabled bool    `toml:"enabled" env:"LCW_PARTICLES"`
	FPS     int     `toml:"fps" env:"LCW_FPS"`
	Density float64 `toml:"density"`
}

// SlidesConfig controls scrolling and motion.
type SlidesConfig struct {
	// Motion names a preset: "full", "calm" or "still".
	Motion     string `toml:"motion" env:"LCW_MOTION"`
	ScrollStep int    `toml:"scroll_step"`
	FPS        int    `toml:"fps"`
	Smooth     bool   `toml:"smooth"`
}

// ExportConfig controls the summary PNG export.
type ExportConfig struct {
	Dir   string `toml:"dir" env:"LCW_EXPORT_DIR"`
	Scale int    `toml:"scale"`

	// Preview selects the inline preview protocol for the headless export
	// command: "auto", "kitty", "iterm2", "sixel" or "none".
	Preview string `toml:"preview" env:"LCW_PREVIEW"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level" env:"LCW_LOG_LEVEL"`
	File  string `toml:"file" env:"LCW_LOG_FILE"`
}

var validPreviews = map[string]bool{
	"auto": true, "kitty": true, "iterm2": true, "sixel": true, "none": true,
}

var validLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" && c.API.PayloadFile == "" {
		errs = append(errs, errors.New("api.base_url or api.payload_file is required"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %v out of range [0,1]", c.Audio.Volume))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate %d must be positive", c.Audio.SampleRate))
	}
	if c.Particles.FPS <= 0 || c.Particles.FPS > 120 {
		errs = append(errs, fmt.Errorf("particles.fps %d out of range (0,120]", c.Particles.FPS))
	}
	if c.Particles.Density <= 0 {
		errs = append(errs, fmt.Errorf("particles.density %v must be positive", c.Particles.Density))
	}
	if c.Slides.ScrollStep <= 0 {
		errs = append(errs, fmt.Errorf("slides.scroll_step %d must be positive", c.Slides.ScrollStep))
	}
	if c.Slides.FPS <= 0 || c.Slides.FPS > 120 {
		errs = append(errs, fmt.Errorf("slides.fps %d out of range (0,120]", c.Slides.FPS))
	}
	if c.Export.Scale < 1 || c.Export.Scale > 8 {
		errs = append(errs, fmt.Errorf("export.scale %d out of range [1,8]", c.Export.Scale))
	}
	if !validPreviews[strings.ToLower(c.Export.Preview)] {
		errs = append(errs, fmt.Errorf("export.preview %q unknown", c.Export.Preview))
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level %q unknown", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
