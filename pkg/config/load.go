package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const appName = "lc-wrapped"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/lc-wrapped/config.toml
//  2. ~/.config/lc-wrapped/config.toml
//
// If no file exists, DefaultConfig() with environment overrides is returned.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return finish(DefaultConfig(), nil)
}

// LoadFromFile reads configuration from a specific file path. A missing file
// is not an error.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return finish(DefaultConfig(), nil)
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes TOML over DefaultConfig(), then applies the motion
// preset and environment overrides.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return finish(cfg, md.IsDefined)
}

// presetEnv maps preset-controlled keys to the variables that set them.
var presetEnv = map[string]string{
	"particles.enabled": "LCW_PARTICLES",
	"particles.fps":     "LCW_FPS",
}

// finish applies environment overrides, then the motion preset. Keys set
// explicitly in the file or through the environment win over the preset, on
// this pass and on any later SetMotion.
func finish(cfg *Config, defined func(key ...string) bool) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.explicit = func(key ...string) bool {
		if v, ok := presetEnv[strings.Join(key, ".")]; ok && os.Getenv(v) != "" {
			return true
		}
		return defined != nil && defined(key...)
	}
	cfg.SetMotion(cfg.Slides.Motion)
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:8000",
			Timeout:      Duration{15 * time.Second},
			LoadingDelay: Duration{2 * time.Second},
		},
		Theme: ThemeConfig{
			StateDir: filepath.Join(xdgStateHome(home), appName),
			Persist:  true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Track:      filepath.Join(xdgDataHome(home), appName, "background.mp3"),
			Volume:     0.7,
			RetryDelay: Duration{100 * time.Millisecond},
			SampleRate: 44100,
		},
		Particles: ParticlesConfig{
			Enabled: true,
			FPS:     30,
			Density: 0.1,
		},
		Slides: SlidesConfig{
			Motion:     "full",
			ScrollStep: 3,
			FPS:        60,
			Smooth:     true,
		},
		Export: ExportConfig{
			Dir:     defaultExportDir(home),
			Scale:   2,
			Preview: "auto",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(xdgStateHome(home), appName, appName+".log"),
		},
	}
}

// applyEnvOverrides overlays LCW_* environment variables onto cfg.
func applyEnvOverrides(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, appName, "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, appName, "config.toml"))
	}

	return paths
}

// DefaultPath returns the primary config file location.
func DefaultPath() string {
	return configSearchPaths()[0]
}

func defaultExportDir(home string) string {
	if v := os.Getenv("XDG_DOWNLOAD_DIR"); v != "" {
		return v
	}
	return filepath.Join(home, "Downloads")
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}

// xdgDataHome returns XDG_DATA_HOME or ~/.local/share as fallback.
func xdgDataHome(home string) string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "share")
}
