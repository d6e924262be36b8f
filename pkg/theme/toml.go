package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLPalettes is the on-disk palette override file:
//
//	[dark]
//	background = "#000000"
//	cyan = "#00ffff"
//
//	[light]
//	foreground = "#111111"
//
// Missing keys keep the built-in value.
type thTOMLPalettes struct {
	Dark  *thTOMLPalette `toml:"dark,omitempty"`
	Light *thTOMLPalette `toml:"light,omitempty"`
}

type thTOMLPalette struct {
	Background string `toml:"background,omitempty"`
	Foreground string `toml:"foreground,omitempty"`
	Muted      string `toml:"muted,omitempty"`
	Dim        string `toml:"dim,omitempty"`
	Cyan       string `toml:"cyan,omitempty"`
	Purple     string `toml:"purple,omitempty"`
	Pink       string `toml:"pink,omitempty"`
	Gold       string `toml:"gold,omitempty"`
	Particle   string `toml:"particle,omitempty"`
	Error      string `toml:"error,omitempty"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadPalettesFile reads a palette override file.
func LoadPalettesFile(path string) (map[Preference]Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: read palette file: %w", err)
	}
	return LoadPalettesTOML(data)
}

// LoadPalettesTOML parses overrides and merges them over the built-ins.
func LoadPalettesTOML(data []byte) (map[Preference]Palette, error) {
	var tp thTOMLPalettes
	if err := toml.Unmarshal(data, &tp); err != nil {
		return nil, fmt.Errorf("theme: parse TOML: %w", err)
	}

	out := DefaultPalettes()
	if tp.Dark != nil {
		out[Dark] = thMerge(out[Dark], *tp.Dark)
	}
	if tp.Light != nil {
		out[Light] = thMerge(out[Light], *tp.Light)
	}
	for pref, p := range out {
		if err := thValidatePalette(p); err != nil {
			return nil, fmt.Errorf("theme: %s palette: %w", pref, err)
		}
	}
	return out, nil
}

// SavePalettesTOML serialises palettes as a complete override file.
func SavePalettesTOML(p map[Preference]Palette) ([]byte, error) {
	tp := thTOMLPalettes{}
	if d, ok := p[Dark]; ok {
		v := thFromPalette(d)
		tp.Dark = &v
	}
	if l, ok := p[Light]; ok {
		v := thFromPalette(l)
		tp.Light = &v
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tp); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

func thMerge(base Palette, o thTOMLPalette) Palette {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Background, o.Background)
	set(&base.Foreground, o.Foreground)
	set(&base.Muted, o.Muted)
	set(&base.Dim, o.Dim)
	set(&base.Cyan, o.Cyan)
	set(&base.Purple, o.Purple)
	set(&base.Pink, o.Pink)
	set(&base.Gold, o.Gold)
	set(&base.Particle, o.Particle)
	set(&base.Error, o.Error)
	return base
}

func thFromPalette(p Palette) thTOMLPalette {
	return thTOMLPalette{
		Background: p.Background,
		Foreground: p.Foreground,
		Muted:      p.Muted,
		Dim:        p.Dim,
		Cyan:       p.Cyan,
		Purple:     p.Purple,
		Pink:       p.Pink,
		Gold:       p.Gold,
		Particle:   p.Particle,
		Error:      p.Error,
	}
}

// thValidatePalette checks every colour is "#RRGGBB".
func thValidatePalette(p Palette) error {
	fields := []struct {
		name, value string
	}{
		{"background", p.Background},
		{"foreground", p.Foreground},
		{"muted", p.Muted},
		{"dim", p.Dim},
		{"cyan", p.Cyan},
		{"purple", p.Purple},
		{"pink", p.Pink},
		{"gold", p.Gold},
		{"particle", p.Particle},
		{"error", p.Error},
	}
	for _, f := range fields {
		if !thHexColorRegex.MatchString(f.value) {
			return fmt.Errorf("invalid %s color %q", f.name, f.value)
		}
	}
	return nil
}
