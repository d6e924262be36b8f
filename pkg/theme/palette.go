package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours a preference resolves to. All values are
// "#RRGGBB" hex strings.
type Palette struct {
	Name       string
	Background string
	Foreground string
	Muted      string
	Dim        string

	// Accents used across cards.
	Cyan   string
	Purple string
	Pink   string
	Gold   string

	Particle string
	Error    string
}

var darkPalette = Palette{
	Name:       "dark",
	Background: "#030303",
	Foreground: "#ffffff",
	Muted:      "#9ca3af",
	Dim:        "#3f3f46",
	Cyan:       "#00f7ff",
	Purple:     "#bc13fe",
	Pink:       "#ff00e0",
	Gold:       "#facc15",
	Particle:   "#ffffff",
	Error:      "#ef4444",
}

var lightPalette = Palette{
	Name:       "light",
	Background: "#ffffff",
	Foreground: "#0f172a",
	Muted:      "#64748b",
	Dim:        "#cbd5e1",
	Cyan:       "#0891b2",
	Purple:     "#7c3aed",
	Pink:       "#db2777",
	Gold:       "#ca8a04",
	Particle:   "#0f172a",
	Error:      "#dc2626",
}

// DefaultPalettes returns a fresh copy of the built-in palettes.
func DefaultPalettes() map[Preference]Palette {
	return map[Preference]Palette{
		Dark:  darkPalette,
		Light: lightPalette,
	}
}

// Text returns a style drawing c on the palette background. Every styled
// span carries the background so the whole screen follows the preference.
func (p Palette) Text(c string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c)).
		Background(lipgloss.Color(p.Background))
}

// Plain is Text in the foreground colour.
func (p Palette) Plain() lipgloss.Style {
	return p.Text(p.Foreground)
}

// Box returns a rounded, padded border in c.
func (p Palette) Box(c string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c)).
		BorderBackground(lipgloss.Color(p.Background)).
		Background(lipgloss.Color(p.Background)).
		Padding(1, 3)
}
