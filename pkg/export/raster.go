package export

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Span is a run of text drawn in one colour. Color is "#RRGGBB"; an empty or
// invalid colour draws white.
type Span struct {
	Text  string
	Color string
	Bold  bool
}

// Margin around the text, in cells.
const (
	marginCols = 2
	marginRows = 1
)

var (
	fontsOnce    sync.Once
	regularFont  *opentype.Font
	boldFont     *opentype.Font
	fontParseErr error
)

func fonts() (*opentype.Font, *opentype.Font, error) {
	fontsOnce.Do(func() {
		regularFont, fontParseErr = opentype.Parse(gomono.TTF)
		if fontParseErr != nil {
			return
		}
		boldFont, fontParseErr = opentype.Parse(gomonobold.TTF)
	})
	return regularFont, boldFont, fontParseErr
}

// Rasterize draws rows of spans on a cell grid of cellW x cellH pixels over
// an opaque black backdrop. Each rune is placed at its own cell so wide
// characters keep the terminal layout.
func Rasterize(rows [][]Span, cellW, cellH int) (*image.NRGBA, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("export: rasterize: invalid cell size %dx%d", cellW, cellH)
	}
	regular, bold, err := fonts()
	if err != nil {
		return nil, fmt.Errorf("export: parse font: %w", err)
	}

	// The em box is sized to the cell height; Go Mono's advance is 0.6em so
	// glyphs also fit the width on the usual 1:2 cells.
	size := min(float64(cellH)*0.8, float64(cellW)/0.6)
	opts := &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull}
	regularFace, err := opentype.NewFace(regular, opts)
	if err != nil {
		return nil, fmt.Errorf("export: new face: %w", err)
	}
	defer regularFace.Close()
	boldFace, err := opentype.NewFace(bold, opts)
	if err != nil {
		return nil, fmt.Errorf("export: new bold face: %w", err)
	}
	defer boldFace.Close()

	cols := 0
	for _, row := range rows {
		w := 0
		for _, sp := range row {
			w += ansi.StringWidth(sp.Text)
		}
		cols = max(cols, w)
	}
	width := (cols + 2*marginCols) * cellW
	height := (len(rows) + 2*marginRows) * cellH

	layer := image.NewNRGBA(image.Rect(0, 0, width, height))
	m := regularFace.Metrics()
	glyphH := (m.Ascent + m.Descent).Ceil()
	baselineOff := (cellH-glyphH)/2 + m.Ascent.Ceil()

	d := &font.Drawer{Dst: layer}
	for r, row := range rows {
		col := marginCols
		baseline := (r+marginRows)*cellH + baselineOff
		for _, sp := range row {
			d.Src = image.NewUniform(spanColor(sp.Color))
			d.Face = regularFace
			if sp.Bold {
				d.Face = boldFace
			}
			for _, ch := range sp.Text {
				w := ansi.StringWidth(string(ch))
				if w == 0 {
					continue
				}
				if ch != ' ' {
					d.Dot = fixed.P(col*cellW, baseline)
					d.DrawString(string(ch))
				}
				col += w
			}
		}
	}

	backdrop := imaging.New(width, height, color.NRGBA{A: 0xff})
	return imaging.Overlay(backdrop, layer, image.Pt(0, 0), 1.0), nil
}

func spanColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.White
	}
	return c.Clamped()
}
