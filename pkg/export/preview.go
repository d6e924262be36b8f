package export

import (
	"fmt"
	"image"
	"strings"

	"github.com/blacktop/go-termimg"
	"github.com/disintegration/imaging"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/terminal"
)

// Preview renders img inline for the given protocol, fitted within
// maxCols x maxRows cells. ProtocolNone yields an empty string.
func Preview(img image.Image, proto terminal.Protocol, size terminal.Size, maxCols, maxRows int) (string, error) {
	if img == nil {
		return "", fmt.Errorf("export: preview: nil image")
	}
	b := img.Bounds()
	cols, rows := terminal.FitCells(b.Dx(), b.Dy(), size.CellW, size.CellH, maxCols, maxRows)

	switch proto {
	case terminal.ProtocolNone:
		return "", nil
	case terminal.ProtocolKitty:
		return termimgRender(img, termimg.Kitty, cols, rows)
	case terminal.ProtocolITerm2:
		return termimgRender(img, termimg.ITerm2, cols, rows)
	case terminal.ProtocolSixel:
		return termimgRender(img, termimg.Sixel, cols, rows)
	default:
		return halfblocks(imaging.Fit(img, cols, rows*2, imaging.Lanczos)), nil
	}
}

func termimgRender(img image.Image, proto termimg.Protocol, cols, rows int) (string, error) {
	ti := termimg.New(img)
	if ti == nil {
		return "", fmt.Errorf("export: preview: go-termimg rejected image")
	}
	ti.Protocol(proto).Size(cols, rows).Scale(termimg.ScaleFit)
	out, err := ti.Render()
	if err != nil {
		return "", fmt.Errorf("export: preview: %w", err)
	}
	return out, nil
}

// halfblocks draws two pixel rows per cell with the upper half block: the
// top pixel is the foreground colour and the bottom pixel the background.
func halfblocks(img *image.NRGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	sb.Grow(b.Dx() * (b.Dy()/2 + 1) * 40)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteString("\x1b[0m\n")
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.NRGBAAt(x, y)
			if y+1 >= b.Max.Y {
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m▀", top.R, top.G, top.B)
				continue
			}
			bot := img.NRGBAAt(x, y+1)
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bot.R, bot.G, bot.B)
		}
	}
	sb.WriteString("\x1b[0m")
	return sb.String()
}
