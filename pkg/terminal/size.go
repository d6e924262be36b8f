package terminal

import (
	"math"
	"os"
	"strconv"
)

// Fallback cell size in pixels when the terminal does not report one.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// Size is the terminal size in cells and, when known, pixels per cell.
type Size struct {
	Cols  int
	Rows  int
	CellW int
	CellH int
}

// GetSize queries stdout, then stderr, then /dev/tty, and finally falls back
// to COLUMNS/LINES (80x24). Cell pixel sizes default to 8x16.
func GetSize() Size {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd()} {
		if s, ok := winsize(fd); ok {
			return withDefaults(s)
		}
	}
	if f, err := os.Open("/dev/tty"); err == nil {
		s, ok := winsize(f.Fd())
		_ = f.Close()
		if ok {
			return withDefaults(s)
		}
	}
	return withDefaults(Size{Cols: envInt("COLUMNS", 80), Rows: envInt("LINES", 24)})
}

func withDefaults(s Size) Size {
	if s.CellW <= 0 {
		s.CellW = DefaultCellW
	}
	if s.CellH <= 0 {
		s.CellH = DefaultCellH
	}
	return s
}

func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// FitCells returns the cell grid that shows an imgW x imgH image at the
// largest size within maxCols x maxRows, keeping its aspect ratio. Images
// that already fit are shown at native size.
func FitCells(imgW, imgH, cellW, cellH, maxCols, maxRows int) (cols, rows int) {
	if imgW <= 0 || imgH <= 0 {
		return 1, 1
	}
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	maxCols = max(maxCols, 1)
	maxRows = max(maxRows, 1)

	nativeCols := int(math.Ceil(float64(imgW) / float64(cellW)))
	nativeRows := int(math.Ceil(float64(imgH) / float64(cellH)))
	if nativeCols <= maxCols && nativeRows <= maxRows {
		return nativeCols, nativeRows
	}

	aspect := float64(imgW) / float64(imgH)
	cols = maxCols
	rows = max(int(math.Round(float64(cols*cellW)/aspect/float64(cellH))), 1)
	if rows > maxRows {
		rows = maxRows
		cols = max(int(math.Round(float64(rows*cellH)*aspect/float64(cellW))), 1)
	}
	return min(cols, maxCols), min(rows, maxRows)
}
