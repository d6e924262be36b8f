// Package export renders the summary card to a PNG file.
//
// The summary is rasterised from its styled text spans rather than captured
// from the screen, so the image never contains the particle layer, the
// chrome, or neighbouring slides.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/fsutil"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/terminal"
)

// ErrNotMounted is returned when the summary region has not been rendered
// yet.
var ErrNotMounted = errors.New("export: summary not mounted")

// Region is the part of the presentation to export.
type Region interface {
	Mounted() bool
	Rows() [][]Span
}

// Options configures an Exporter. Zero cell sizes use the terminal
// defaults; Scale below 1 is treated as 1.
type Options struct {
	Dir    string
	Scale  int
	CellW  int
	CellH  int
	Logger *slog.Logger
}

// Result describes a written image.
type Result struct {
	Path   string
	Width  int
	Height int
	Image  image.Image
}

// DoneMsg reports the outcome of an export started with Cmd.
type DoneMsg struct {
	Result Result
	Err    error
}

// Exporter writes summary images into one directory.
type Exporter struct {
	opts   Options
	logger *slog.Logger
}

// New returns an Exporter.
func New(opts Options) *Exporter {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.CellW <= 0 {
		opts.CellW = terminal.DefaultCellW
	}
	if opts.CellH <= 0 {
		opts.CellH = terminal.DefaultCellH
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{opts: opts, logger: logger}
}

// FileName returns the download name for user. Characters outside
// [A-Za-z0-9._-] become '_'.
func FileName(user string) string {
	var b strings.Builder
	for _, r := range user {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := strings.Trim(b.String(), ".")
	if name == "" {
		name = "user"
	}
	return "leetcode-wrapped-" + name + ".png"
}

// Path returns where an export for user is written.
func (e *Exporter) Path(user string) string {
	return filepath.Join(e.opts.Dir, FileName(user))
}

// Export rasterises region and writes it, replacing any previous export for
// the same user.
func (e *Exporter) Export(ctx context.Context, region Region, user string) (Result, error) {
	rows, err := snapshot(region)
	if err != nil {
		return Result{}, err
	}
	return e.write(ctx, rows, user)
}

// Cmd snapshots region now and rasterises in the background. The snapshot
// is taken on the calling goroutine so the region is never read
// concurrently with rendering.
func (e *Exporter) Cmd(region Region, user string) tea.Cmd {
	rows, err := snapshot(region)
	if err != nil {
		return func() tea.Msg { return DoneMsg{Err: err} }
	}
	return func() tea.Msg {
		res, err := e.write(context.Background(), rows, user)
		return DoneMsg{Result: res, Err: err}
	}
}

func snapshot(region Region) ([][]Span, error) {
	if region == nil || !region.Mounted() {
		return nil, ErrNotMounted
	}
	rows := region.Rows()
	if len(rows) == 0 {
		return nil, ErrNotMounted
	}
	out := make([][]Span, len(rows))
	for i, row := range rows {
		out[i] = append([]Span(nil), row...)
	}
	return out, nil
}

func (e *Exporter) write(ctx context.Context, rows [][]Span, user string) (Result, error) {
	start := time.Now()
	img, err := Rasterize(rows, e.opts.CellW*e.opts.Scale, e.opts.CellH*e.opts.Scale)
	if err != nil {
		return Result{}, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return Result{}, fmt.Errorf("export: encode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	path := e.Path(user)
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return Result{}, fmt.Errorf("export: write: %w", err)
	}
	b := img.Bounds()
	e.logger.Info("export: wrote summary", "path", path,
		"width", b.Dx(), "height", b.Dy(), "elapsed", time.Since(start))
	return Result{Path: path, Width: b.Dx(), Height: b.Dy(), Image: img}, nil
}
