package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/cards"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/export"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/terminal"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

var (
	exportDir     string
	exportScale   int
	exportPreview string
)

var exportCmd = &cobra.Command{
	Use:   "export <username>",
	Short: "Write the summary image without starting the presentation",
	Long: `Fetch the payload for a user, render the summary card and write it as
leetcode-wrapped-<username>.png into the export directory. When stdout is a
terminal with a graphics protocol the image is previewed inline.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportDir, "out", "o", "", "output directory (default from config)")
	f.IntVar(&exportScale, "scale", 0, "pixel scale (default from config)")
	f.StringVar(&exportPreview, "preview", "", "inline preview: auto, kitty, iterm2, sixel, none")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if exportDir != "" {
		cfg.Export.Dir = exportDir
	}
	if exportScale > 0 {
		cfg.Export.Scale = exportScale
	}
	if exportPreview != "" {
		cfg.Export.Preview = exportPreview
	}

	logger, closeLog, err := openLog(cfg, verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := newThemeStore(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout.Duration+5*time.Second)
	defer cancel()

	p, err := newFetcher(cfg, logger).Fetch(ctx, args[0])
	if err != nil {
		logger.Debug("fetch failed", "error", err)
		return fmt.Errorf("fetch: %s", wrapped.Message(err))
	}

	deck := cards.NewDeck(p, store.Palette(), cards.WithReveal(false, cfg.Slides.FPS, 0))
	deck.Begin(cards.SlideSummary)
	caps := terminal.Probe(cfg.Export.Preview)
	deck.Render(cards.SlideSummary, caps.Size.Cols, caps.Size.Rows)

	ex := export.New(export.Options{
		Dir:    cfg.Export.Dir,
		Scale:  cfg.Export.Scale,
		CellW:  caps.Size.CellW,
		CellH:  caps.Size.CellH,
		Logger: logger,
	})
	res, err := ex.Export(ctx, deck.Summary(), p.User)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%dx%d)\n", res.Path, res.Width, res.Height)

	if !isatty.IsTerminal(os.Stdout.Fd()) || caps.Preview == terminal.ProtocolNone {
		return nil
	}
	img, err := export.Preview(res.Image, caps.Preview, caps.Size, caps.Size.Cols, max(caps.Size.Rows/2, 4))
	if err != nil {
		logger.Warn("preview failed", "protocol", caps.Preview, "error", err)
		return nil
	}
	fmt.Fprintln(out, img)
	return nil
}
