// Package cmd holds the lc-wrapped command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/app"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/audio"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/config"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/export"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/share"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/terminal"
)

var (
	cfgFile   string
	apiURL    string
	payload   string
	themeFile string
	motion    string
	noAudio   bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "lc-wrapped [username]",
	Short: "Your LeetCode year in review, in the terminal",
	Long: `lc-wrapped fetches a year of LeetCode statistics and presents them as a
full-screen sequence of slides over an animated particle field, with an
ambient soundtrack, a persisted dark/light theme and a shareable summary
image.

Give a username to skip the landing screen.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPresentation,
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultPath()+")")
	f.StringVar(&apiURL, "api-url", "", "statistics backend origin")
	f.StringVar(&payload, "payload", "", "serve the payload from a JSON or YAML file")
	f.StringVar(&themeFile, "theme-file", "", "TOML palette overrides")
	f.StringVar(&motion, "motion", "", "motion preset: "+strings.Join(config.MotionPresets(), ", "))
	f.BoolVar(&noAudio, "no-audio", false, "disable the soundtrack")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig reads the config file and applies the command-line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if payload != "" {
		cfg.API.PayloadFile = payload
	}
	if themeFile != "" {
		cfg.Theme.PaletteFile = themeFile
	}
	if motion != "" {
		cfg.SetMotion(motion)
	}
	if noAudio {
		cfg.Audio.Enabled = false
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPresentation(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a terminal; use `lc-wrapped export` for headless runs")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal: logs go to the file only.
	logger, closeLog, err := openLog(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := newThemeStore(cfg, logger)
	if err != nil {
		return err
	}
	caps := terminal.Probe(cfg.Export.Preview)
	logger.Info("starting", "version", version, "terminal", caps.Term, "cols", caps.Size.Cols,
		"rows", caps.Size.Rows, "truecolor", caps.TrueColor, "ssh", caps.SSH)

	states := make(chan audio.State, 16)
	ctrl := newAudio(cfg, logger, app.AudioNotifier(states))

	var user string
	if len(args) == 1 {
		user = args[0]
	}
	model := app.New(app.Options{
		Config:      cfg,
		Fetcher:     newFetcher(cfg, logger),
		Theme:       store,
		Audio:       ctrl,
		AudioStates: states,
		Exporter: export.New(export.Options{
			Dir:    cfg.Export.Dir,
			Scale:  cfg.Export.Scale,
			CellW:  caps.Size.CellW,
			CellH:  caps.Size.CellH,
			Logger: logger,
		}),
		Sharer:   share.NewClipboard(os.Stdout),
		Logger:   logger,
		Username: user,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		m.Close()
	} else {
		model.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("exited")
	return nil
}
