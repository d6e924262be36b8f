package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/audio"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/config"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/theme"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// openLog opens the log file. With toStderr the log is mirrored on stderr,
// for commands that do not take over the screen.
func openLog(cfg *config.Config, toStderr bool) (*slog.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	if toStderr {
		w = io.MultiWriter(os.Stderr, w)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	return logger, closeFn, nil
}

// newThemeStore builds the preference store and applies the palette file.
func newThemeStore(cfg *config.Config, logger *slog.Logger) (*theme.Store, error) {
	var storage theme.Storage = theme.NewMemoryStorage()
	if cfg.Theme.Persist && cfg.Theme.StateDir != "" {
		storage = theme.NewFileStorage(cfg.Theme.StateDir)
	}
	store := theme.NewStore(storage, logger)
	if cfg.Theme.PaletteFile != "" {
		p, err := theme.LoadPalettesFile(cfg.Theme.PaletteFile)
		if err != nil {
			return nil, err
		}
		store.SetPalettes(p)
	}
	return store, nil
}

// newFetcher picks the payload file when one is configured, the backend
// otherwise.
func newFetcher(cfg *config.Config, logger *slog.Logger) wrapped.Fetcher {
	if cfg.API.PayloadFile != "" {
		logger.Info("serving payload from file", "path", cfg.API.PayloadFile)
		return wrapped.FileSource{Path: cfg.API.PayloadFile}
	}
	return wrapped.NewClient(cfg.API.BaseURL, cfg.API.Timeout.Duration, logger)
}

// newAudio returns nil when audio is off or the track is missing.
func newAudio(cfg *config.Config, logger *slog.Logger, notify func(audio.State)) *audio.Controller {
	if !cfg.Audio.Enabled {
		return nil
	}
	if _, err := os.Stat(cfg.Audio.Track); err != nil {
		logger.Info("audio disabled: track unavailable", "track", cfg.Audio.Track, "error", err)
		return nil
	}
	return audio.NewController(audio.NewEbitenBackend(cfg.Audio.Track, cfg.Audio.SampleRate), audio.Options{
		Volume:     cfg.Audio.Volume,
		RetryDelay: cfg.Audio.RetryDelay.Duration,
		Logger:     logger,
		Notify:     notify,
	})
}
