// Package theme holds the dark/light display preference, its persistence and
// the colour palettes derived from it.
package theme

import (
	"errors"
	"io"
	"log/slog"
	"sync"
)

// StorageKey is the key the preference is persisted under.
const StorageKey = "leetcode-wrapped-theme"

// Preference is the persisted display mode.
type Preference string

const (
	Dark  Preference = "dark"
	Light Preference = "light"
)

// ParsePreference accepts only the literal values "dark" and "light".
func ParsePreference(s string) (Preference, bool) {
	switch Preference(s) {
	case Dark:
		return Dark, true
	case Light:
		return Light, true
	}
	return "", false
}

// Opposite returns the other preference.
func (p Preference) Opposite() Preference {
	if p == Light {
		return Dark
	}
	return Light
}

// Store is the single owner of the display preference. It reads the stored
// value once at construction, writes through on every change and notifies
// subscribers after the write.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	logger   *slog.Logger
	pref     Preference
	firstRun bool
	palettes map[Preference]Palette
	subs     map[int]func(Preference)
	nextSub  int
}

// NewStore reads the preference from storage. An absent key is a first run;
// an unreadable or unrecognised value falls back to Dark. Storage errors are
// logged at debug level and never surface.
func NewStore(storage Storage, logger *slog.Logger) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{
		storage:  storage,
		logger:   logger,
		pref:     Dark,
		palettes: DefaultPalettes(),
		subs:     make(map[int]func(Preference)),
	}

	raw, err := storage.Get(StorageKey)
	switch {
	case errors.Is(err, ErrNotFound):
		s.firstRun = true
	case err != nil:
		logger.Debug("theme: read preference", "error", err)
	default:
		if p, ok := ParsePreference(raw); ok {
			s.pref = p
		} else {
			logger.Debug("theme: ignoring stored preference", "value", raw)
		}
	}
	return s
}

// Get returns the current preference.
func (s *Store) Get() Preference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pref
}

// FirstRun reports whether no preference was stored when the store was built.
func (s *Store) FirstRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstRun
}

// Toggle flips the preference, writes it to storage, then calls every
// subscriber with the new value before returning it.
func (s *Store) Toggle() Preference {
	s.mu.Lock()
	s.pref = s.pref.Opposite()
	next := s.pref
	if err := s.storage.Set(StorageKey, string(next)); err != nil {
		s.logger.Debug("theme: persist preference", "error", err)
	}
	subs := make([]func(Preference), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn for preference changes. Subscribers run in
// registration order. The returned func removes the subscription and is safe
// to call more than once.
func (s *Store) Subscribe(fn func(Preference)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// SetPalettes replaces the palettes, e.g. after loading a palette file.
func (s *Store) SetPalettes(p map[Preference]Palette) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := DefaultPalettes()
	for k, v := range p {
		merged[k] = v
	}
	s.palettes = merged
}

// Palette returns the palette for the current preference.
func (s *Store) Palette() Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palettes[s.pref]
}

// PaletteFor returns the palette for p regardless of the current preference.
func (s *Store) PaletteFor(p Preference) Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palettes[p]
}
