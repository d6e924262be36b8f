package audio

import (
	"fmt"
	"os"
	"sync"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

// The ebiten audio context is process-wide and may be created only once.
var (
	sharedOnce sync.Once
	sharedCtx  *eaudio.Context
)

func sharedContext(sampleRate int) *eaudio.Context {
	sharedOnce.Do(func() {
		sharedCtx = eaudio.NewContext(sampleRate)
	})
	return sharedCtx
}

// EbitenBackend streams an MP3 file in an endless loop through the ebiten
// audio context. The file is opened and decoded on the first Play.
type EbitenBackend struct {
	path       string
	sampleRate int

	mu     sync.Mutex
	file   *os.File
	player *eaudio.Player
	volume float64
}

// NewEbitenBackend returns a backend for the MP3 at path.
func NewEbitenBackend(path string, sampleRate int) *EbitenBackend {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &EbitenBackend{path: path, sampleRate: sampleRate, volume: DefaultVolume}
}

// Play starts the loop. Until the output device is ready it reports
// ErrNotAllowed.
func (b *EbitenBackend) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := sharedContext(b.sampleRate)
	if !ctx.IsReady() {
		return ErrNotAllowed
	}
	if b.player == nil {
		if err := b.openLocked(ctx); err != nil {
			return err
		}
	}
	b.player.Play()
	return nil
}

func (b *EbitenBackend) openLocked(ctx *eaudio.Context) error {
	f, err := os.Open(b.path)
	if err != nil {
		return fmt.Errorf("audio: open track: %w", err)
	}
	stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("audio: decode track: %w", err)
	}
	loop := eaudio.NewInfiniteLoop(stream, stream.Length())
	player, err := ctx.NewPlayer(loop)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("audio: new player: %w", err)
	}
	player.SetVolume(b.volume)
	b.file = f
	b.player = player
	return nil
}

// Pause stops playback, keeping the position.
func (b *EbitenBackend) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		b.player.Pause()
	}
}

// SetVolume applies v now or when the player is created.
func (b *EbitenBackend) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = v
	if b.player != nil {
		b.player.SetVolume(v)
	}
}

// Close releases the player and the track file.
func (b *EbitenBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var err error
	if b.player != nil {
		err = b.player.Close()
		b.player = nil
	}
	if b.file != nil {
		_ = b.file.Close()
		b.file = nil
	}
	return err
}

// NopBackend never plays; it stands in when audio is disabled.
type NopBackend struct{}

func (NopBackend) Play() error       { return ErrNotAllowed }
func (NopBackend) Pause()            {}
func (NopBackend) SetVolume(float64) {}
func (NopBackend) Close() error      { return nil }
