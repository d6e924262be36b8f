package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/anim"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/audio"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/cards"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/config"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/export"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/particles"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/share"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/slides"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/theme"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

// DefaultNoticeTTL is how long a share or export notice stays up.
const DefaultNoticeTTL = 4 * time.Second

// Options wires the root model. Fetcher is required; every other field has
// a usable zero value.
type Options struct {
	Config  *config.Config
	Fetcher wrapped.Fetcher
	Theme   *theme.Store

	// Audio is nil when audio is disabled. AudioStates receives the
	// controller's notifications, see AudioNotifier.
	Audio       *audio.Controller
	AudioStates <-chan audio.State

	Exporter *export.Exporter
	Sharer   share.Sharer
	Logger   *slog.Logger
	Rand     *rand.Rand

	// Username, when set, is submitted as soon as the program starts.
	Username string

	NoticeTTL time.Duration
}

// runtime holds what the theme subscriber and teardown reach from outside
// the update loop's copy of Model.
type runtime struct {
	sim    *particles.Simulator
	deck   *cards.Deck
	nav    *slides.Navigator
	cancel context.CancelFunc
	unsub  func()
	done   chan struct{}
	closed bool
}

// Model is the root bubbletea model.
type Model struct {
	opts   Options
	cfg    *config.Config
	theme  *theme.Store
	logger *slog.Logger
	keys   KeyMap
	zones  *zone.Manager
	rt     *runtime

	state  ViewState
	width  int
	height int

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	seq       int
	user      string
	payload   *wrapped.Payload
	errMsg    string
	lastSlide int

	audioState audio.State
	notice     string
	noticeSeq  int
	quitting   bool
}

// New builds the root model in the landing state.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	store := opts.Theme
	if store == nil {
		store = theme.NewStore(nil, logger)
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = DefaultNoticeTTL
	}

	in := textinput.New()
	in.Placeholder = "Enter LeetCode Username"
	in.Prompt = "› "
	in.CharLimit = 64
	in.Width = 32
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	rt := &runtime{done: make(chan struct{})}
	pal := store.Palette()
	if cfg.Particles.Enabled {
		rt.sim = particles.NewSimulator(cfg.Particles.FPS, cfg.Particles.Density, rng, pal.Particle, pal.Background)
	}
	rt.unsub = store.Subscribe(func(p theme.Preference) {
		pal := store.PaletteFor(p)
		if rt.sim != nil {
			rt.sim.SetColors(pal.Particle, pal.Background)
		}
		if rt.deck != nil {
			rt.deck.SetPalette(pal)
		}
	})

	m := Model{
		opts:      opts,
		cfg:       cfg,
		theme:     store,
		logger:    logger,
		keys:      DefaultKeyMap(),
		zones:     zone.New(),
		rt:        rt,
		state:     StateLanding,
		input:     in,
		spinner:   sp,
		help:      help.New(),
		lastSlide: -1,
	}
	if opts.Audio != nil {
		m.audioState = opts.Audio.State()
	}
	return m
}

// audioStartedEvent reports the state right after the autoplay attempt.
type audioStartedEvent struct {
	State audio.State
}

// Init starts the background layer and the audio, and submits a preset
// username.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.rt.sim != nil {
		cmds = append(cmds, m.rt.sim.Start())
	}
	if c := m.opts.Audio; c != nil {
		cmds = append(cmds, func() tea.Msg {
			c.Start()
			return audioStartedEvent{State: c.State()}
		})
		cmds = append(cmds, waitAudioCmd(m.opts.AudioStates, m.rt.done))
	}
	if u := strings.TrimSpace(m.opts.Username); u != "" {
		cmds = append(cmds, func() tea.Msg { return autoSubmitEvent{User: u} })
	}
	return tea.Batch(cmds...)
}

// State is the active view.
func (m Model) State() ViewState { return m.state }

// ErrorMessage is the text shown in the error view.
func (m Model) ErrorMessage() string { return m.errMsg }

// Payload is the payload being presented, nil outside the wrapped view.
func (m Model) Payload() *wrapped.Payload { return m.payload }

// Navigator is the slide navigator, nil outside the wrapped view.
func (m Model) Navigator() *slides.Navigator { return m.rt.nav }

// Notice is the transient message in the status bar.
func (m Model) Notice() string { return m.notice }

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.rt.sim != nil {
			m.rt.sim.Resize(msg.Width, m.bodyHeight())
		}
		if m.rt.nav != nil {
			m.rt.nav.SetSize(msg.Width, m.bodyHeight())
			cmd := m.syncSlide()
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		// The music toggle is a play attempt of its own.
		if m.state == StateLanding || !key.Matches(msg, m.keys.Music) {
			m.interact()
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && !m.inZone(zoneMusic, msg) {
			m.interact()
		}
		return m.handleMouse(msg)

	case anim.FrameMsg:
		var cmds []tea.Cmd
		if m.rt.sim != nil {
			cmds = append(cmds, m.rt.sim.Update(msg))
		}
		if m.rt.nav != nil {
			cmds = append(cmds, m.rt.nav.Update(msg))
		}
		if m.rt.deck != nil {
			cmds = append(cmds, m.rt.deck.Update(msg))
		}
		cmds = append(cmds, m.syncSlide())
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case autoSubmitEvent:
		if m.state != StateLanding {
			return m, nil
		}
		m.input.SetValue(msg.User)
		return m.submit(msg.User)

	case FetchDoneEvent:
		return m.fetchDone(msg)

	case audioStartedEvent:
		m.applyAudio(msg.State)
		return m, nil

	case audio.StateMsg:
		m.applyAudio(msg.State)
		return m, waitAudioCmd(m.opts.AudioStates, m.rt.done)

	case export.DoneMsg:
		return m.exportDone(msg)

	case share.DoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, share.ErrUnsupported) {
			m.logger.Warn("share failed", "error", msg.Err)
		}
		return m.setNotice(msg.Notice())

	case NoticeExpiredEvent:
		if msg.Seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	if m.state == StateLanding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// interact forwards a user gesture to the audio autoplay fallback.
func (m *Model) interact() {
	if m.opts.Audio != nil {
		m.opts.Audio.Interact()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || (m.state != StateLanding && key.Matches(msg, m.keys.Quit)) {
		m.Close()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateLanding:
		if key.Matches(msg, m.keys.Submit) {
			return m.submit(m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case StateError:
		if key.Matches(msg, m.keys.Retry) {
			return m.toLanding(false)
		}

	case StateWrapped:
		if model, cmd, ok := m.handleSlideKey(msg); ok {
			return model, cmd
		}
	}
	return m.handleGlobalKey(msg)
}

// handleGlobalKey handles the controls available outside the text input.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Theme):
		m.theme.Toggle()
	case key.Matches(msg, m.keys.Music):
		return m.toggleMusic()
	case key.Matches(msg, m.keys.VolUp):
		m.adjustAudio(func(c *audio.Controller) { c.AdjustVolume(0.1) })
	case key.Matches(msg, m.keys.VolDn):
		m.adjustAudio(func(c *audio.Controller) { c.AdjustVolume(-0.1) })
	case key.Matches(msg, m.keys.Mute):
		m.adjustAudio(func(c *audio.Controller) { c.ToggleMute() })
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleSlideKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	nav := m.rt.nav
	step := max(m.cfg.Slides.ScrollStep, 1)
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Restart):
		model, cmd := m.toLanding(true)
		return model, cmd, true
	case key.Matches(msg, m.keys.Up):
		nav.ScrollBy(-step)
	case key.Matches(msg, m.keys.Down):
		nav.ScrollBy(step)
	case key.Matches(msg, m.keys.NextPage):
		cmd = nav.Next()
	case key.Matches(msg, m.keys.PrevPage):
		cmd = nav.Prev()
	case key.Matches(msg, m.keys.First):
		cmd = nav.ScrollToSlide(0)
	case key.Matches(msg, m.keys.Last):
		cmd = nav.ScrollToSlide(nav.Total() - 1)
	case key.Matches(msg, m.keys.Jump):
		i, _ := jumpIndex(msg.String())
		cmd = nav.ScrollToSlide(i)
	case key.Matches(msg, m.keys.Share):
		return m, share.Cmd(m.opts.Sharer, share.ForPayload(m.payload)), true
	case key.Matches(msg, m.keys.Export):
		model, cmd := m.startExport()
		return model, cmd, true
	default:
		return m, nil, false
	}
	sync := m.syncSlide()
	return m, tea.Batch(cmd, sync), true
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	nav := m.rt.nav
	if nav != nil && m.state == StateWrapped {
		step := max(m.cfg.Slides.ScrollStep, 1)
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			nav.ScrollBy(-step)
			cmd := m.syncSlide()
			return m, cmd
		case tea.MouseButtonWheelDown:
			nav.ScrollBy(step)
			cmd := m.syncSlide()
			return m, cmd
		}
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch {
	case m.inZone(zoneTheme, msg):
		m.theme.Toggle()
		return m, nil
	case m.inZone(zoneMusic, msg):
		return m.toggleMusic()
	case m.inZone(zoneMute, msg):
		m.adjustAudio(func(c *audio.Controller) { c.ToggleMute() })
		return m, nil
	}
	if nav == nil || m.state != StateWrapped {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case nav.ShowPrev() && m.inZone(zonePrev, msg):
		cmd = nav.Prev()
	case nav.ShowNext() && m.inZone(zoneNext, msg):
		cmd = nav.Next()
	case m.inZone(zoneShare, msg):
		return m, share.Cmd(m.opts.Sharer, share.ForPayload(m.payload))
	case m.inZone(zoneSave, msg):
		return m.startExport()
	default:
		for i := 0; i < nav.Total(); i++ {
			if m.inZone(dotZone(i), msg) {
				cmd = nav.ScrollToSlide(i)
				break
			}
		}
	}
	sync := m.syncSlide()
	return m, tea.Batch(cmd, sync)
}

func (m Model) inZone(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

// submit starts a fetch for raw, trimmed. Empty input is ignored.
func (m Model) submit(raw string) (tea.Model, tea.Cmd) {
	user := strings.TrimSpace(raw)
	if user == "" {
		return m, nil
	}
	if m.rt.cancel != nil {
		m.rt.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.rt.cancel = cancel

	m.seq++
	m.user = user
	m.errMsg = ""
	m.state = StateLoading
	m.input.Blur()
	m.logger.Info("fetching wrapped payload", "user", user, "seq", m.seq)

	delay := m.cfg.API.LoadingDelay.Duration
	return m, tea.Batch(
		FetchCmd(ctx, m.seq, m.opts.Fetcher, user, delay),
		m.spinner.Tick,
	)
}

// fetchDone applies a fetch result. Only a failure leads to the error view.
func (m Model) fetchDone(msg FetchDoneEvent) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq || m.state != StateLoading {
		m.logger.Debug("dropping stale fetch result", "seq", msg.Seq, "current", m.seq)
		return m, nil
	}
	if m.rt.cancel != nil {
		m.rt.cancel()
		m.rt.cancel = nil
	}

	if msg.Err == nil && msg.Payload == nil {
		msg.Err = wrapped.ErrIncomplete
	}
	if msg.Err != nil {
		m.logger.Warn("fetch failed", "user", msg.User, "error", msg.Err)
		m.state = StateError
		m.errMsg = wrapped.Message(msg.Err)
		return m, nil
	}

	m.payload = msg.Payload
	deck := cards.NewDeck(msg.Payload, m.theme.Palette(),
		cards.WithReveal(m.cfg.Slides.Smooth, m.cfg.Slides.FPS, 0))
	nav := slides.New(cards.Total, deck.Render,
		slides.WithFPS(m.cfg.Slides.FPS),
		slides.WithSmooth(m.cfg.Slides.Smooth))
	nav.SetSize(m.width, m.bodyHeight())
	m.rt.deck = deck
	m.rt.nav = nav
	m.lastSlide = -1
	m.state = StateWrapped
	m.logger.Info("presenting", "user", msg.Payload.User, "persona", msg.Payload.Persona)
	cmd := m.syncSlide()
	return m, cmd
}

// toLanding leaves the current view. A restart clears the input; retrying
// after an error keeps the name for editing. Audio and particles keep going.
func (m Model) toLanding(clear bool) (tea.Model, tea.Cmd) {
	if m.rt.cancel != nil {
		m.rt.cancel()
		m.rt.cancel = nil
	}
	m.stopSlides()
	m.seq++
	m.payload = nil
	m.errMsg = ""
	m.lastSlide = -1
	m.state = StateLanding
	if clear {
		m.input.Reset()
	}
	return m, m.input.Focus()
}

func (m *Model) stopSlides() {
	if m.rt.nav != nil {
		m.rt.nav.Stop()
		m.rt.nav = nil
	}
	if m.rt.deck != nil {
		m.rt.deck.Stop()
		m.rt.deck = nil
	}
}

// syncSlide starts the reveal of a slide that just became current.
func (m *Model) syncSlide() tea.Cmd {
	if m.rt.nav == nil || m.rt.deck == nil {
		return nil
	}
	cur := m.rt.nav.Current()
	if cur == m.lastSlide {
		return nil
	}
	m.lastSlide = cur
	return m.rt.deck.Begin(cur)
}

func (m Model) toggleMusic() (tea.Model, tea.Cmd) {
	c := m.opts.Audio
	if c == nil {
		return m.setNotice("Audio is off.")
	}
	if err := c.Toggle(); err != nil {
		m.logger.Warn("toggle playback", "error", err)
		m.applyAudio(c.State())
		return m.setNotice("Playback is unavailable.")
	}
	m.applyAudio(c.State())
	return m, nil
}

func (m *Model) adjustAudio(fn func(*audio.Controller)) {
	if m.opts.Audio == nil {
		return
	}
	fn(m.opts.Audio)
	m.applyAudio(m.opts.Audio.State())
}

// applyAudio shows st unless a newer state is already shown.
func (m *Model) applyAudio(st audio.State) {
	if st.Rev < m.audioState.Rev {
		return
	}
	m.audioState = st
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.opts.Exporter == nil || m.rt.deck == nil {
		return m.setNotice("Saving images is off.")
	}
	return m, m.opts.Exporter.Cmd(m.rt.deck.Summary(), m.payload.User)
}

func (m Model) exportDone(msg export.DoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err == nil:
		return m.setNotice("Saved " + msg.Result.Path)
	case errors.Is(msg.Err, export.ErrNotMounted):
		return m.setNotice("Open the summary slide to save your image.")
	default:
		m.logger.Warn("export failed", "error", msg.Err)
		return m.setNotice("Could not save the image.")
	}
}

func (m Model) setNotice(text string) (tea.Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = text
	return m, NoticeCmd(m.noticeSeq, m.opts.NoticeTTL)
}

// Close stops every loop and releases the audio device. It is safe to call
// more than once, and is called on quit.
func (m Model) Close() {
	rt := m.rt
	if rt.closed {
		return
	}
	rt.closed = true
	if rt.sim != nil {
		rt.sim.Stop()
	}
	if rt.nav != nil {
		rt.nav.Stop()
	}
	if rt.deck != nil {
		rt.deck.Stop()
	}
	if rt.cancel != nil {
		rt.cancel()
	}
	if rt.unsub != nil {
		rt.unsub()
	}
	if m.opts.Audio != nil {
		if err := m.opts.Audio.Close(); err != nil {
			m.logger.Debug("close audio", "error", err)
		}
	}
	close(rt.done)
}

// bodyHeight is the height left for slides under the status bar.
func (m Model) bodyHeight() int {
	return max(m.height-1, 0)
}
