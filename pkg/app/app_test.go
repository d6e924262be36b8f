package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/audio"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/cards"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/config"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/export"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/share"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/theme"
	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

// fakeFetcher returns a fixed result and records the users asked for.
type fakeFetcher struct {
	mu      sync.Mutex
	payload *wrapped.Payload
	err     error
	users   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, user string) (*wrapped.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, user)
	if f.err != nil {
		return nil, f.err
	}
	p := *f.payload
	p.User = user
	return &p, nil
}

type fakeSharer struct {
	got []share.Message
	err error
}

func (s *fakeSharer) Share(m share.Message) error {
	s.got = append(s.got, m)
	return s.err
}

// fakeBackend refuses to play until allow is set.
type fakeBackend struct {
	mu     sync.Mutex
	allow  bool
	plays  int
	closed int
}

func (b *fakeBackend) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.plays++
	if !b.allow {
		return audio.ErrNotAllowed
	}
	return nil
}
func (b *fakeBackend) Pause()            {}
func (b *fakeBackend) SetVolume(float64) {}
func (b *fakeBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

func testPayload(contest *wrapped.ContestStats) *wrapped.Payload {
	return &wrapped.Payload{
		User:       "alice",
		Persona:    "Consistent Grinder",
		Highlights: []string{"Longest streak: 42 days"},
		Stats: wrapped.Stats{
			LongestStreak:       42,
			BurstDays:           7,
			AverageSolvesPerDay: 2.4,
			SolveVariance:       3.1,
			PeakMonth:           wrapped.Peak{Label: "March 2024", Count: 120},
			WeekdayVsWeekend:    wrapped.WeekdayWeekend{Weekday: 400, Weekend: 240},
			ContestStats:        contest,
			TopicStats:          []wrapped.TopicStat{{TagSlug: "array", TagName: "Array", ProblemsSolved: 210}},
			LanguageStats:       []wrapped.LanguageStat{{LanguageName: "Go", ProblemsSolved: 300}},
		},
	}
}

// testConfig disables every timed effect so updates are deterministic.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.API.LoadingDelay = config.Duration{}
	cfg.Particles.Enabled = false
	cfg.Slides.Smooth = false
	return cfg
}

func newTestModel(t *testing.T, f wrapped.Fetcher, mutate ...func(*Options)) Model {
	t.Helper()
	opts := Options{
		Config:    testConfig(),
		Fetcher:   f,
		Theme:     theme.NewStore(theme.NewMemoryStorage(), nil),
		NoticeTTL: time.Millisecond,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	m := New(opts)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 41})
	t.Cleanup(m.Close)
	return m
}

// helper to send a message through Update and return the updated model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = update(m, keyRunes(string(r)))
	}
	return m
}

// submit types user, presses enter and delivers the fetch result.
func submit(t *testing.T, m Model, user string) Model {
	t.Helper()
	m = typeText(m, user)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateLoading {
		t.Fatalf("state after submit = %v, want loading", m.State())
	}
	var done *FetchDoneEvent
	for _, msg := range collect(cmd) {
		if ev, ok := msg.(FetchDoneEvent); ok {
			done = &ev
		}
	}
	if done == nil {
		t.Fatal("submit did not start a fetch")
	}
	m, _ = update(m, *done)
	return m
}

// plain strips styling and turns the opaque spaces back into spaces.
func plain(s string) string {
	return strings.ReplaceAll(ansi.Strip(s), "\u00a0", " ")
}

func statusLine(m Model) string {
	lines := strings.Split(plain(m.View()), "\n")
	return lines[len(lines)-1]
}

func TestSubmitShowsWrapped(t *testing.T) {
	f := &fakeFetcher{payload: testPayload(nil)}
	m := newTestModel(t, f)
	m = submit(t, m, "alice")

	if m.State() != StateWrapped {
		t.Fatalf("state = %v, want wrapped", m.State())
	}
	if m.Payload() == nil || m.Payload().User != "alice" {
		t.Fatalf("payload = %+v", m.Payload())
	}
	if len(f.users) != 1 || f.users[0] != "alice" {
		t.Errorf("fetched %v", f.users)
	}
	if m.Navigator().Current() != 0 || m.Navigator().Height() != 40 {
		t.Errorf("navigator at %d height %d", m.Navigator().Current(), m.Navigator().Height())
	}
}

func TestSubmitTrimsAndIgnoresBlank(t *testing.T) {
	f := &fakeFetcher{payload: testPayload(nil)}
	m := newTestModel(t, f)

	m = typeText(m, "   ")
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateLanding || cmd != nil {
		t.Fatalf("blank submit: state %v cmd %v", m.State(), cmd != nil)
	}

	m = submit(t, m, " bob ")
	if m.Payload().User != "bob" {
		t.Errorf("user = %q, want trimmed", m.Payload().User)
	}
}

func TestFetchCmdHoldsLoadingDelay(t *testing.T) {
	f := &fakeFetcher{payload: testPayload(nil)}
	const delay = 40 * time.Millisecond

	start := time.Now()
	msg := FetchCmd(context.Background(), 3, f, "alice", delay)()
	elapsed := time.Since(start)

	ev, ok := msg.(FetchDoneEvent)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if elapsed < delay {
		t.Errorf("result after %v, want at least %v", elapsed, delay)
	}
	if ev.Seq != 3 || ev.Err != nil || ev.Payload.User != "alice" {
		t.Errorf("event = %+v", ev)
	}
}

func TestFetchCmdCancelEndsWait(t *testing.T) {
	f := &fakeFetcher{payload: testPayload(nil)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	FetchCmd(ctx, 1, f, "alice", time.Hour)()
	if time.Since(start) > time.Second {
		t.Error("cancelled fetch still waited out the delay")
	}
}

func TestLoadingViewBeforeResult(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)})
	m = typeText(m, "alice")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.State() != StateLoading {
		t.Fatalf("state = %v", m.State())
	}
	if !strings.Contains(plain(m.View()), "COMPILING YOUR YEAR") {
		t.Error("loading view missing caption")
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail", http.StatusNotFound, `{"detail":"user not found"}`, "user not found"},
		{"no detail", http.StatusInternalServerError, `{}`, wrapped.GenericErrorMessage},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, wrapped.GenericErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			m := newTestModel(t, wrapped.NewClient(srv.URL, time.Second, nil))
			m = submit(t, m, "ghost")
			if m.State() != StateError {
				t.Fatalf("state = %v, want error", m.State())
			}
			if m.ErrorMessage() != tt.want {
				t.Errorf("message = %q, want %q", m.ErrorMessage(), tt.want)
			}
			if !strings.Contains(plain(m.View()), "Something went wrong") {
				t.Error("error view not drawn")
			}
		})
	}
}

func TestNetworkErrorUsesGenericMessage(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{err: errors.New("dial tcp: connection refused")})
	m = submit(t, m, "alice")
	if m.State() != StateError || m.ErrorMessage() != wrapped.GenericErrorMessage {
		t.Errorf("state %v message %q", m.State(), m.ErrorMessage())
	}
}

func TestTryAgainReturnsToLanding(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{err: &wrapped.APIError{Status: 404, Detail: "user not found"}})
	m = submit(t, m, "alice")

	m, _ = update(m, keyRunes("r"))
	if m.State() != StateLanding {
		t.Fatalf("state = %v, want landing", m.State())
	}
	if m.input.Value() != "alice" {
		t.Errorf("input = %q, want the name kept for editing", m.input.Value())
	}
}

func TestStaleFetchDropped(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)})
	m = typeText(m, "alice")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(m, FetchDoneEvent{Seq: m.seq + 1, Err: errors.New("late")})
	if m.State() != StateLoading {
		t.Errorf("stale result changed state to %v", m.State())
	}
}

func TestSlideControlsAtEnds(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)})
	m = submit(t, m, "alice")

	tests := []struct {
		key        string
		slide      int
		prev, next bool
	}{
		{"1", 0, false, true},
		{"5", 4, true, true},
		{"0", 9, true, false},
		{"p", 8, true, true},
	}
	for _, tt := range tests {
		m, _ = update(m, keyRunes(tt.key))
		if got := m.Navigator().Current(); got != tt.slide {
			t.Fatalf("after %q: slide %d, want %d", tt.key, got, tt.slide)
		}
		line := statusLine(m)
		if strings.Contains(line, "‹") != tt.prev {
			t.Errorf("slide %d: prev shown = %v, want %v (%q)", tt.slide, !tt.prev, tt.prev, line)
		}
		if strings.Contains(line, "›") != tt.next {
			t.Errorf("slide %d: next shown = %v, want %v (%q)", tt.slide, !tt.next, tt.next, line)
		}
		if strings.Count(line, "●") != 1 || strings.Count(line, "○") != cards.Total-1 {
			t.Errorf("slide %d: dot rail %q", tt.slide, line)
		}
	}
}

func TestContestPlaceholderWhenUnranked(t *testing.T) {
	tests := []struct {
		name    string
		contest *wrapped.ContestStats
	}{
		{"zero attended", &wrapped.ContestStats{Rating: 1500, AttendedContestsCount: 0}},
		{"null", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &fakeFetcher{payload: testPayload(tt.contest)})
			m = submit(t, m, "alice")
			m, _ = update(m, keyRunes("4"))

			view := plain(m.View())
			if !strings.Contains(view, "Unranked") {
				t.Error("placeholder not shown")
			}
			if strings.Contains(view, "1,500") || strings.Contains(view, "1500") {
				t.Error("numeric rating shown for an unranked user")
			}
		})
	}
}

func TestScrollDerivesSlide(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)})
	m = submit(t, m, "alice")

	// 40-line slides, 3 lines per step: 7 steps is 21 lines, past half.
	for range 6 {
		m, _ = update(m, keyRunes("j"))
	}
	if m.Navigator().Current() != 0 {
		t.Fatalf("18 lines: slide %d, want 0", m.Navigator().Current())
	}
	m, _ = update(m, keyRunes("j"))
	if m.Navigator().Current() != 1 {
		t.Errorf("21 lines: slide %d, want 1", m.Navigator().Current())
	}
	m, _ = update(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.Navigator().Current() != 0 {
		t.Errorf("after wheel up: slide %d, want 0", m.Navigator().Current())
	}
}

func TestRestartKeepsAudio(t *testing.T) {
	b := &fakeBackend{allow: true}
	ctrl := audio.NewController(b, audio.Options{Volume: 0.5, RetryDelay: time.Hour})
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Audio = ctrl })
	ctrl.Start()
	m = submit(t, m, "alice")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != StateLanding || m.Navigator() != nil || m.Payload() != nil {
		t.Fatalf("restart: state %v nav %v", m.State(), m.Navigator() != nil)
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}
	if !ctrl.State().Playing || b.closed != 0 {
		t.Error("restart touched the audio")
	}
}

func TestInteractionStartsBlockedAudio(t *testing.T) {
	b := &fakeBackend{}
	ctrl := audio.NewController(b, audio.Options{Volume: 0.5, RetryDelay: time.Hour})
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Audio = ctrl })
	ctrl.Start()
	if ctrl.State().Phase != audio.PhaseBlocked {
		t.Fatalf("phase = %v", ctrl.State().Phase)
	}

	b.mu.Lock()
	b.allow = true
	b.mu.Unlock()
	m, _ = update(m, keyRunes("a"))
	if !ctrl.State().Playing {
		t.Fatal("key press did not start playback")
	}
	m, _ = update(m, keyRunes("b"))
	if b.plays != 2 {
		t.Errorf("plays = %d, want 2", b.plays)
	}
	if m.input.Value() != "ab" {
		t.Errorf("typing was swallowed: %q", m.input.Value())
	}
}

func TestAudioKeys(t *testing.T) {
	b := &fakeBackend{allow: true}
	ctrl := audio.NewController(b, audio.Options{Volume: 0.5, RetryDelay: time.Hour})
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Audio = ctrl })
	ctrl.Start()
	m = submit(t, m, "alice")

	m, _ = update(m, keyRunes("+"))
	if v := m.audioState.Volume; v < 0.59 || v > 0.61 {
		t.Errorf("volume = %v, want 0.6", v)
	}
	m, _ = update(m, keyRunes("x"))
	if !m.audioState.Muted || ctrl.EffectiveVolume() != 0 {
		t.Errorf("mute: %+v", m.audioState)
	}
	m, _ = update(m, keyRunes("m"))
	if m.audioState.Playing {
		t.Error("m did not pause")
	}
	if !strings.Contains(statusLine(m), "×") {
		t.Errorf("muted glyph missing: %q", statusLine(m))
	}
}

func TestMusicKeyWhileBlockedPlays(t *testing.T) {
	b := &fakeBackend{}
	ctrl := audio.NewController(b, audio.Options{Volume: 0.5, RetryDelay: time.Hour})
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Audio = ctrl })
	m = submit(t, m, "alice")
	ctrl.Start()
	if ctrl.State().Phase != audio.PhaseBlocked {
		t.Fatalf("phase = %v, want blocked", ctrl.State().Phase)
	}

	b.mu.Lock()
	b.allow = true
	b.mu.Unlock()
	m, _ = update(m, keyRunes("m"))
	if !ctrl.State().Playing || !m.audioState.Playing {
		t.Fatalf("m while blocked left audio off: %+v", ctrl.State())
	}
	if b.plays != 2 {
		t.Errorf("plays = %d, want 2", b.plays)
	}
}

func TestAudioNotifierKeepsNewest(t *testing.T) {
	ch := make(chan audio.State, 2)
	notify := AudioNotifier(ch)
	for rev := uint64(1); rev <= 5; rev++ {
		notify(audio.State{Rev: rev})
	}
	if len(ch) != 2 {
		t.Fatalf("buffered = %d, want 2", len(ch))
	}
	var last audio.State
	for len(ch) > 0 {
		last = <-ch
	}
	if last.Rev != 5 {
		t.Errorf("last rev = %d, want 5", last.Rev)
	}
}

func TestStaleAudioStateIgnored(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)})
	m, _ = update(m, audio.StateMsg{State: audio.State{Rev: 5, Volume: 0.3, Playing: true}})
	m, _ = update(m, audio.StateMsg{State: audio.State{Rev: 4, Volume: 0.9}})
	if m.audioState.Rev != 5 || m.audioState.Volume != 0.3 || !m.audioState.Playing {
		t.Errorf("stale state applied: %+v", m.audioState)
	}
	m, _ = update(m, audio.StateMsg{State: audio.State{Rev: 6, Volume: 0.4}})
	if m.audioState.Volume != 0.4 {
		t.Errorf("newer state dropped: %+v", m.audioState)
	}
}

func TestThemeToggleWritesThrough(t *testing.T) {
	storage := theme.NewMemoryStorage()
	store := theme.NewStore(storage, nil)
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Theme = store })
	m = submit(t, m, "alice")

	m, _ = update(m, keyRunes("t"))
	got, err := storage.Get(theme.StorageKey)
	if err != nil || got != "light" || store.Get() != theme.Light {
		t.Fatalf("stored %q (%v), in memory %q", got, err, store.Get())
	}
	m, _ = update(m, keyRunes("t"))
	if got, _ := storage.Get(theme.StorageKey); got != "dark" {
		t.Errorf("stored %q after second toggle", got)
	}
	if !strings.Contains(statusLine(m), "☾") {
		t.Error("theme glyph not dark")
	}
}

func TestThemeKeyTypesOnLanding(t *testing.T) {
	store := theme.NewStore(theme.NewMemoryStorage(), nil)
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Theme = store })
	m = typeText(m, "tom")
	if store.Get() != theme.Dark || m.input.Value() != "tom" {
		t.Errorf("theme %q input %q", store.Get(), m.input.Value())
	}
}

func TestShareNotice(t *testing.T) {
	s := &fakeSharer{}
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Sharer = s })
	m = submit(t, m, "alice")

	m, cmd := update(m, keyRunes("s"))
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("share produced %d messages", len(msgs))
	}
	m, cmd = update(m, msgs[0])
	if m.Notice() != share.CopiedNotice {
		t.Errorf("notice = %q", m.Notice())
	}
	if len(s.got) != 1 || !strings.Contains(s.got[0].Title, "alice") {
		t.Errorf("shared %+v", s.got)
	}

	// The notice expires on its own tick.
	for _, msg := range collect(cmd) {
		m, _ = update(m, msg)
	}
	if m.Notice() != "" {
		t.Errorf("notice still up: %q", m.Notice())
	}
}

func TestShareUnsupported(t *testing.T) {
	s := &fakeSharer{err: share.ErrUnsupported}
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Sharer = s })
	m = submit(t, m, "alice")
	m, cmd := update(m, keyRunes("s"))
	m, _ = update(m, collect(cmd)[0])
	if m.Notice() != share.UnsupportedNotice {
		t.Errorf("notice = %q", m.Notice())
	}
}

func TestNewerNoticeOutlivesOlderExpiry(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)})
	m, _ = update(m, share.DoneMsg{})
	first := m.noticeSeq
	m, _ = update(m, share.DoneMsg{Err: share.ErrUnsupported})
	m, _ = update(m, NoticeExpiredEvent{Seq: first})
	if m.Notice() != share.UnsupportedNotice {
		t.Errorf("notice = %q", m.Notice())
	}
}

func TestExportFromSummary(t *testing.T) {
	dir := t.TempDir()
	ex := export.New(export.Options{Dir: dir, Scale: 1})
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) { o.Exporter = ex })
	m = submit(t, m, "alice")

	m, cmd := update(m, keyRunes("e"))
	m, _ = update(m, collect(cmd)[0])
	if !strings.Contains(m.Notice(), "summary slide") {
		t.Errorf("notice before summary = %q", m.Notice())
	}

	m, _ = update(m, keyRunes("0"))
	_ = m.View()
	m, cmd = update(m, keyRunes("e"))
	m, _ = update(m, collect(cmd)[0])

	want := ex.Path("alice")
	if m.Notice() != "Saved "+want {
		t.Errorf("notice = %q", m.Notice())
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("export missing: %v", err)
	}
}

func TestQuitTearsDown(t *testing.T) {
	b := &fakeBackend{allow: true}
	ctrl := audio.NewController(b, audio.Options{Volume: 0.5, RetryDelay: time.Hour})
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) {
		o.Audio = ctrl
		o.Config.Particles.Enabled = true
	})
	ctrl.Start()
	m.rt.sim.Start()
	m = submit(t, m, "alice")

	m, cmd := update(m, keyRunes("q"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
	if m.rt.sim.Running() {
		t.Error("particles still running")
	}
	if b.closed != 1 || ctrl.State().Phase != audio.PhaseClosed {
		t.Errorf("audio not closed: %d %v", b.closed, ctrl.State().Phase)
	}
	m.Close()
	if b.closed != 1 {
		t.Error("second Close released the backend again")
	}
	if m.View() != "" {
		t.Error("view drawn after quit")
	}
}

func TestQuitKeyTypesOnLanding(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)})
	m, cmd := update(m, keyRunes("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q quit from the username field")
		}
	}
	if m.input.Value() != "q" {
		t.Errorf("input = %q", m.input.Value())
	}
}

func TestAutoSubmitUsername(t *testing.T) {
	f := &fakeFetcher{payload: testPayload(nil)}
	m := newTestModel(t, f, func(o *Options) { o.Username = " carol " })
	m, cmd := update(m, autoSubmitEvent{User: "carol"})
	if m.State() != StateLoading {
		t.Fatalf("state = %v", m.State())
	}
	for _, msg := range collect(cmd) {
		if ev, ok := msg.(FetchDoneEvent); ok {
			m, _ = update(m, ev)
		}
	}
	if m.State() != StateWrapped || m.Payload().User != "carol" {
		t.Errorf("state %v", m.State())
	}
}

func TestParticlesUnderLanding(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{payload: testPayload(nil)}, func(o *Options) {
		o.Config.Particles.Enabled = true
	})
	view := m.View()
	if got := strings.Count(view, "\n") + 1; got != 41 {
		t.Errorf("view has %d lines, want 41", got)
	}
	if !strings.Contains(plain(view), "WRAPPED") {
		t.Error("landing title missing")
	}
}

func TestJumpIndex(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{"9", 8, true},
		{"0", 9, true},
		{"a", 0, false},
		{"10", 0, false},
	}
	for _, tt := range tests {
		got, ok := jumpIndex(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("jumpIndex(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestViewStateString(t *testing.T) {
	if StateWrapped.String() != "wrapped" || ViewState(42).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
