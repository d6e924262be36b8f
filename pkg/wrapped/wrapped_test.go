package wrapped

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func alicePayload() *Payload {
	return &Payload{
		User:    "alice",
		Persona: "Consistent Grinder",
		Highlights: []string{
			"Longest streak: 42 days",
			"Solver type: Consistent Grinder",
			"Burst days: 7",
		},
		Stats: Stats{
			LongestStreak:       42,
			BurstDays:           7,
			AverageSolvesPerDay: 2.4,
			SolveVariance:       3.1,
			TotalSolves:         512,
			TotalAttempts:       640,
			Accuracy:            80,
			ActiveDays:          210,
			SolverPersona:       "Consistent Grinder",
			PeakDay:             &Peak{Label: "2024-03-14", Count: 19},
			PeakMonth:           Peak{Label: "March 2024", Count: 120},
			WeekdayVsWeekend:    WeekdayWeekend{Weekday: 400, Weekend: 240},
			ContestStats: &ContestStats{
				Rating:                1834.62,
				GlobalRanking:         20456,
				TopPercentage:         8.5,
				AttendedContestsCount: 14,
				Badge:                 &Badge{Name: "Knight"},
			},
			TopicStats: []TopicStat{
				{TagSlug: "array", TagName: "Array", ProblemsSolved: 210},
				{TagSlug: "dynamic-programming", TagName: "Dynamic Programming", ProblemsSolved: 95},
				{TagSlug: "graph", TagName: "Graph", ProblemsSolved: 41},
			},
			LanguageStats: []LanguageStat{
				{LanguageName: "Go", ProblemsSolved: 300},
				{LanguageName: "Python3", ProblemsSolved: 180},
			},
		},
	}
}

func serveFile(t *testing.T, status int, path string) *httptest.Server {
	t.Helper()
	var body []byte
	if path != "" {
		var err error
		body, err = os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
	}
	return serveBody(t, status, string(body))
}

func serveBody(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		data, _ := os.ReadFile(filepath.Join("testdata", "alice.json"))
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, nil)
	got, err := c.Fetch(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotPath != "/leetcode/wrapped/alice" {
		t.Errorf("path = %q", gotPath)
	}
	if diff := cmp.Diff(alicePayload(), got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestClientEscapesUsername(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _ = NewClient(srv.URL, time.Second, nil).Fetch(context.Background(), "a b/c")
	if gotPath != "/leetcode/wrapped/a%20b%2Fc" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"detail", 404, `{"detail":"User not found"}`, "User not found"},
		{"no detail", 500, `Internal Server Error`, GenericErrorMessage},
		{"empty detail", 502, `{"detail":""}`, GenericErrorMessage},
		{"validation list", 422, `{"detail":[{"msg":"bad"}]}`, GenericErrorMessage},
		{"malformed success", 200, `{"user":`, GenericErrorMessage},
		{"incomplete success", 200, `{"stats":{}}`, GenericErrorMessage},
		{"wrong shape", 200, `{"user":"a","persona":"p","stats":{"peak_month":"March"}}`, GenericErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveBody(t, tt.status, tt.body)
			_, err := NewClient(srv.URL, time.Second, nil).Fetch(context.Background(), "alice")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := Message(err); got != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	srv := serveBody(t, 200, "{}")
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, nil).Fetch(context.Background(), "alice")
	if err == nil {
		t.Fatal("expected error")
	}
	if Message(err) != GenericErrorMessage {
		t.Errorf("Message = %q", Message(err))
	}
}

func TestClientAPIErrorStatus(t *testing.T) {
	srv := serveFile(t, 404, "")
	_, err := NewClient(srv.URL, time.Second, nil).Fetch(context.Background(), "ghost")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("err = %v, want APIError 404", err)
	}
}

func TestFileSourceJSON(t *testing.T) {
	got, err := FileSource{Path: filepath.Join("testdata", "alice.json")}.Fetch(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if diff := cmp.Diff(alicePayload(), got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSourceYAML(t *testing.T) {
	got, err := FileSource{Path: filepath.Join("testdata", "bob.yaml")}.Fetch(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.User != "bob" {
		t.Errorf("user = %q, want filled from username", got.User)
	}
	if got.Stats.ContestStats != nil {
		t.Errorf("contest stats = %+v, want nil", got.Stats.ContestStats)
	}
	if got.Stats.ContestStats.Ranked() {
		t.Error("nil contest stats reported as ranked")
	}
	want := Peak{Label: "July 2024", Count: 40}
	if diff := cmp.Diff(want, got.Stats.PeakMonth); diff != "" {
		t.Errorf("peak month (-want +got):\n%s", diff)
	}
	if len(got.Stats.LanguageStats) != 1 || got.Stats.LanguageStats[0].LanguageName != "C++" {
		t.Errorf("languages = %+v", got.Stats.LanguageStats)
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Fetch(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if Message(err) != GenericErrorMessage {
		t.Errorf("Message = %q", Message(err))
	}
}

func TestFileSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileSource{Path: filepath.Join("testdata", "alice.json")}.Fetch(ctx, "alice")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPeakCodec(t *testing.T) {
	var p Peak
	if err := p.UnmarshalJSON([]byte(`["N/A", 0]`)); err != nil || p.Label != "N/A" || p.Count != 0 {
		t.Errorf("decode N/A: %+v %v", p, err)
	}
	if err := p.UnmarshalJSON([]byte(`["March 2024"]`)); err == nil {
		t.Error("expected error for one-element peak")
	}
	out, err := Peak{Label: "May 2024", Count: 7}.MarshalJSON()
	if err != nil || string(out) != `["May 2024",7]` {
		t.Errorf("encode = %s %v", out, err)
	}
}

func TestContestRanked(t *testing.T) {
	tests := []struct {
		name string
		c    *ContestStats
		want bool
	}{
		{"nil", nil, false},
		{"zero contests", &ContestStats{Rating: 1500}, false},
		{"ranked", &ContestStats{AttendedContestsCount: 1}, true},
	}
	for _, tt := range tests {
		if got := tt.c.Ranked(); got != tt.want {
			t.Errorf("%s: Ranked() = %v", tt.name, got)
		}
	}
}
