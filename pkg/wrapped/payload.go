// Package wrapped defines the year-in-review statistics payload and the
// sources that produce it.
package wrapped

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Payload is the statistics document for one user. It is never modified after
// decoding.
type Payload struct {
	User       string   `json:"user" yaml:"user"`
	Persona    string   `json:"persona" yaml:"persona"`
	Highlights []string `json:"highlights" yaml:"highlights"`
	Stats      Stats    `json:"stats" yaml:"stats"`
}

// Stats holds the derived figures.
type Stats struct {
	LongestStreak       int            `json:"longest_streak" yaml:"longest_streak"`
	BurstDays           int            `json:"burst_days" yaml:"burst_days"`
	AverageSolvesPerDay float64        `json:"average_solves_per_day" yaml:"average_solves_per_day"`
	SolveVariance       float64        `json:"solve_variance" yaml:"solve_variance"`
	TotalSolves         int            `json:"total_solves" yaml:"total_solves"`
	TotalAttempts       int            `json:"total_attempts" yaml:"total_attempts"`
	Accuracy            float64        `json:"accuracy" yaml:"accuracy"`
	ActiveDays          int            `json:"active_days" yaml:"active_days"`
	SolverPersona       string         `json:"solver_persona,omitempty" yaml:"solver_persona,omitempty"`
	PeakDay             *Peak          `json:"peak_day,omitempty" yaml:"peak_day,omitempty"`
	PeakMonth           Peak           `json:"peak_month" yaml:"peak_month"`
	WeekdayVsWeekend    WeekdayWeekend `json:"weekday_vs_weekend" yaml:"weekday_vs_weekend"`
	ContestStats        *ContestStats  `json:"contest_stats" yaml:"contest_stats"`
	TopicStats          []TopicStat    `json:"topic_stats" yaml:"topic_stats"`
	LanguageStats       []LanguageStat `json:"language_stats" yaml:"language_stats"`
}

// Peak is a [label, count] pair, e.g. ["March 2024", 120].
type Peak struct {
	Label string
	Count int
}

// WeekdayWeekend splits solves by day type.
type WeekdayWeekend struct {
	Weekday int `json:"weekday" yaml:"weekday"`
	Weekend int `json:"weekend" yaml:"weekend"`
}

// ContestStats is nil when the user never entered a contest.
type ContestStats struct {
	Rating                float64 `json:"rating" yaml:"rating"`
	GlobalRanking         int     `json:"globalRanking" yaml:"globalRanking"`
	TopPercentage         float64 `json:"topPercentage" yaml:"topPercentage"`
	AttendedContestsCount int     `json:"attendedContestsCount" yaml:"attendedContestsCount"`
	Badge                 *Badge  `json:"badge,omitempty" yaml:"badge,omitempty"`
}

// Ranked reports whether contest figures should be shown.
func (c *ContestStats) Ranked() bool {
	return c != nil && c.AttendedContestsCount > 0
}

// Badge is the most recent contest badge.
type Badge struct {
	Name string `json:"name" yaml:"name"`
}

// TopicStat is one topic tag, sorted by solves.
type TopicStat struct {
	TagSlug        string `json:"tagSlug" yaml:"tagSlug"`
	TagName        string `json:"tagName" yaml:"tagName"`
	ProblemsSolved int    `json:"problemsSolved" yaml:"problemsSolved"`
}

// LanguageStat is one language, sorted by solves.
type LanguageStat struct {
	LanguageName   string `json:"languageName" yaml:"languageName"`
	ProblemsSolved int    `json:"problemsSolved" yaml:"problemsSolved"`
}

// ErrIncomplete is returned when a decoded payload lacks required fields.
var ErrIncomplete = errors.New("wrapped: incomplete payload")

// Check verifies presence only: a user name and a persona.
func (p *Payload) Check() error {
	if p == nil || p.User == "" || p.Persona == "" {
		return ErrIncomplete
	}
	return nil
}

// UnmarshalJSON decodes ["label", count].
func (p *Peak) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("peak: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("peak: want 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Label); err != nil {
		return fmt.Errorf("peak label: %w", err)
	}
	var n float64
	if err := json.Unmarshal(raw[1], &n); err != nil {
		return fmt.Errorf("peak count: %w", err)
	}
	p.Count = int(n)
	return nil
}

// MarshalJSON encodes ["label", count].
func (p Peak) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Label, p.Count})
}

// UnmarshalYAML decodes a two-element sequence.
func (p *Peak) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("peak: want a 2-element sequence at line %d", node.Line)
	}
	if err := node.Content[0].Decode(&p.Label); err != nil {
		return fmt.Errorf("peak label: %w", err)
	}
	var n float64
	if err := node.Content[1].Decode(&n); err != nil {
		return fmt.Errorf("peak count: %w", err)
	}
	p.Count = int(n)
	return nil
}

// MarshalYAML encodes a two-element sequence.
func (p Peak) MarshalYAML() (any, error) {
	return []any{p.Label, p.Count}, nil
}
