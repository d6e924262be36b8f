// Package app is the presentation root: the bubbletea model that owns the
// view state machine and composes the particle layer, slides, theme, audio,
// share and export actions.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/wrapped"
)

// ViewState is the screen the root shows. Exactly one is active.
type ViewState int

const (
	StateLanding ViewState = iota
	StateLoading
	StateWrapped
	StateError
)

func (s ViewState) String() string {
	switch s {
	case StateLanding:
		return "landing"
	case StateLoading:
		return "loading"
	case StateWrapped:
		return "wrapped"
	case StateError:
		return "error"
	}
	return "unknown"
}

// FetchDoneEvent carries a fetch result back into the update loop. Seq ties
// it to the submit that started it; results from an abandoned submit are
// dropped.
type FetchDoneEvent struct {
	Seq       int
	User      string
	Payload   *wrapped.Payload
	Err       error
	Timestamp time.Time
}

// NoticeExpiredEvent clears the notice it was scheduled for.
type NoticeExpiredEvent struct {
	Seq int
}

// autoSubmitEvent submits a username given on the command line.
type autoSubmitEvent struct {
	User string
}
