package controller

import "errors"

// State is the lesson-loading status.
type State int

const (
	StateIdle    State = iota // No fetch started for the current inputs
	StateLoading              // A fetch is in flight
	StateReady                // A lesson is held
	StateFailed               // The last fetch failed; no lesson is held
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var (
	// ErrSuperseded is returned by Refresh when a later Refresh or an input
	// change made its result stale.
	ErrSuperseded = errors.New("lesson request superseded")

	// ErrUnknownItem is returned by Unlock for ids not in the premium catalog.
	ErrUnknownItem = errors.New("unknown premium item")

	// ErrNoLesson is returned when an operation needs a loaded lesson.
	ErrNoLesson = errors.New("no lesson loaded")
)
