// Package controller holds the view-state controllers behind the list and
// detail screens. Each controller owns its preference state exclusively,
// keeps a current state snapshot under a mutex and broadcasts replacement
// snapshots to subscribers; state values are never mutated in place.
//
// Refresh and retry follow latest-wins semantics: every user-triggered
// reload bumps a generation counter and a fetch whose generation is no
// longer current discards its result instead of overwriting newer state.
package controller

// Status tags the variants of a screen state. Consumers are expected to
// switch over all three.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls further behind misses intermediate snapshots, never the lock.
const subscriberBuffer = 16

const unknownErrorMessage = "Unknown error"

// errorMessage extracts a human-readable message, falling back to a generic
// string when none is available.
func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return unknownErrorMessage
	}
	return err.Error()
}
