package browse

import (
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/yts"
)

// Status of the current browse operation
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusFailed
	StatusExhausted
	StatusFilterExhausted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	case StatusExhausted:
		return "exhausted"
	case StatusFilterExhausted:
		return "filter_exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether only a new Start can leave this status
func (s Status) Terminal() bool {
	return s == StatusFailed || s == StatusExhausted || s == StatusFilterExhausted
}

// EventKind identifies what happened
type EventKind int

const (
	// EventStarted follows every Start; counters are zero
	EventStarted EventKind = iota
	// EventPage carries the net-new visible movies of one page
	EventPage
	// EventIdle means enough results are visible; LoadMore continues
	EventIdle
	// EventExhausted means the catalog returned an empty page
	EventExhausted
	// EventFilterExhausted means too many consecutive pages were filtered out
	EventFilterExhausted
	// EventFailed means a page could not be fetched from any mirror
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventPage:
		return "page"
	case EventIdle:
		return "idle"
	case EventExhausted:
		return "exhausted"
	case EventFilterExhausted:
		return "filter_exhausted"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is published by the controller after every state change
type Event struct {
	Kind       EventKind
	Generation uint64
	Status     Status
	Page       int
	Added      []yts.Movie
	Raw        int
	Visible    int
	EmptyPages int
	Total      int
	Stats      filter.Stats
	Err        error
}
