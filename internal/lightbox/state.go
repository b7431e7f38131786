// Package lightbox implements the full-screen image overlay state machine.
//
// The state is either Closed or Open(index). Transitions are pure functions
// of (state, event, gallery length); the Controller layers the cosmetic
// show/hide delays and scroll lock on top of them.
package lightbox

import "fmt"

// State is Closed or Open at an index. The zero value is Closed.
type State struct {
	open  bool
	index int
}

// Closed returns the closed state
func Closed() State {
	return State{}
}

// OpenAt returns the open state at index i
func OpenAt(i int) State {
	return State{open: true, index: i}
}

// IsOpen reports whether the lightbox is open
func (s State) IsOpen() bool {
	return s.open
}

// Index returns the current index and whether the lightbox is open
func (s State) Index() (int, bool) {
	return s.index, s.open
}

func (s State) String() string {
	if !s.open {
		return "Closed"
	}
	return fmt.Sprintf("Open(%d)", s.index)
}

// EventKind identifies a lightbox transition
type EventKind int

const (
	EventNone EventKind = iota
	EventOpen
	EventPrev
	EventNext
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventPrev:
		return "prev"
	case EventNext:
		return "next"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Event is a requested transition. Index is only meaningful for EventOpen.
type Event struct {
	Kind  EventKind
	Index int
}

// Open requests opening at index i
func Open(i int) Event { return Event{Kind: EventOpen, Index: i} }

// Prev requests the previous image
func Prev() Event { return Event{Kind: EventPrev} }

// Next requests the next image
func Next() Event { return Event{Kind: EventNext} }

// Close requests closing the lightbox
func Close() Event { return Event{Kind: EventClose} }

// Apply returns the state after ev for a gallery of the given length.
// Requests that would break 0 <= index <= length-1 leave the state unchanged.
func Apply(s State, ev Event, length int) State {
	switch ev.Kind {
	case EventOpen:
		if ev.Index < 0 || ev.Index >= length {
			return s
		}
		return OpenAt(ev.Index)

	case EventPrev:
		if !s.open || s.index <= 0 {
			return s
		}
		return OpenAt(s.index - 1)

	case EventNext:
		if !s.open || s.index >= length-1 {
			return s
		}
		return OpenAt(s.index + 1)

	case EventClose:
		return Closed()
	}
	return s
}

// CanPrev reports whether Prev would move
func CanPrev(s State) bool {
	return s.open && s.index > 0
}

// CanNext reports whether Next would move
func CanNext(s State, length int) bool {
	return s.open && s.index < length-1
}
