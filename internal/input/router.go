// Package input maps keyboard and swipe gestures to lightbox transitions
package input

import "github.com/mmcdole/folio/internal/lightbox"

// DefaultSwipeThreshold is the minimum horizontal travel of a swipe
const DefaultSwipeThreshold = 50

// Key is a navigation key the router understands
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyLeft
	KeyRight
)

// Router turns input into lightbox events. Inputs that would be a no-op in
// the current state produce no event.
type Router struct {
	threshold int

	tracking bool
	startX   int
}

// NewRouter creates a router with the given swipe threshold
func NewRouter(threshold int) *Router {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Router{threshold: threshold}
}

// Threshold returns the swipe distance that must be exceeded
func (r *Router) Threshold() int {
	return r.threshold
}

// Key routes a key press
func (r *Router) Key(k Key, s lightbox.State, length int) (lightbox.Event, bool) {
	if !s.IsOpen() {
		return lightbox.Event{}, false
	}
	switch k {
	case KeyEscape:
		return lightbox.Close(), true
	case KeyLeft:
		if lightbox.CanPrev(s) {
			return lightbox.Prev(), true
		}
	case KeyRight:
		if lightbox.CanNext(s, length) {
			return lightbox.Next(), true
		}
	}
	return lightbox.Event{}, false
}

// TouchStart records where a swipe began
func (r *Router) TouchStart(x int) {
	r.tracking = true
	r.startX = x
}

// TouchEnd finishes a swipe at x and routes it
func (r *Router) TouchEnd(x int, s lightbox.State, length int) (lightbox.Event, bool) {
	if !r.tracking {
		return lightbox.Event{}, false
	}
	r.tracking = false
	return r.Swipe(r.startX-x, s, length)
}

// Swipe routes a completed swipe with diff = startX - endX.
// A positive diff is a leftward swipe and moves to the next image.
func (r *Router) Swipe(diff int, s lightbox.State, length int) (lightbox.Event, bool) {
	if !s.IsOpen() || abs(diff) <= r.threshold {
		return lightbox.Event{}, false
	}
	if diff > 0 && lightbox.CanNext(s, length) {
		return lightbox.Next(), true
	}
	if diff < 0 && lightbox.CanPrev(s) {
		return lightbox.Prev(), true
	}
	return lightbox.Event{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
