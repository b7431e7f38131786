package domain

import "fmt"

// Layout is the masonry size class of a tile
type Layout int

const (
	LayoutUnknown   Layout = iota // not yet decoded
	LayoutSquare                  // single cell
	LayoutLandscape               // spans two columns
	LayoutPortrait                // spans two rows
)

// String returns the CSS class name used for the layout
func (l Layout) String() string {
	switch l {
	case LayoutSquare:
		return "square"
	case LayoutLandscape:
		return "landscape"
	case LayoutPortrait:
		return "portrait"
	default:
		return ""
	}
}

// ImageEntry is one discovered image.
// ID is immutable; Layout is written once when the image dimensions become known.
type ImageEntry struct {
	ID     string `json:"id"`
	Layout Layout `json:"layout"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Hidden bool   `json:"hidden,omitempty"` // image failed to load
}

// Caption returns the display caption for the entry at the given index
func Caption(index int) string {
	return fmt.Sprintf("Photography %d", index+1)
}

// ProbeStatus is the outcome of a single probe race
type ProbeStatus int

const (
	ProbeUnknown ProbeStatus = iota // not attempted
	ProbeLoaded
	ProbeErrored
	ProbeTimedOut
)

func (s ProbeStatus) String() string {
	switch s {
	case ProbeLoaded:
		return "loaded"
	case ProbeErrored:
		return "errored"
	case ProbeTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// ProbeResult describes a probe attempt against one candidate
type ProbeResult struct {
	Name   string
	Status ProbeStatus
	Width  int
	Height int
	Err    error
}

// OK reports whether the candidate exists
func (r ProbeResult) OK() bool {
	return r.Status == ProbeLoaded
}
