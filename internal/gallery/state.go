package gallery

import (
	"fmt"

	"github.com/mmcdole/folio/internal/domain"
)

// State is the ordered, append-only list of gallery entries.
// Index is the only addressing scheme.
type State struct {
	entries []domain.ImageEntry
}

// NewState creates a gallery from resolved identifiers in discovery order
func NewState(ids []string) *State {
	s := &State{entries: make([]domain.ImageEntry, 0, len(ids))}
	for _, id := range ids {
		s.Append(id)
	}
	return s
}

// Append adds a tile for id and returns its index
func (s *State) Append(id string) int {
	s.entries = append(s.entries, domain.ImageEntry{ID: id})
	return len(s.entries) - 1
}

// Len returns the number of entries, hidden ones included
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Empty reports whether there is nothing to show
func (s *State) Empty() bool {
	return s.Len() == 0
}

// At returns the entry at index i
func (s *State) At(i int) (domain.ImageEntry, error) {
	if i < 0 || i >= s.Len() {
		return domain.ImageEntry{}, fmt.Errorf("index %d of %d: %w", i, s.Len(), domain.ErrIndexOutOfRange)
	}
	return s.entries[i], nil
}

// Entries returns a copy of all entries
func (s *State) Entries() []domain.ImageEntry {
	out := make([]domain.ImageEntry, s.Len())
	copy(out, s.entries)
	return out
}

// IDs returns the identifiers in order
func (s *State) IDs() []string {
	ids := make([]string, s.Len())
	for i, e := range s.entries {
		ids[i] = e.ID
	}
	return ids
}

// SetDimensions records decoded dimensions and classifies the tile.
// The layout is write-once; it returns false if the entry was already classified.
func (s *State) SetDimensions(i, width, height int) (bool, error) {
	if i < 0 || i >= s.Len() {
		return false, fmt.Errorf("index %d of %d: %w", i, s.Len(), domain.ErrIndexOutOfRange)
	}

	e := &s.entries[i]
	if e.Layout != domain.LayoutUnknown {
		return false, nil
	}

	layout := Classify(width, height)
	if layout == domain.LayoutUnknown {
		return false, nil
	}
	e.Width = width
	e.Height = height
	e.Layout = layout
	return true, nil
}

// Hide marks the tile as failed. The entry keeps its index.
func (s *State) Hide(i int) error {
	if i < 0 || i >= s.Len() {
		return fmt.Errorf("index %d of %d: %w", i, s.Len(), domain.ErrIndexOutOfRange)
	}
	s.entries[i].Hidden = true
	return nil
}

// VisibleCount returns the number of tiles that are not hidden
func (s *State) VisibleCount() int {
	n := 0
	for _, e := range s.entries {
		if !e.Hidden {
			n++
		}
	}
	return n
}
