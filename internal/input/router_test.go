package input

import (
	"testing"

	"github.com/mmcdole/folio/internal/lightbox"
	"github.com/stretchr/testify/assert"
)

func TestKeyRouting(t *testing.T) {
	r := NewRouter(DefaultSwipeThreshold)

	tests := []struct {
		name  string
		key   Key
		state lightbox.State
		want  lightbox.Event
		ok    bool
	}{
		{"escape closes", KeyEscape, lightbox.OpenAt(1), lightbox.Close(), true},
		{"escape while closed", KeyEscape, lightbox.Closed(), lightbox.Event{}, false},
		{"left moves back", KeyLeft, lightbox.OpenAt(1), lightbox.Prev(), true},
		{"left at first", KeyLeft, lightbox.OpenAt(0), lightbox.Event{}, false},
		{"right moves on", KeyRight, lightbox.OpenAt(1), lightbox.Next(), true},
		{"right at last", KeyRight, lightbox.OpenAt(2), lightbox.Event{}, false},
		{"right while closed", KeyRight, lightbox.Closed(), lightbox.Event{}, false},
		{"unknown key", KeyNone, lightbox.OpenAt(1), lightbox.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := r.Key(tt.key, tt.state, 3)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestSwipeLeftPastThresholdMovesNext(t *testing.T) {
	r := NewRouter(50)
	s := lightbox.OpenAt(0)

	r.TouchStart(200)
	ev, ok := r.TouchEnd(140, s, 3) // 60 units to the left

	assert.True(t, ok)
	assert.Equal(t, lightbox.OpenAt(1), lightbox.Apply(s, ev, 3))
}

func TestSwipeBelowThresholdDoesNothing(t *testing.T) {
	r := NewRouter(50)

	r.TouchStart(200)
	_, ok := r.TouchEnd(170, lightbox.OpenAt(1), 3)
	assert.False(t, ok)

	_, ok = r.Swipe(50, lightbox.OpenAt(1), 3)
	assert.False(t, ok, "the threshold itself is not enough")
}

func TestSwipeRightMovesPrev(t *testing.T) {
	r := NewRouter(50)
	ev, ok := r.Swipe(-80, lightbox.OpenAt(2), 3)
	assert.True(t, ok)
	assert.Equal(t, lightbox.Prev(), ev)
}

func TestSwipeBoundaries(t *testing.T) {
	r := NewRouter(50)

	_, ok := r.Swipe(-80, lightbox.OpenAt(0), 3)
	assert.False(t, ok, "swipe right at the first image")

	_, ok = r.Swipe(80, lightbox.OpenAt(2), 3)
	assert.False(t, ok, "swipe left at the last image")

	_, ok = r.Swipe(80, lightbox.Closed(), 3)
	assert.False(t, ok, "closed lightbox ignores swipes")
}

func TestTouchEndWithoutStart(t *testing.T) {
	r := NewRouter(50)
	_, ok := r.TouchEnd(0, lightbox.OpenAt(0), 3)
	assert.False(t, ok)
}

func TestNewRouterDefaultsThreshold(t *testing.T) {
	assert.Equal(t, DefaultSwipeThreshold, NewRouter(0).Threshold())
	assert.Equal(t, 8, NewRouter(8).Threshold())
}
