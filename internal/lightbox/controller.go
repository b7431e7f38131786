package lightbox

import (
	"log/slog"
	"time"

	"github.com/mmcdole/folio/internal/domain"
)

// Default presentation delays
const (
	DefaultOpenDelay  = 10 * time.Millisecond
	DefaultCloseDelay = 300 * time.Millisecond
)

// Gallery is the read-only view of the gallery state the controller needs
type Gallery interface {
	Len() int
	At(i int) (domain.ImageEntry, error)
}

// TickKind says what a delayed presentation step does
type TickKind int

const (
	TickShow TickKind = iota // apply the visible state
	TickHide                 // unmount the overlay and restore scrolling
)

// Tick is a delayed presentation step the host must deliver back via Fire.
// A tick whose token is stale (a newer transition happened) is ignored.
type Tick struct {
	Kind  TickKind
	After time.Duration
	Token uint64
}

// View is what the overlay currently displays
type View struct {
	Index        int
	ID           string
	Source       string
	Caption      string
	Hidden       bool // image failed to load
	PrevDisabled bool
	NextDisabled bool
}

// Options configures a Controller
type Options struct {
	OpenDelay  time.Duration
	CloseDelay time.Duration
	// SourceURL maps an image identifier to the displayed source. Defaults to the identity.
	SourceURL func(id string) string
	Logger    *slog.Logger
}

// Controller owns the lightbox state and its presentation flags
type Controller struct {
	gallery Gallery
	opts    Options
	logger  *slog.Logger

	state        State
	mounted      bool
	visible      bool
	scrollLocked bool
	token        uint64
	view         View
}

// NewController creates a closed lightbox over the gallery
func NewController(g Gallery, opts Options) *Controller {
	if opts.OpenDelay <= 0 {
		opts.OpenDelay = DefaultOpenDelay
	}
	if opts.CloseDelay <= 0 {
		opts.CloseDelay = DefaultCloseDelay
	}
	if opts.SourceURL == nil {
		opts.SourceURL = func(id string) string { return id }
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{gallery: g, opts: opts, logger: logger}
}

// State returns the current state
func (c *Controller) State() State { return c.state }

// View returns the displayed image. Only meaningful while mounted.
func (c *Controller) View() View { return c.view }

// Mounted reports whether the overlay is on screen (including while fading out)
func (c *Controller) Mounted() bool { return c.mounted }

// Visible reports whether the visible presentation state is applied
func (c *Controller) Visible() bool { return c.visible }

// ScrollLocked reports whether background scrolling is disabled
func (c *Controller) ScrollLocked() bool { return c.scrollLocked }

// Dispatch applies ev and returns the delayed step to schedule, if any.
// Delays never block further transitions.
func (c *Controller) Dispatch(ev Event) (Tick, bool) {
	prev := c.state
	next := Apply(prev, ev, c.gallery.Len())

	if next == prev {
		c.logger.Debug("lightbox event ignored", "event", ev.Kind.String(), "state", prev.String())
		return Tick{}, false
	}
	c.state = next
	c.logger.Debug("lightbox transition", "event", ev.Kind.String(), "from", prev.String(), "to", next.String())

	if !next.IsOpen() {
		c.visible = false
		c.token++
		return Tick{Kind: TickHide, After: c.opts.CloseDelay, Token: c.token}, true
	}

	c.render()
	if prev.IsOpen() {
		// Navigation inside an open lightbox; a pending show tick stays valid.
		return Tick{}, false
	}

	c.mounted = true
	c.scrollLocked = true
	c.token++
	return Tick{Kind: TickShow, After: c.opts.OpenDelay, Token: c.token}, true
}

// Fire delivers a previously scheduled tick
func (c *Controller) Fire(t Tick) {
	if t.Token != c.token {
		return
	}
	switch t.Kind {
	case TickShow:
		if c.state.IsOpen() {
			c.visible = true
		}
	case TickHide:
		if !c.state.IsOpen() {
			c.mounted = false
			c.scrollLocked = false
		}
	}
}

// render refreshes the displayed image and button state for the current index
func (c *Controller) render() {
	i, ok := c.state.Index()
	if !ok {
		return
	}
	entry, err := c.gallery.At(i)
	if err != nil {
		c.logger.Warn("lightbox index not in gallery", "index", i, "error", err)
		return
	}
	n := c.gallery.Len()
	c.view = View{
		Index:        i,
		ID:           entry.ID,
		Source:       c.opts.SourceURL(entry.ID),
		Caption:      domain.Caption(i),
		Hidden:       entry.Hidden,
		PrevDisabled: i == 0,
		NextDisabled: i == n-1,
	}
}

// Refresh re-reads the current entry, e.g. after its tile finished loading
func (c *Controller) Refresh() {
	c.render()
}
