package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/folio/internal/config"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/gallery"
	"github.com/mmcdole/folio/internal/imageinfo"
	"github.com/mmcdole/folio/internal/input"
	"github.com/mmcdole/folio/internal/lightbox"
	"github.com/mmcdole/folio/internal/resolver"
	"github.com/mmcdole/folio/internal/tui/components"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota
	StateBrowsing
	StateEmpty
	StateHelp
)

// ChromeHeight is the single footer line
const ChromeHeight = 1

// ImageResolver produces the ordered list of images to show
type ImageResolver interface {
	Resolve(ctx context.Context) (resolver.Result, error)
}

// TileLoader fetches and decodes one image
type TileLoader interface {
	Fetch(ctx context.Context, url string) (*imageinfo.Decoded, error)
}

// Options configures the Model
type Options struct {
	Resolver ImageResolver
	Loader   TileLoader
	// ImageURL maps an image identifier to the URL it is fetched from
	ImageURL       func(id string) string
	UI             config.UIConfig
	ResolveTimeout time.Duration
	LoadTimeout    time.Duration
	Logger         *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State     ApplicationState
	prevState ApplicationState
	Ready     bool

	opts   Options
	logger *slog.Logger

	// Gallery and lightbox
	Gallery  *gallery.State
	Lightbox *lightbox.Controller
	Router   *input.Router
	images   map[int]*imageinfo.Decoded
	failed   map[int]error
	source   resolver.Source

	// UI Components
	Grid    components.Grid
	Overlay components.Lightbox
	Spinner spinner.Model
	Help    help.Model
	thumbs  *components.ThumbCache

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool

	// seq identifies the current resolution; results from older ones are dropped
	seq     int
	pending int

	// Pointer press inside the lightbox, for swipe vs click
	pressed bool
	pressX  int
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ImageURL == nil {
		opts.ImageURL = func(id string) string { return id }
	}
	if opts.ResolveTimeout <= 0 {
		opts.ResolveTimeout = config.DefaultConfig().Gallery.ResolveTimeout()
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 30 * time.Second
	}
	if opts.UI.GridColumns <= 0 {
		opts.UI.GridColumns = config.DefaultConfig().UI.GridColumns
	}

	m := Model{
		State:   StateLoading,
		opts:    opts,
		logger:  opts.Logger,
		Router:  input.NewRouter(opts.UI.SwipeThreshold),
		Spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		Help:    newHelp(),
	}
	m.reset(nil)
	return m
}

// newHelp returns a help view in the gallery palette
func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	return h
}

// reset installs a fresh gallery with the given identifiers
func (m *Model) reset(ids []string) {
	m.Gallery = gallery.NewState(ids)
	m.Lightbox = lightbox.NewController(m.Gallery, lightbox.Options{
		OpenDelay:  m.opts.UI.OpenDelay,
		CloseDelay: m.opts.UI.CloseDelay,
		SourceURL:  m.opts.ImageURL,
		Logger:     m.logger,
	})
	m.images = make(map[int]*imageinfo.Decoded)
	m.failed = make(map[int]error)
	m.thumbs = components.NewThumbCache()
	m.Grid = components.NewGrid(m.opts.UI.GridColumns, m.thumbs)
	m.Grid.SetEntries(m.Gallery.Entries())
	m.Overlay = components.NewLightbox(m.thumbs)
	m.pending = 0
	m.pressed = false
	m.updateLayout()
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		ResolveCmd(m.opts.Resolver, m.seq, m.opts.ResolveTimeout),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ImagesResolvedMsg:
		return m.handleResolved(msg)

	case TileLoadedMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.pending--
		m.images[msg.Index] = msg.Image
		if _, err := m.Gallery.SetDimensions(msg.Index, msg.Image.Width, msg.Image.Height); err != nil {
			m.logger.Warn("tile index out of range", "index", msg.Index, "error", err)
			return m, nil
		}
		m.Grid.SetImage(msg.Index, components.TileImage{
			Preview: msg.Image.Preview,
			Swatch:  styles.SwatchColor(msg.Image.Swatch),
		})
		m.Grid.SetEntries(m.Gallery.Entries())
		m.Lightbox.Refresh()
		return m, nil

	case TileFailedMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.pending--
		m.logger.Debug("tile failed to load", "index", msg.Index, "error", msg.Err)
		m.failed[msg.Index] = msg.Err
		if m.opts.UI.PlaceholderOnError {
			m.Grid.SetFailed(msg.Index)
		} else if err := m.Gallery.Hide(msg.Index); err != nil {
			m.logger.Warn("tile index out of range", "index", msg.Index, "error", err)
			return m, nil
		}
		m.Grid.SetEntries(m.Gallery.Entries())
		m.Lightbox.Refresh()
		return m, nil

	case LightboxTickMsg:
		m.Lightbox.Fire(msg.Tick)
		return m, nil

	case ErrMsg:
		m.logger.Error("error", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleResolved(msg ImagesResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil
	}

	if msg.Err != nil && len(msg.Result.IDs) > 0 {
		m.logger.Warn("resolution ended early, showing found images", "count", len(msg.Result.IDs), "error", msg.Err)
		msg.Err = nil
	}

	if msg.Err != nil {
		m.reset(nil)
		m.State = StateEmpty
		if errors.Is(msg.Err, domain.ErrNoImages) {
			m.logger.Info("no images found", "checked", msg.Result.Checked)
			return m, nil
		}
		return m.Update(ErrMsg{Err: msg.Err, Context: "resolving images"})
	}

	m.reset(msg.Result.IDs)
	m.source = msg.Result.Source
	m.State = StateBrowsing
	m.logger.Info("images resolved", "count", len(msg.Result.IDs), "source", msg.Result.Source.String())

	cmds := make([]tea.Cmd, 0, len(msg.Result.IDs)+1)
	for i, id := range msg.Result.IDs {
		cmds = append(cmds, LoadTileCmd(m.opts.Loader, m.seq, i, m.opts.ImageURL(id), m.opts.LoadTimeout))
	}
	m.pending = len(msg.Result.IDs)
	m.StatusMsg = fmt.Sprintf("Found %d images via %s", len(msg.Result.IDs), msg.Result.Source)
	m.StatusIsErr = false
	cmds = append(cmds, ClearStatusCmd(3*time.Second))
	return m, tea.Batch(cmds...)
}

// reload discards the gallery and resolves the image list again
func (m Model) reload() (tea.Model, tea.Cmd) {
	m.seq++
	m.reset(nil)
	m.State = StateLoading
	return m, tea.Batch(
		m.Spinner.Tick,
		ResolveCmd(m.opts.Resolver, m.seq, m.opts.ResolveTimeout),
	)
}

// busy reports whether something is still loading in the background
func (m Model) busy() bool {
	return m.State == StateLoading || m.pending > 0
}

// dispatch applies a lightbox event and schedules its delayed step
func (m *Model) dispatch(ev lightbox.Event) tea.Cmd {
	tick, ok := m.Lightbox.Dispatch(ev)
	if !ok {
		return nil
	}
	return LightboxTickCmd(tick)
}

// openSelected opens the lightbox on the selected tile
func (m *Model) openSelected() tea.Cmd {
	i, ok := m.Grid.Selected()
	if !ok {
		return nil
	}
	return m.dispatch(lightbox.Open(i))
}

func (m *Model) updateLayout() {
	contentHeight := max(m.Height-ChromeHeight, 0)
	m.Grid.SetSize(m.Width, contentHeight)
	m.Overlay.SetSize(m.Width, contentHeight)
	m.Help.Width = m.Width
}

// lightboxContent gathers what the overlay shows for the current index
func (m Model) lightboxContent() components.LightboxContent {
	v := m.Lightbox.View()
	c := components.LightboxContent{
		View:    v,
		Total:   m.Gallery.Len(),
		Visible: m.Lightbox.Visible(),
	}
	if img, ok := m.images[v.Index]; ok {
		c.Image = img.Preview
	}
	_, c.Failed = m.failed[v.Index]
	return c
}
