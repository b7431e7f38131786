package tui

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/folio/internal/config"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/imageinfo"
	"github.com/mmcdole/folio/internal/lightbox"
	"github.com/mmcdole/folio/internal/log"
	"github.com/mmcdole/folio/internal/resolver"
	"github.com/mmcdole/folio/internal/tui/styles"
)

type fakeResolver struct {
	res resolver.Result
	err error
}

func (f fakeResolver) Resolve(context.Context) (resolver.Result, error) {
	return f.res, f.err
}

type fakeLoader struct{}

func (fakeLoader) Fetch(context.Context, string) (*imageinfo.Decoded, error) {
	return nil, errors.New("not used")
}

var testUI = config.UIConfig{
	GridColumns:    4,
	SwipeThreshold: 8,
	OpenDelay:      time.Millisecond,
	CloseDelay:     5 * time.Millisecond,
}

func newTestModel(t *testing.T, ui config.UIConfig) Model {
	t.Helper()
	m := NewModel(Options{
		Resolver: fakeResolver{},
		Loader:   fakeLoader{},
		UI:       ui,
		Logger:   log.NullLogger(),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func resolved(t *testing.T, m Model, ids ...string) Model {
	t.Helper()
	m, _ = update(t, m, ImagesResolvedMsg{
		Seq:    m.seq,
		Result: resolver.Result{IDs: ids, Source: resolver.SourceListing},
	})
	return m
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// fire runs a lightbox tick command and delivers its message
func fire(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(LightboxTickMsg)
	require.True(t, ok, "expected LightboxTickMsg, got %T", msg)
	m, _ = update(t, m, msg)
	return m
}

func openIndex(t *testing.T, m Model) int {
	t.Helper()
	i, ok := m.Lightbox.State().Index()
	require.True(t, ok, "lightbox should be open")
	return i
}

func TestResolvedListingCreatesTilesInOrder(t *testing.T) {
	m := newTestModel(t, testUI)
	assert.Equal(t, StateLoading, m.State)

	m, cmd := update(t, m, ImagesResolvedMsg{
		Result: resolver.Result{IDs: []string{"a.jpg", "b.jpg"}, Source: resolver.SourceListing},
	})

	assert.Equal(t, StateBrowsing, m.State)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, m.Gallery.IDs())
	assert.Equal(t, 2, m.Grid.Len())
	assert.Equal(t, 2, m.pending)
	assert.NotNil(t, cmd)
}

func TestNoImagesShowsPlaceholder(t *testing.T) {
	m := newTestModel(t, testUI)

	m, _ = update(t, m, ImagesResolvedMsg{Err: domain.ErrNoImages})

	assert.Equal(t, StateEmpty, m.State)
	assert.Equal(t, 0, m.Gallery.Len())
	assert.False(t, m.StatusIsErr)
	assert.Contains(t, m.View(), "No images found in the images folder.")
}

func TestResolveFailureIsReported(t *testing.T) {
	m := newTestModel(t, testUI)

	m, _ = update(t, m, ImagesResolvedMsg{Err: context.DeadlineExceeded})

	assert.Equal(t, StateEmpty, m.State)
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "resolving images")
}

func TestStaleResolutionIgnored(t *testing.T) {
	m := newTestModel(t, testUI)

	m, _ = update(t, m, ImagesResolvedMsg{Seq: m.seq + 1, Result: resolver.Result{IDs: []string{"a.jpg"}}})

	assert.Equal(t, StateLoading, m.State)
	assert.Equal(t, 0, m.Gallery.Len())
}

func TestTileLoadedClassifies(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "wide.jpg", "tall.jpg")

	m, _ = update(t, m, TileLoadedMsg{Seq: m.seq, Index: 0, Image: &imageinfo.Decoded{
		Width: 30, Height: 10, Preview: image.NewRGBA(image.Rect(0, 0, 30, 10)),
	}})
	m, _ = update(t, m, TileLoadedMsg{Seq: m.seq, Index: 1, Image: &imageinfo.Decoded{
		Width: 10, Height: 30, Preview: image.NewRGBA(image.Rect(0, 0, 10, 30)),
	}})

	e0, err := m.Gallery.At(0)
	require.NoError(t, err)
	e1, err := m.Gallery.At(1)
	require.NoError(t, err)
	assert.Equal(t, domain.LayoutLandscape, e0.Layout)
	assert.Equal(t, domain.LayoutPortrait, e1.Layout)
	assert.Equal(t, 0, m.pending)

	p := m.Grid.Placements()
	require.Len(t, p, 2)
	assert.Equal(t, 2, p[0].ColSpan)
	assert.Equal(t, 2, p[1].RowSpan)
}

func TestTileFailedHidesTile(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "a.jpg", "b.jpg")

	m, _ = update(t, m, TileFailedMsg{Seq: m.seq, Index: 0, Err: domain.ErrNotAnImage})

	e, err := m.Gallery.At(0)
	require.NoError(t, err)
	assert.True(t, e.Hidden)
	assert.Equal(t, 2, m.Gallery.Len())
	assert.Equal(t, 1, m.Grid.Len())
}

func TestTileFailedShowsPlaceholderWhenConfigured(t *testing.T) {
	ui := testUI
	ui.PlaceholderOnError = true
	m := resolved(t, newTestModel(t, ui), "a.jpg", "b.jpg")

	m, _ = update(t, m, TileFailedMsg{Seq: m.seq, Index: 0, Err: domain.ErrNotAnImage})

	e, err := m.Gallery.At(0)
	require.NoError(t, err)
	assert.False(t, e.Hidden)
	assert.Equal(t, 2, m.Grid.Len())
	assert.Contains(t, m.View(), "image unavailable")
}

func TestLightboxKeyboardRoundTrip(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "a.jpg", "b.jpg", "c.jpg")

	m, cmd := update(t, m, keyPress(tea.KeyEnter))
	assert.Equal(t, 0, openIndex(t, m))
	assert.True(t, m.Lightbox.ScrollLocked())
	assert.False(t, m.Lightbox.Visible())

	m = fire(t, m, cmd)
	assert.True(t, m.Lightbox.Visible())
	assert.Contains(t, m.View(), "Photography 1")

	m, _ = update(t, m, keyPress(tea.KeyRight))
	m, _ = update(t, m, keyPress(tea.KeyRight))
	assert.Equal(t, 2, openIndex(t, m))
	assert.True(t, m.Lightbox.View().NextDisabled)

	m, cmd = update(t, m, keyPress(tea.KeyRight))
	assert.Nil(t, cmd)
	assert.Equal(t, 2, openIndex(t, m))

	m, _ = update(t, m, keyPress(tea.KeyLeft))
	assert.Equal(t, 1, openIndex(t, m))

	m, cmd = update(t, m, keyPress(tea.KeyEsc))
	assert.False(t, m.Lightbox.State().IsOpen())
	assert.True(t, m.Lightbox.Mounted())
	assert.True(t, m.Lightbox.ScrollLocked())

	m = fire(t, m, cmd)
	assert.False(t, m.Lightbox.Mounted())
	assert.False(t, m.Lightbox.ScrollLocked())
}

func TestGridIsLockedWhileLightboxMounted(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "a.jpg", "b.jpg", "c.jpg")

	m, _ = update(t, m, keyPress(tea.KeyEnter))
	m, _ = update(t, m, keyPress(tea.KeyDown))
	sel, _ := m.Grid.Selected()
	assert.Equal(t, 0, sel)

	// closed but still fading out
	m, _ = update(t, m, keyPress(tea.KeyEsc))
	m, _ = update(t, m, keyPress(tea.KeyRight))
	sel, _ = m.Grid.Selected()
	assert.Equal(t, 0, sel)
	assert.False(t, m.Lightbox.State().IsOpen())
}

func TestReopenDuringFadeIgnoresStaleHide(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "a.jpg", "b.jpg")

	m, _ = update(t, m, keyPress(tea.KeyEnter))
	m, hide := update(t, m, keyPress(tea.KeyEsc))
	m, show := update(t, m, keyPress(tea.KeyEnter))

	m = fire(t, m, hide)
	assert.True(t, m.Lightbox.Mounted())
	assert.True(t, m.Lightbox.ScrollLocked())
	assert.Equal(t, 0, openIndex(t, m))

	m = fire(t, m, show)
	assert.True(t, m.Lightbox.Visible())
}

func TestMouseSwipeAndClick(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "a.jpg", "b.jpg", "c.jpg")
	m, _ = update(t, m, keyPress(tea.KeyEnter))

	// swipe right at the first image: nothing
	m, _ = update(t, m, mouse(tea.MouseActionPress, 30, 20))
	m, cmd := update(t, m, mouse(tea.MouseActionRelease, 50, 20))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, openIndex(t, m))

	// swipe left past the threshold: next
	m, _ = update(t, m, mouse(tea.MouseActionPress, 50, 20))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 30, 20))
	assert.Equal(t, 1, openIndex(t, m))

	// short drag inside the box is a click on the image: nothing
	m, _ = update(t, m, mouse(tea.MouseActionPress, 50, 20))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 47, 20))
	assert.Equal(t, 1, openIndex(t, m))

	// click on the backdrop closes
	m, _ = update(t, m, mouse(tea.MouseActionPress, 0, 0))
	m, cmd = update(t, m, mouse(tea.MouseActionRelease, 0, 0))
	assert.False(t, m.Lightbox.State().IsOpen())
	assert.NotNil(t, cmd)
}

func TestClickTileOpensLightbox(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "a.jpg", "b.jpg")

	m, cmd := update(t, m, mouse(tea.MouseActionPress, 30, 5))
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, openIndex(t, m))

	// the release that follows the opening click is not a lightbox click
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 30, 5))
	assert.Equal(t, 1, openIndex(t, m))
}

func TestFilterNarrowsGrid(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "beach.jpg", "city.jpg")

	m, _ = update(t, m, runes("/"))
	require.True(t, m.Grid.IsFilterTyping())
	m, _ = update(t, m, runes("c"))
	m, _ = update(t, m, runes("i"))

	assert.Equal(t, 1, m.Grid.Len())
	sel, ok := m.Grid.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel)

	m, _ = update(t, m, keyPress(tea.KeyEnter))
	assert.False(t, m.Grid.IsFilterTyping())
	m, _ = update(t, m, keyPress(tea.KeyEnter))
	assert.Equal(t, 1, openIndex(t, m))
	assert.Equal(t, "Photography 2", m.Lightbox.View().Caption)
}

func TestHelpToggle(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "a.jpg")

	m, _ = update(t, m, runes("?"))
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "LIGHTBOX")

	m, _ = update(t, m, keyPress(tea.KeyEsc))
	assert.Equal(t, StateBrowsing, m.State)
}

func TestHelpUsesGalleryPalette(t *testing.T) {
	m := newTestModel(t, testUI)

	assert.Equal(t, styles.HelpKeyStyle, m.Help.Styles.ShortKey)
	assert.Equal(t, styles.HelpDescStyle, m.Help.Styles.ShortDesc)
	assert.Equal(t, styles.HelpKeyStyle, m.Help.Styles.FullKey)
}

func TestReloadFromEmpty(t *testing.T) {
	m := newTestModel(t, testUI)
	m, _ = update(t, m, ImagesResolvedMsg{Err: domain.ErrNoImages})

	m, cmd := update(t, m, runes("r"))

	assert.Equal(t, StateLoading, m.State)
	assert.Equal(t, 1, m.seq)
	assert.NotNil(t, cmd)

	// results from the first resolution no longer apply
	m, _ = update(t, m, TileLoadedMsg{Seq: 0, Index: 0, Image: &imageinfo.Decoded{Width: 1, Height: 1}})
	assert.Equal(t, StateLoading, m.State)
}

func TestLightboxEventsIgnoredWhenClosed(t *testing.T) {
	m := resolved(t, newTestModel(t, testUI), "a.jpg")

	_, ok := m.Lightbox.Dispatch(lightbox.Next())
	assert.False(t, ok)
	assert.Equal(t, lightbox.Closed(), m.Lightbox.State())
}

// slowProber loads first and blocks on every other candidate until ctx ends
type slowProber struct {
	first string
}

func (p slowProber) Probe(ctx context.Context, name string) domain.ProbeResult {
	if name == p.first {
		return domain.ProbeResult{Name: name, Status: domain.ProbeLoaded, Width: 10, Height: 10}
	}
	<-ctx.Done()
	return domain.ProbeResult{Name: name, Status: domain.ProbeErrored, Err: ctx.Err()}
}

func TestResolveDeadlineKeepsFoundImages(t *testing.T) {
	r := resolver.New(resolver.Options{
		Prober:     slowProber{first: "1.jpg"},
		Candidates: []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"},
		Logger:     log.NullLogger(),
	})
	m := newTestModel(t, testUI)

	msg := ResolveCmd(r, m.seq, 100*time.Millisecond)()
	m, cmd := update(t, m, msg)

	assert.Equal(t, StateBrowsing, m.State)
	assert.Equal(t, []string{"1.jpg"}, m.Gallery.IDs())
	assert.False(t, m.StatusIsErr)
	assert.NotNil(t, cmd)
}

func TestPartialResolutionErrorStillShowsImages(t *testing.T) {
	m := newTestModel(t, testUI)

	m, _ = update(t, m, ImagesResolvedMsg{
		Result: resolver.Result{IDs: []string{"a.jpg", "b.jpg"}, Source: resolver.SourceProbe},
		Err:    context.DeadlineExceeded,
	})

	assert.Equal(t, StateBrowsing, m.State)
	assert.Equal(t, 2, m.Gallery.Len())
	assert.Equal(t, 2, m.pending)
	assert.False(t, m.StatusIsErr)
}
