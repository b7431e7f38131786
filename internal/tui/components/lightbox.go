package components

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/folio/internal/lightbox"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// Lightbox layout constants
const (
	MaxLightboxWidth  = 96
	MaxLightboxHeight = 40
	MinLightboxWidth  = 24
	MinLightboxHeight = 8

	// Border plus horizontal padding on each side
	lightboxFrameX = 2
	lightboxFrameY = 1

	prevLabel  = "< Prev"
	nextLabel  = "Next >"
	closeLabel = "Close"
)

// Region is the part of the lightbox under a pointer
type Region int

const (
	RegionBackground Region = iota
	RegionBox
	RegionPrev
	RegionNext
	RegionClose
)

// LightboxContent is everything the overlay draws for one frame
type LightboxContent struct {
	View    lightbox.View
	Total   int
	Image   image.Image // nil while loading
	Failed  bool
	Visible bool
}

// Lightbox draws the full-screen image overlay
type Lightbox struct {
	width  int
	height int
	thumbs *ThumbCache
}

// NewLightbox creates the overlay renderer
func NewLightbox(thumbs *ThumbCache) Lightbox {
	return Lightbox{thumbs: thumbs}
}

// SetSize sets the screen area the overlay covers
func (l *Lightbox) SetSize(width, height int) {
	l.width = width
	l.height = height
}

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type lightboxLayout struct {
	box   rect
	inner rect // content area inside border and padding
	prev  rect
	next  rect
	close rect
}

func (l Lightbox) layout() lightboxLayout {
	bw := min(max(l.width-4, MinLightboxWidth), MaxLightboxWidth)
	bh := min(max(l.height-2, MinLightboxHeight), MaxLightboxHeight)
	box := rect{x: max((l.width-bw)/2, 0), y: max((l.height-bh)/2, 0), w: bw, h: bh}
	inner := rect{
		x: box.x + lightboxFrameX,
		y: box.y + lightboxFrameY,
		w: bw - 2*lightboxFrameX,
		h: bh - 2*lightboxFrameY,
	}

	prevW := lipgloss.Width(styles.ButtonStyle.Render(prevLabel))
	nextW := lipgloss.Width(styles.ButtonStyle.Render(nextLabel))
	closeW := lipgloss.Width(styles.ButtonStyle.Render(closeLabel))
	footer := inner.y + inner.h - 1

	return lightboxLayout{
		box:   box,
		inner: inner,
		prev:  rect{x: inner.x, y: footer, w: prevW, h: 1},
		next:  rect{x: inner.x + inner.w - nextW, y: footer, w: nextW, h: 1},
		close: rect{x: inner.x + inner.w - closeW, y: inner.y, w: closeW, h: 1},
	}
}

// HitTest returns the region at screen cell (x, y)
func (l Lightbox) HitTest(x, y int) Region {
	lo := l.layout()
	switch {
	case lo.prev.contains(x, y):
		return RegionPrev
	case lo.next.contains(x, y):
		return RegionNext
	case lo.close.contains(x, y):
		return RegionClose
	case lo.box.contains(x, y):
		return RegionBox
	}
	return RegionBackground
}

// Render draws the overlay over the whole area. The frame is dimmed until
// the lightbox becomes visible and again while it fades out.
func (l Lightbox) Render(c LightboxContent) string {
	lo := l.layout()
	cw := lo.inner.w
	imageH := lo.inner.h - 2

	// Header: caption, position, close button
	counter := styles.DimStyle.Render(fmt.Sprintf("%d/%d", c.View.Index+1, c.Total))
	closeBtn := styles.ButtonStyle.Render(closeLabel)
	caption := styles.TitleStyle.Render(styles.Truncate(c.View.Caption, cw/2))
	header := spread(cw, caption, counter+" "+closeBtn)

	var picture string
	switch {
	case c.Image != nil:
		picture = l.thumbs.Render(c.View.Index, c.Image, cw, imageH)
	case c.Failed || c.View.Hidden:
		picture = lipgloss.Place(cw, imageH, lipgloss.Center, lipgloss.Center,
			styles.PlaceholderStyle.Render("image unavailable"))
	default:
		picture = lipgloss.Place(cw, imageH, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render("loading..."))
	}

	prev := styles.ButtonStyle.Render(prevLabel)
	if c.View.PrevDisabled {
		prev = styles.ButtonDisabledStyle.Render(prevLabel)
	}
	next := styles.ButtonStyle.Render(nextLabel)
	if c.View.NextDisabled {
		next = styles.ButtonDisabledStyle.Render(nextLabel)
	}
	footer := spread(cw, prev, next)

	frame := styles.LightboxStyle
	if !c.Visible {
		frame = styles.LightboxFadedStyle
	}
	box := frame.
		Width(cw + 2).
		Height(lo.inner.h).
		Render(header + "\n" + picture + "\n" + footer)

	cv := newCanvas(l.width, l.height)
	cv.place(lo.box.x, lo.box.y, box)
	return cv.String()
}

// spread puts left and right at the edges of a width-wide line
func spread(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
