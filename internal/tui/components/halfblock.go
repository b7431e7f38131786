package components

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/mmcdole/folio/internal/imageinfo"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// upperHalf carries two pixels per cell: the upper one as foreground, the lower as background
const upperHalf = "▀"

// RenderHalfBlocks draws img centred in a width x height cell block
func RenderHalfBlocks(img image.Image, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = blank
	}
	if img == nil {
		return strings.Join(lines, "\n")
	}

	scaled := imageinfo.Scale(img, width, height*2)
	b := scaled.Bounds()
	w, h := min(b.Dx(), width), min(b.Dy(), height*2)
	rows := (h + 1) / 2
	offX := (width - w) / 2
	offY := (height - rows) / 2

	for row := 0; row < rows; row++ {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", offX))
		top := b.Min.Y + 2*row
		for x := 0; x < w; x++ {
			style := lipgloss.NewStyle().Foreground(cellColor(scaled.At(b.Min.X+x, top)))
			if 2*row+1 < h {
				style = style.Background(cellColor(scaled.At(b.Min.X+x, top+1)))
			}
			sb.WriteString(style.Render(upperHalf))
		}
		sb.WriteString(strings.Repeat(" ", width-offX-w))
		lines[offY+row] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func cellColor(c color.Color) lipgloss.Color {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return styles.Backdrop
	}
	return lipgloss.Color(cc.Hex())
}

// ThumbCache memoizes half-block renders, which are too slow to redo every frame
type ThumbCache struct {
	entries map[thumbKey]string
}

type thumbKey struct {
	index, width, height int
}

// NewThumbCache creates an empty cache
func NewThumbCache() *ThumbCache {
	return &ThumbCache{entries: make(map[thumbKey]string)}
}

// Render returns the cached render of image index at the given size
func (c *ThumbCache) Render(index int, img image.Image, width, height int) string {
	if c == nil {
		return RenderHalfBlocks(img, width, height)
	}
	k := thumbKey{index, width, height}
	if s, ok := c.entries[k]; ok {
		return s
	}
	s := RenderHalfBlocks(img, width, height)
	c.entries[k] = s
	return s
}
