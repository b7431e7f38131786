package components

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/gallery"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// Layout constants for the grid
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Caption line under each thumbnail
	CaptionLines = 1

	MinCellWidth = 8
	FilterLines  = 1
)

// TileImage is a loaded thumbnail
type TileImage struct {
	Preview image.Image
	Swatch  lipgloss.Color
}

// Grid is the masonry tile browser
type Grid struct {
	entries    []domain.ImageEntry
	images     map[int]TileImage
	failed     map[int]bool
	thumbs     *ThumbCache
	columns    int
	placements []gallery.Placement

	// Selection: cursor indexes placements, offset is the first visible grid row
	cursor int
	offset int

	// Dimensions
	width  int
	height int
	cellW  int
	cellH  int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
}

// NewGrid creates a new grid with the given column count
func NewGrid(columns int, thumbs *ThumbCache) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		images:      make(map[int]TileImage),
		failed:      make(map[int]bool),
		thumbs:      thumbs,
		columns:     max(columns, 1),
		filterInput: ti,
	}
}

// SetEntries replaces the gallery snapshot, keeping the selected image when it is still shown
func (g *Grid) SetEntries(entries []domain.ImageEntry) {
	selected, hadSelection := g.Selected()
	g.entries = entries
	g.repack()
	if hadSelection {
		g.Select(selected)
	}
	g.clampCursor()
}

// SetImage records a loaded thumbnail for entry i
func (g *Grid) SetImage(i int, img TileImage) {
	g.images[i] = img
	delete(g.failed, i)
}

// SetFailed marks entry i as failed; it is drawn as a placeholder
func (g *Grid) SetFailed(i int) {
	g.failed[i] = true
}

// SetSize sets the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.cellW = max(width/g.columns, MinCellWidth)
	// half-blocks are two pixels tall, so a square thumbnail needs half as many rows as columns
	g.cellH = (g.cellW-BorderWidth)/2 + BorderHeight + CaptionLines
	g.ensureVisible()
}

// Len returns the number of tiles currently shown
func (g Grid) Len() int {
	return len(g.placements)
}

// Placements returns the current tile layout
func (g Grid) Placements() []gallery.Placement {
	return g.placements
}

// Selected returns the gallery index of the selected tile
func (g Grid) Selected() (int, bool) {
	if g.cursor < 0 || g.cursor >= len(g.placements) {
		return 0, false
	}
	return g.placements[g.cursor].Index, true
}

// Select moves the cursor to the tile showing gallery index i
func (g *Grid) Select(i int) bool {
	for pos, p := range g.placements {
		if p.Index == i {
			g.cursor = pos
			g.ensureVisible()
			return true
		}
	}
	return false
}

// MoveLeft and MoveRight step through tiles in placement order
func (g *Grid) MoveLeft() {
	if g.cursor > 0 {
		g.cursor--
		g.ensureVisible()
	}
}

func (g *Grid) MoveRight() {
	if g.cursor < len(g.placements)-1 {
		g.cursor++
		g.ensureVisible()
	}
}

// MoveUp selects the nearest tile in the closest row above
func (g *Grid) MoveUp() {
	g.moveVertical(-1)
}

// MoveDown selects the nearest tile in the closest row below
func (g *Grid) MoveDown() {
	g.moveVertical(1)
}

func (g *Grid) moveVertical(dir int) {
	if len(g.placements) == 0 {
		return
	}
	cur := g.placements[g.cursor]
	best := -1
	for pos, p := range g.placements {
		if dir > 0 && p.Row < cur.Row+cur.RowSpan {
			continue
		}
		if dir < 0 && p.Row+p.RowSpan > cur.Row {
			continue
		}
		if best < 0 || closer(p, g.placements[best], cur, dir) {
			best = pos
		}
	}
	if best >= 0 {
		g.cursor = best
		g.ensureVisible()
	}
}

// closer reports whether a is a better vertical move target than b from cur
func closer(a, b, cur gallery.Placement, dir int) bool {
	if a.Row != b.Row {
		if dir > 0 {
			return a.Row < b.Row
		}
		return a.Row > b.Row
	}
	return colDistance(a, cur) < colDistance(b, cur)
}

func colDistance(p, cur gallery.Placement) int {
	if p.Col <= cur.Col && cur.Col < p.Col+p.ColSpan {
		return 0
	}
	d := p.Col - cur.Col
	if d < 0 {
		d = cur.Col - (p.Col + p.ColSpan - 1)
	}
	return d
}

// Home selects the first tile
func (g *Grid) Home() {
	g.cursor = 0
	g.offset = 0
}

// End selects the last tile
func (g *Grid) End() {
	g.cursor = max(len(g.placements)-1, 0)
	g.ensureVisible()
}

// ScrollBy moves the viewport by n grid rows without changing the selection
func (g *Grid) ScrollBy(n int) {
	maxOffset := max(gallery.Rows(g.placements)-g.visibleRows(), 0)
	g.offset = min(max(g.offset+n, 0), maxOffset)
}

// HitTest returns the gallery index of the tile at cell (x, y)
func (g Grid) HitTest(x, y int) (int, bool) {
	if g.cellW == 0 || x < 0 || y < 0 || y >= g.viewportHeight() {
		return 0, false
	}
	row := g.offset + y/g.cellH
	col := x / g.cellW
	for _, p := range g.placements {
		if row >= p.Row && row < p.Row+p.RowSpan && col >= p.Col && col < p.Col+p.ColSpan {
			return p.Index, true
		}
	}
	return 0, false
}

func (g Grid) viewportHeight() int {
	if g.filterActive {
		return g.height - FilterLines
	}
	return g.height
}

func (g Grid) visibleRows() int {
	if g.cellH == 0 {
		return 1
	}
	return max(g.viewportHeight()/g.cellH, 1)
}

func (g *Grid) ensureVisible() {
	if g.cursor < 0 || g.cursor >= len(g.placements) {
		return
	}
	p := g.placements[g.cursor]
	if p.Row < g.offset {
		g.offset = p.Row
	}
	if end := p.Row + p.RowSpan; end > g.offset+g.visibleRows() {
		g.offset = end - g.visibleRows()
	}
}

func (g *Grid) clampCursor() {
	if g.cursor >= len(g.placements) {
		g.cursor = max(len(g.placements)-1, 0)
	}
	g.ensureVisible()
}

// repack lays out the visible entries. Entries filtered out are treated as hidden.
func (g *Grid) repack() {
	entries := g.entries
	if g.filterQuery != "" {
		entries = make([]domain.ImageEntry, len(g.entries))
		copy(entries, g.entries)

		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = strings.ToLower(e.ID)
		}
		keep := make(map[int]bool)
		for _, match := range fuzzy.Find(strings.ToLower(g.filterQuery), ids) {
			keep[match.Index] = true
		}
		for i := range entries {
			if !keep[i] {
				entries[i].Hidden = true
			}
		}
	}
	g.placements = gallery.Pack(entries, g.columns)
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.ensureVisible()
}

// IsFiltering returns true if filter mode is active
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all tiles
func (g *Grid) ClearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.repack()
	g.clampCursor()
}

func (g *Grid) applyFilter() {
	g.filterQuery = g.filterInput.Value()
	g.repack()
	g.cursor = 0
	g.offset = 0
}

// Update handles filter typing. Navigation goes through the Move methods.
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.IsFilterTyping() {
		return g, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			g.ClearFilter()
			return g, nil
		case "enter":
			// Accept filter, blur input to allow navigation
			g.filterInput.Blur()
			return g, nil
		case "backspace":
			if g.filterInput.Value() == "" {
				g.ClearFilter()
				return g, nil
			}
		}
	}

	var cmd tea.Cmd
	g.filterInput, cmd = g.filterInput.Update(msg)
	if g.filterInput.Value() != g.filterQuery {
		g.applyFilter()
	}
	return g, cmd
}

// View renders the component
func (g Grid) View() string {
	vh := g.viewportHeight()
	var body string
	if len(g.placements) == 0 {
		msg := "No images"
		if g.filterQuery != "" {
			msg = "No images match the filter"
		}
		body = lipgloss.Place(g.width, vh, lipgloss.Center, lipgloss.Center, styles.DimStyle.Render(msg))
	} else {
		body = g.renderTiles(vh)
	}

	if g.filterActive {
		return body + "\n" + g.renderFilterBar()
	}
	return body
}

func (g Grid) renderTiles(height int) string {
	c := newCanvas(g.width, height)
	first, last := g.offset, g.offset+g.visibleRows()

	for pos, p := range g.placements {
		if p.Row+p.RowSpan <= first || p.Row >= last {
			continue
		}
		block := g.renderTile(p, pos == g.cursor)
		c.place(p.Col*g.cellW, (p.Row-g.offset)*g.cellH, block)
	}
	return c.String()
}

func (g Grid) renderTile(p gallery.Placement, selected bool) string {
	innerW := p.ColSpan*g.cellW - BorderWidth
	innerH := p.RowSpan*g.cellH - BorderHeight
	imageH := innerH - CaptionLines

	var picture string
	img, loaded := g.images[p.Index]
	switch {
	case loaded:
		picture = g.thumbs.Render(p.Index, img.Preview, innerW, imageH)
	case g.failed[p.Index]:
		picture = lipgloss.Place(innerW, imageH, lipgloss.Center, lipgloss.Center,
			styles.PlaceholderStyle.Render(styles.Truncate("image unavailable", innerW)))
	default:
		picture = lipgloss.Place(innerW, imageH, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render(styles.Truncate("loading...", innerW)))
	}

	captionStyle := styles.CaptionStyle
	style := styles.TileStyle
	if loaded {
		style = style.BorderForeground(img.Swatch)
	}
	if selected {
		style = styles.TileSelectedStyle
		captionStyle = styles.CaptionSelectedStyle
	}
	caption := captionStyle.Render(styles.Truncate(domain.Caption(p.Index), innerW))

	return style.
		Width(innerW).
		Height(innerH).
		Render(picture + "\n" + caption)
}

func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()

	// Show match count
	countStr := ""
	if g.filterQuery != "" {
		total := 0
		for _, e := range g.entries {
			if !e.Hidden {
				total++
			}
		}
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(g.placements), total))
	}

	return input + countStr
}
