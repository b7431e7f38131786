package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas composes rendered blocks at absolute cell positions. Blocks must
// not overlap; gaps are filled with spaces and anything outside is clipped
// vertically.
type canvas struct {
	width int
	lines [][]segment
}

type segment struct {
	x    int
	text string
	w    int
}

func newCanvas(width, height int) *canvas {
	return &canvas{width: width, lines: make([][]segment, max(height, 0))}
}

// place draws block with its top-left corner at (x, y)
func (c *canvas) place(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = append(c.lines[row], segment{x: x, text: line, w: lipgloss.Width(line)})
	}
}

func (c *canvas) String() string {
	out := make([]string, len(c.lines))
	for i, segs := range c.lines {
		sort.Slice(segs, func(a, b int) bool { return segs[a].x < segs[b].x })

		var sb strings.Builder
		pos := 0
		for _, s := range segs {
			if s.x > pos {
				sb.WriteString(strings.Repeat(" ", s.x-pos))
				pos = s.x
			}
			sb.WriteString(s.text)
			pos += s.w
		}
		if pos < c.width {
			sb.WriteString(strings.Repeat(" ", c.width-pos))
		}
		out[i] = sb.String()
	}
	return strings.Join(out, "\n")
}
