package gallery

import "github.com/mmcdole/folio/internal/domain"

// Placement is the grid position of one visible tile
type Placement struct {
	Index   int // index into the gallery state
	Row     int
	Col     int
	RowSpan int
	ColSpan int
}

// Spans returns the (rows, cols) a layout occupies in a grid of the given width
func Spans(layout domain.Layout, columns int) (int, int) {
	switch layout {
	case domain.LayoutLandscape:
		if columns >= 2 {
			return 1, 2
		}
	case domain.LayoutPortrait:
		return 2, 1
	}
	return 1, 1
}

// Pack places visible entries row-major, the way CSS grid auto-placement does:
// the cursor only moves forward, and each tile takes the first free slot
// at or after it that fits its span. Hidden entries take no space.
func Pack(entries []domain.ImageEntry, columns int) []Placement {
	if columns < 1 {
		columns = 1
	}

	var occupied [][]bool
	ensureRows := func(n int) {
		for len(occupied) < n {
			occupied = append(occupied, make([]bool, columns))
		}
	}
	fits := func(row, col, rowSpan, colSpan int) bool {
		if col+colSpan > columns {
			return false
		}
		ensureRows(row + rowSpan)
		for r := row; r < row+rowSpan; r++ {
			for c := col; c < col+colSpan; c++ {
				if occupied[r][c] {
					return false
				}
			}
		}
		return true
	}

	placements := make([]Placement, 0, len(entries))
	row, col := 0, 0
	for i, e := range entries {
		if e.Hidden {
			continue
		}
		rowSpan, colSpan := Spans(e.Layout, columns)

		for !fits(row, col, rowSpan, colSpan) {
			col++
			if col >= columns {
				col = 0
				row++
			}
		}

		for r := row; r < row+rowSpan; r++ {
			for c := col; c < col+colSpan; c++ {
				occupied[r][c] = true
			}
		}
		placements = append(placements, Placement{
			Index:   i,
			Row:     row,
			Col:     col,
			RowSpan: rowSpan,
			ColSpan: colSpan,
		})

		col += colSpan
		if col >= columns {
			col = 0
			row++
		}
	}
	return placements
}

// Rows returns the number of grid rows the placements occupy
func Rows(placements []Placement) int {
	n := 0
	for _, p := range placements {
		if end := p.Row + p.RowSpan; end > n {
			n = end
		}
	}
	return n
}
