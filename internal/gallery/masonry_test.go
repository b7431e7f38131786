package gallery

import (
	"testing"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/stretchr/testify/assert"
)

func entries(layouts ...domain.Layout) []domain.ImageEntry {
	out := make([]domain.ImageEntry, len(layouts))
	for i, l := range layouts {
		out[i] = domain.ImageEntry{ID: string(rune('a' + i)), Layout: l}
	}
	return out
}

func TestPackSquaresFillRows(t *testing.T) {
	sq := domain.LayoutSquare
	got := Pack(entries(sq, sq, sq, sq, sq), 4)

	assert.Len(t, got, 5)
	assert.Equal(t, Placement{Index: 3, Row: 0, Col: 3, RowSpan: 1, ColSpan: 1}, got[3])
	assert.Equal(t, Placement{Index: 4, Row: 1, Col: 0, RowSpan: 1, ColSpan: 1}, got[4])
	assert.Equal(t, 2, Rows(got))
}

func TestPackLandscapeWrapsWhenItDoesNotFit(t *testing.T) {
	sq, land := domain.LayoutSquare, domain.LayoutLandscape
	got := Pack(entries(sq, sq, land), 3)

	assert.Equal(t, Placement{Index: 2, Row: 1, Col: 0, RowSpan: 1, ColSpan: 2}, got[2])
}

func TestPackPortraitReservesTwoRows(t *testing.T) {
	sq, port := domain.LayoutSquare, domain.LayoutPortrait
	got := Pack(entries(port, sq, sq, sq), 2)

	assert.Equal(t, Placement{Index: 0, Row: 0, Col: 0, RowSpan: 2, ColSpan: 1}, got[0])
	assert.Equal(t, Placement{Index: 1, Row: 0, Col: 1, RowSpan: 1, ColSpan: 1}, got[1])
	// Column 0 of row 1 is taken by the portrait tile.
	assert.Equal(t, Placement{Index: 2, Row: 1, Col: 1, RowSpan: 1, ColSpan: 1}, got[2])
	assert.Equal(t, Placement{Index: 3, Row: 2, Col: 0, RowSpan: 1, ColSpan: 1}, got[3])
}

func TestPackSkipsHidden(t *testing.T) {
	e := entries(domain.LayoutSquare, domain.LayoutSquare, domain.LayoutSquare)
	e[1].Hidden = true

	got := Pack(e, 4)

	assert.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, 1, got[1].Col)
}

func TestPackSingleColumnLandscape(t *testing.T) {
	got := Pack(entries(domain.LayoutLandscape), 1)
	assert.Equal(t, 1, got[0].ColSpan)
}
