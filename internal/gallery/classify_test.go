package gallery

import (
	"testing"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          domain.Layout
	}{
		{"ratio 1.5 is landscape", 1500, 1000, domain.LayoutLandscape},
		{"ratio 0.6 is portrait", 600, 1000, domain.LayoutPortrait},
		{"ratio 1.0 is square", 800, 800, domain.LayoutSquare},
		{"ratio exactly 1.2 is square", 1200, 1000, domain.LayoutSquare},
		{"ratio exactly 0.8 is square", 800, 1000, domain.LayoutSquare},
		{"just over 1.2 is landscape", 1201, 1000, domain.LayoutLandscape},
		{"just under 0.8 is portrait", 799, 1000, domain.LayoutPortrait},
		{"zero height is unknown", 100, 0, domain.LayoutUnknown},
		{"negative width is unknown", -1, 100, domain.LayoutUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.width, tt.height))
		})
	}
}

func TestLayoutString(t *testing.T) {
	assert.Equal(t, "landscape", domain.LayoutLandscape.String())
	assert.Equal(t, "portrait", domain.LayoutPortrait.String())
	assert.Equal(t, "square", domain.LayoutSquare.String())
	assert.Equal(t, "", domain.LayoutUnknown.String())
}
