package gallery

import "github.com/mmcdole/folio/internal/domain"

// Aspect ratio thresholds for masonry classification.
// Comparisons are strict: a ratio of exactly 1.2 or 0.8 is square.
const (
	LandscapeRatio = 1.2
	PortraitRatio  = 0.8
)

// Classify returns the layout class for an image of the given pixel size
func Classify(width, height int) domain.Layout {
	if width <= 0 || height <= 0 {
		return domain.LayoutUnknown
	}

	ratio := float64(width) / float64(height)
	switch {
	case ratio > LandscapeRatio:
		return domain.LayoutLandscape
	case ratio < PortraitRatio:
		return domain.LayoutPortrait
	default:
		return domain.LayoutSquare
	}
}
