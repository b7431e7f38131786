// Package imageinfo decodes image resources for the gallery: header-only
// decoding for probes and classification, and downscaled previews with a
// dominant colour swatch for tiles and the lightbox.
package imageinfo

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"  // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/mmcdole/folio/internal/domain"
)

// Default preview bounds in pixels
const (
	PreviewMaxWidth  = 320
	PreviewMaxHeight = 240
)

// MaxPixels bounds the size of an image that is fully decoded
const MaxPixels = 32 << 20

// Config is the decoded header of an image
type Config struct {
	Width  int
	Height int
	Format string
}

// DecodeConfig reads just enough of r to learn the image size
func DecodeConfig(r io.Reader) (Config, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", domain.ErrNotAnImage, err)
	}
	return Config{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Decoded is a fully decoded image reduced for display
type Decoded struct {
	Width   int // original pixel size
	Height  int
	Format  string
	Preview image.Image
	Swatch  colorful.Color
}

// Decode reads the whole image, scales it into a preview and extracts its dominant colour.
// The header is checked first; images above MaxPixels are rejected undecoded.
func Decode(r io.Reader) (*Decoded, error) {
	var header bytes.Buffer
	cfg, err := DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, err
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds the pixel limit", domain.ErrNotAnImage, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotAnImage, err)
	}

	b := img.Bounds()
	preview := Scale(img, PreviewMaxWidth, PreviewMaxHeight)
	return &Decoded{
		Width:   b.Dx(),
		Height:  b.Dy(),
		Format:  format,
		Preview: preview,
		Swatch:  Swatch(preview),
	}, nil
}

// Scale fits img inside maxW x maxH keeping the aspect ratio.
// Images already inside the bounds are returned as-is.
func Scale(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return img
	}
	if w <= maxW && h <= maxH {
		return img
	}

	tw, th := FitSize(w, h, maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FitSize returns the largest size with the aspect ratio of w x h that fits maxW x maxH
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	tw, th := maxW, h*maxW/w
	if th > maxH {
		tw, th = w*maxH/h, maxH
	}
	return max(tw, 1), max(th, 1)
}

// Swatch returns the dominant colour of img, mid-gray when there is none
func Swatch(img image.Image) colorful.Color {
	if c, ok := colorful.MakeColor(dominantcolor.Find(img)); ok {
		return c
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
