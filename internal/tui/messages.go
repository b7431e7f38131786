package tui

import (
	"github.com/mmcdole/folio/internal/imageinfo"
	"github.com/mmcdole/folio/internal/lightbox"
	"github.com/mmcdole/folio/internal/resolver"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ImagesResolvedMsg carries the resolver outcome. Seq ties it to the
// resolution that produced it so a reload discards older results.
type ImagesResolvedMsg struct {
	Seq    int
	Result resolver.Result
	Err    error
}

// TileLoadedMsg signals that a tile image has been fetched and decoded
type TileLoadedMsg struct {
	Seq   int
	Index int
	Image *imageinfo.Decoded
}

// TileFailedMsg signals that a tile image could not be loaded
type TileFailedMsg struct {
	Seq   int
	Index int
	Err   error
}

// LightboxTickMsg delivers a delayed lightbox presentation step
type LightboxTickMsg struct {
	Tick lightbox.Tick
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
