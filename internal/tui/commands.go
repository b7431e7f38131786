package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/folio/internal/lightbox"
)

// Command factories for async operations

// ResolveCmd resolves the image list. Resolution failures, including
// domain.ErrNoImages, come back in the message rather than as ErrMsg.
func ResolveCmd(r ImageResolver, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := r.Resolve(ctx)
		return ImagesResolvedMsg{Seq: seq, Result: res, Err: err}
	}
}

// LoadTileCmd fetches and decodes one tile image
func LoadTileCmd(l TileLoader, seq, index int, url string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		img, err := l.Fetch(ctx, url)
		if err != nil {
			return TileFailedMsg{Seq: seq, Index: index, Err: err}
		}
		return TileLoadedMsg{Seq: seq, Index: index, Image: img}
	}
}

// LightboxTickCmd delivers t back to the model after its delay
func LightboxTickCmd(t lightbox.Tick) tea.Cmd {
	return tea.Tick(t.After, func(time.Time) tea.Msg {
		return LightboxTickMsg{Tick: t}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
