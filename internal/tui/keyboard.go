package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/folio/internal/input"
	"github.com/mmcdole/folio/internal/lightbox"
	"github.com/mmcdole/folio/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Close, Keys.Help, Keys.Quit) {
			m.State = m.prevState
		}
		return m, nil

	case StateLoading, StateEmpty:
		switch {
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, Keys.Help):
			m.prevState = m.State
			m.State = StateHelp
		case key.Matches(msg, Keys.Reload):
			return m.reload()
		}
		return m, nil
	}

	// Lightbox owns the keyboard while open
	if state := m.Lightbox.State(); state.IsOpen() {
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		var k input.Key
		switch {
		case key.Matches(msg, Keys.Close):
			k = input.KeyEscape
		case key.Matches(msg, Keys.Prev):
			k = input.KeyLeft
		case key.Matches(msg, Keys.Next):
			k = input.KeyRight
		}
		if ev, ok := m.Router.Key(k, state, m.Gallery.Len()); ok {
			return m, m.dispatch(ev)
		}
		return m, nil
	}

	// Route to the filter input while typing
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.prevState = m.State
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Enter):
		// Reopening is allowed while the previous close is still fading out
		return m, m.openSelected()
	}

	// The grid stays put while the overlay is on screen
	if m.Lightbox.ScrollLocked() {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Close):
		if m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
		}
	case key.Matches(msg, Keys.Filter):
		m.Grid.ToggleFilter()
	case key.Matches(msg, Keys.Reload):
		return m.reload()
	case key.Matches(msg, Keys.Up):
		m.Grid.MoveUp()
	case key.Matches(msg, Keys.Down):
		m.Grid.MoveDown()
	case key.Matches(msg, Keys.Left):
		m.Grid.MoveLeft()
	case key.Matches(msg, Keys.Right):
		m.Grid.MoveRight()
	case key.Matches(msg, Keys.Home):
		m.Grid.Home()
	case key.Matches(msg, Keys.End):
		m.Grid.End()
	}
	return m, nil
}

// handleMouseMsg handles clicks, wheel scrolling and lightbox swipes.
// A drag inside the open lightbox is a swipe; a press and release that
// stays under the threshold is a click.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State != StateBrowsing {
		return m, nil
	}

	if m.Lightbox.Mounted() {
		state := m.Lightbox.State()
		if !state.IsOpen() {
			return m, nil
		}

		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button != tea.MouseButtonLeft {
				return m, nil
			}
			m.Router.TouchStart(msg.X)
			m.pressed = true
			m.pressX = msg.X

		case tea.MouseActionRelease:
			if !m.pressed {
				return m, nil
			}
			m.pressed = false
			dragged := abs(m.pressX-msg.X) > m.Router.Threshold()
			if ev, ok := m.Router.TouchEnd(msg.X, state, m.Gallery.Len()); ok {
				return m, m.dispatch(ev)
			}
			if dragged {
				// swipe past the first or last image
				return m, nil
			}
			return m, m.click(msg.X, msg.Y)
		}
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.Grid.ScrollBy(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.Grid.ScrollBy(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if i, ok := m.Grid.HitTest(msg.X, msg.Y); ok {
			m.Grid.Select(i)
			return m, m.dispatch(lightbox.Open(i))
		}
	}
	return m, nil
}

// click handles a pointer click on the open lightbox
func (m *Model) click(x, y int) tea.Cmd {
	switch m.Overlay.HitTest(x, y) {
	case components.RegionPrev:
		return m.dispatch(lightbox.Prev())
	case components.RegionNext:
		return m.dispatch(lightbox.Next())
	case components.RegionClose, components.RegionBackground:
		return m.dispatch(lightbox.Close())
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
