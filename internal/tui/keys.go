package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Grid navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Home   key.Binding
	End    key.Binding
	Enter  key.Binding
	Filter key.Binding

	// Lightbox
	Prev  key.Binding
	Next  key.Binding
	Close key.Binding

	// Actions
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global key map
var Keys = DefaultKeyMap()

// gridHelp is the footer help while browsing the grid
type gridHelp struct{ k KeyMap }

func (h gridHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Enter, h.k.Filter, h.k.Reload, h.k.Help, h.k.Quit}
}

func (h gridHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.Left, h.k.Right, h.k.Home, h.k.End},
		{h.k.Enter, h.k.Filter, h.k.Reload},
		{h.k.Help, h.k.Quit},
	}
}

// lightboxHelp is the footer help while the lightbox is open
type lightboxHelp struct{ k KeyMap }

func (h lightboxHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Prev, h.k.Next, h.k.Close, h.k.Quit}
}

func (h lightboxHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{h.k.Prev, h.k.Next, h.k.Close}, {h.k.Quit}}
}
