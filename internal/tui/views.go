package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/folio/internal/tui/styles"
)

// Shown when no images could be resolved
var placeholderLines = []string{
	"No images found in the images folder.",
	"Please add your photography images to the images/ folder.",
	"Supported formats: JPG, PNG, GIF, WebP, BMP, TIFF",
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	contentHeight := max(m.Height-ChromeHeight, 0)

	var content string
	switch m.State {
	case StateLoading:
		content = lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center,
			m.Spinner.View()+" "+styles.DimStyle.Render("Finding images..."))
	case StateEmpty:
		content = m.renderPlaceholder(contentHeight)
	default:
		if m.Lightbox.Mounted() {
			content = m.Overlay.Render(m.lightboxContent())
		} else {
			content = m.Grid.View()
		}
	}

	return content + "\n" + m.renderFooter()
}

func (m Model) renderPlaceholder(height int) string {
	lines := make([]string, len(placeholderLines))
	for i, l := range placeholderLines {
		if i == 0 {
			lines[i] = styles.TitleStyle.Render(l)
			continue
		}
		lines[i] = styles.SubtitleStyle.Render(l)
	}
	lines = append(lines, "", styles.AccentStyle.Render("r")+styles.DimStyle.Render(" retry"))
	return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner + progress, or status message
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.pending > 0:
		done := m.Gallery.Len() - m.pending
		left = m.Spinner.View() + " " + styles.DimStyle.Render(fmt.Sprintf("Loading %d/%d", done, m.Gallery.Len()))
	case m.State == StateBrowsing:
		left = styles.DimStyle.Render(fmt.Sprintf("%d images via %s", m.Gallery.VisibleCount(), m.source))
	}

	// Right side: key hints for the current mode
	var right string
	if m.Lightbox.State().IsOpen() {
		right = m.Help.View(lightboxHelp{Keys})
	} else {
		right = m.Help.View(gridHelp{Keys})
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := newHelp()
	h.ShowAll = true
	h.Width = m.Width

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("GALLERY"),
		h.View(gridHelp{Keys}),
		"",
		styles.TitleStyle.Render("LIGHTBOX"),
		h.View(lightboxHelp{Keys}),
		styles.DimStyle.Render("drag left or right to swipe · click outside to close"),
		"",
		styles.DimStyle.Render("Press ? or Esc to close help"),
	)

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, body)
}
