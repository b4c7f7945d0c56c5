package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hookchat/hookchat/internal/route"
	"github.com/hookchat/hookchat/internal/ui"
)

// windowTitle is the terminal window title
const windowTitle = "hookchat"

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	width, height := ctx.Content()
	m.header.SetWidth(width)
	m.footer.SetWidth(width)
	m.chat.SetSize(width, height)
	m.login.SetSize(width, height)
}

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	v.WindowTitle = windowTitle
	if m.themeReady {
		v.BackgroundColor = ui.ColorBg
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if !m.Ready() {
		return ui.RenderLoading(m.width, m.height)
	}

	// Modal replaces the screen, centered
	if m.modal != nil {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.modal.View(),
		)
	}

	var body string
	if m.group == route.GroupAuthenticated {
		body = m.chat.View()
	} else {
		body = m.login.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		body,
		m.footer.View(),
	)
}
