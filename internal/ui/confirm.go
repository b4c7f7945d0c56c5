package ui

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/hookchat/hookchat/internal/keys"
)

// ModalTheme returns a huh theme that matches the current palette.
// It is called each time a form is created to pick up the current colours.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)

		t.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorButtonText).
			Background(ColorPrimary)
		t.Focused.BlurredButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextMuted)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base

		return t
	})
}

// ConfirmModal is a yes/no dialog. Enter and Escape are left to the caller,
// which reads Confirmed on Enter and closes the modal on Escape.
type ConfirmModal struct {
	title     string
	form      *huh.Form
	confirmed bool
}

// NewConfirmModal creates a dialog asking question, defaulting to the
// affirmative button.
func NewConfirmModal(title, question, affirmative, negative string) *ConfirmModal {
	m := &ConfirmModal{title: title, confirmed: true}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative(affirmative).
				Negative(negative).
				Value(&m.confirmed),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6)

	// Initialize eagerly so the first render is correct
	m.form.Init()
	return m
}

// NewChatConfirmModal asks before discarding the current conversation
func NewChatConfirmModal() *ConfirmModal {
	return NewConfirmModal("New chat", "Clear the current conversation?", "Clear", "Cancel")
}

// Confirmed reports the selected answer
func (m *ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Update forwards everything except Enter and Escape to the form
func (m *ConfirmModal) Update(msg tea.Msg) (*ConfirmModal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return m, nil
		}
	}
	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}
	return m, cmd
}

// View renders the dialog box
func (m *ConfirmModal) View() string {
	title := ModalTitleStyle.Render(m.title)
	help := ModalHelpStyle.Render("←/→ choose • enter confirm • esc cancel")
	return ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.form.View(), help))
}
