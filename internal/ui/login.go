package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// LoginTitle heads the sign-in form
const LoginTitle = "Welcome Back!"

// EmptyUsernameMessage is flashed when sign-in is attempted without a username
const EmptyUsernameMessage = "Please enter a username."

// Login is the sign-in form shown to signed-out users
type Login struct {
	input  textinput.Model
	width  int
	height int
}

// NewLogin creates the sign-in form
func NewLogin() *Login {
	ti := textinput.New()
	ti.Placeholder = UsernamePlaceholder
	ti.CharLimit = UsernameCharLimit
	ti.Prompt = "› "
	// Border (2) and horizontal padding (6) of LoginBoxStyle, plus the prompt
	ti.SetWidth(LoginWidth - 8 - 2)
	return &Login{input: ti}
}

// SetSize sets the area the form is centered in
func (l *Login) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Focus focuses the username input
func (l *Login) Focus() tea.Cmd {
	return l.input.Focus()
}

// Blur removes focus from the username input
func (l *Login) Blur() {
	l.input.Blur()
}

// Username returns the trimmed username
func (l *Login) Username() string {
	return strings.TrimSpace(l.input.Value())
}

// Reset clears the form
func (l *Login) Reset() {
	l.input.Reset()
}

// Update forwards input to the username field
func (l *Login) Update(msg tea.Msg) (*Login, tea.Cmd) {
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

// View renders the centered form
func (l *Login) View() string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		LoginTitleStyle.Render(LoginTitle),
		l.input.View(),
		LoginButtonStyle.Render("Sign in"),
		LoginHintStyle.Render("press enter to sign in"),
	)
	box := LoginBoxStyle.Render(form)
	if l.width <= 0 || l.height <= 0 {
		return box
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
}

// RenderLoading renders the placeholder shown until state has loaded
func RenderLoading(width, height int) string {
	text := LoadingStyle.Render("Loading...")
	if width <= 0 || height <= 0 {
		return text
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}
