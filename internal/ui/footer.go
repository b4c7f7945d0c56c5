package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the icon and colour of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// FlashTickMsg drives flash expiry
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry after a delay
func FlashTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

type flash struct {
	text      string
	kind      FlashType
	expiresAt time.Time
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width    int
	bindings []KeyBinding
	flash    *flash
	now      func() time.Time
}

// LoginBindings are shown on the login screen
var LoginBindings = []KeyBinding{
	{Key: "enter", Desc: "sign in"},
	{Key: "ctrl+t", Desc: "theme"},
	{Key: "ctrl+c", Desc: "quit"},
}

// ChatBindings are shown on the chat screen
var ChatBindings = []KeyBinding{
	{Key: "enter", Desc: "send"},
	{Key: "shift+enter", Desc: "newline"},
	{Key: "ctrl+o", Desc: "copy reply"},
	{Key: "ctrl+p", Desc: "menu"},
	{Key: "pgup/dn", Desc: "scroll"},
	{Key: "ctrl+c", Desc: "quit"},
}

// ModalBindings are shown while a confirmation modal is open
var ModalBindings = []KeyBinding{
	{Key: "←/→", Desc: "choose"},
	{Key: "enter", Desc: "confirm"},
	{Key: "esc", Desc: "cancel"},
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: LoginBindings,
		now:      time.Now,
	}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings replaces the key hints
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows text in place of the key hints until FlashDuration passes
func (f *Footer) SetFlash(text string, kind FlashType) {
	f.flash = &flash{text: text, kind: kind, expiresAt: f.now().Add(FlashDuration)}
}

// HasFlash reports whether a flash is showing
func (f *Footer) HasFlash() bool {
	return f.flash != nil
}

// FlashText returns the current flash text, empty when none
func (f *Footer) FlashText() string {
	if f.flash == nil {
		return ""
	}
	return f.flash.text
}

// ClearFlash removes the flash immediately
func (f *Footer) ClearFlash() {
	f.flash = nil
}

// ClearIfExpired removes an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flash == nil || f.now().Before(f.flash.expiresAt) {
		return false
	}
	f.flash = nil
	return true
}

func flashStyle(kind FlashType) (string, lipgloss.Style) {
	switch kind {
	case FlashWarning:
		return "⚠", lipgloss.NewStyle().Foreground(ColorWarning)
	case FlashInfo:
		return "ℹ", lipgloss.NewStyle().Foreground(ColorInfo)
	case FlashSuccess:
		return "✓", lipgloss.NewStyle().Foreground(ColorSuccess)
	default:
		return "✕", lipgloss.NewStyle().Foreground(ColorError)
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flash != nil {
		icon, style := flashStyle(f.flash.kind)
		return FooterStyle.Width(f.width).Render(style.Bold(true).Render(icon + " " + f.flash.text))
	}

	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).MaxHeight(FooterHeight).Render(content)
}
