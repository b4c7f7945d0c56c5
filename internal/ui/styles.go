package ui

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"

	"github.com/hookchat/hookchat/internal/theme"
)

// Flash colours do not change with the palette
var (
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorInfo    = lipgloss.Color("#06B6D4") // Cyan
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
)

// Palette-driven colours, set by ApplyPalette
var (
	ColorBg          color.Color
	ColorHeaderBg    color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorHeaderText  color.Color
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorInputBg     color.Color
	ColorInputText   color.Color
	ColorButtonText  color.Color
	ColorBubbleUser  color.Color
	ColorBubbleBot   color.Color
	ColorTextUser    color.Color
	ColorTextBot     color.Color
	ColorStatusGlyph color.Color
)

// Header styles
var (
	HeaderStyle     lipgloss.Style
	HeaderHintStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Chat styles
var (
	UserBubbleStyle       lipgloss.Style
	BotBubbleStyle        lipgloss.Style
	TimestampStyle        lipgloss.Style
	EmptyChatStyle        lipgloss.Style
	TypingIndicatorStyle  lipgloss.Style
	StopwatchStyle        lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
)

// Login styles
var (
	LoginBoxStyle    lipgloss.Style
	LoginTitleStyle  lipgloss.Style
	LoginHintStyle   lipgloss.Style
	LoginButtonStyle lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// Status styles
var (
	LoadingStyle lipgloss.Style
)

var (
	paletteMu      sync.RWMutex
	currentPalette theme.Palette
)

func init() {
	ApplyPalette(theme.ColorsFor(theme.Dark))
}

// CurrentPalette returns the palette the styles were last built from
func CurrentPalette() theme.Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return currentPalette
}

// statusGlyphColor maps the palette's status bar style to a foreground colour.
func statusGlyphColor(style string) color.Color {
	if style == "light" {
		return lipgloss.Color("#E5E5EA")
	}
	return lipgloss.Color("#3A3A3C")
}

// ApplyPalette rebuilds every style variable from p.
func ApplyPalette(p theme.Palette) {
	paletteMu.Lock()
	currentPalette = p
	paletteMu.Unlock()

	ColorBg = lipgloss.Color(p.Background)
	ColorHeaderBg = lipgloss.Color(p.HeaderBackground)
	ColorText = lipgloss.Color(p.Text)
	ColorTextMuted = lipgloss.Color(p.SubtleText)
	ColorHeaderText = lipgloss.Color(p.HeaderText)
	ColorPrimary = lipgloss.Color(p.Primary)
	ColorSecondary = lipgloss.Color(p.Secondary)
	ColorBorder = lipgloss.Color(p.InputBorder)
	ColorInputBg = lipgloss.Color(p.InputBackground)
	ColorInputText = lipgloss.Color(p.InputText)
	ColorButtonText = lipgloss.Color(p.ButtonText)
	ColorBubbleUser = lipgloss.Color(p.BubbleUser)
	ColorBubbleBot = lipgloss.Color(p.BubbleBot)
	ColorTextUser = lipgloss.Color(p.TextUser)
	ColorTextBot = lipgloss.Color(p.TextBot)
	ColorStatusGlyph = statusGlyphColor(p.StatusBar)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeaderText).
		Background(ColorHeaderBg)

	HeaderHintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Background(ColorHeaderBg)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorStatusGlyph).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorStatusGlyph)

	UserBubbleStyle = lipgloss.NewStyle().
		Foreground(ColorTextUser).
		Background(ColorBubbleUser).
		Padding(0, 1)

	BotBubbleStyle = lipgloss.NewStyle().
		Foreground(ColorTextBot).
		Background(ColorBubbleBot).
		Padding(0, 1)

	TimestampStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Faint(true)

	EmptyChatStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	TypingIndicatorStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	StopwatchStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	LoginBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 3).
		Width(LoginWidth)

	LoginTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		MarginBottom(1)

	LoginHintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1)

	LoginButtonStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorButtonText).
		Background(ColorPrimary).
		Padding(0, 2).
		MarginTop(1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	LoadingStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)
}
