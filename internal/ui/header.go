package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Header represents the top header bar
type Header struct {
	width int
	title string
	hints string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{title: "hookchat"}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetTitle sets the title shown on the left
func (h *Header) SetTitle(title string) {
	h.title = title
}

// SetHints sets the muted text shown on the right
func (h *Header) SetHints(hints string) {
	h.hints = hints
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + h.title
	rightText := ""
	if h.hints != "" {
		rightText = h.hints + " "
	}

	// Hints are dropped before the title is truncated
	if runewidth.StringWidth(titleText)+runewidth.StringWidth(rightText) > h.width {
		rightText = ""
	}
	titleText = runewidth.Truncate(titleText, max(h.width, 0), "…")

	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	return h.renderGradient(titleText+strings.Repeat(" ", paddingLen), rightText)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the title over a gradient from the primary colour
// into the header background, then the hints on the plain header background.
func (h *Header) renderGradient(content, hints string) string {
	if content == "" && hints == "" {
		return ""
	}

	p := CurrentPalette()
	startR, startG, startB := parseHexColor(p.Primary)
	endR, endG, endB := parseHexColor(p.HeaderBackground)

	titleLen := runewidth.StringWidth(" " + h.title)
	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(ColorHeaderText).
			Bold(i < titleLen)

		result.WriteString(style.Render(string(r)))
	}

	if hints != "" {
		result.WriteString(HeaderHintStyle.Render(hints))
	}
	return result.String()
}
