// Package theme holds the light/dark display preference and the two colour
// palettes it selects between.
package theme

// Palette is the complete set of colour roles the UI draws with.
// Colours are hex strings so they can be handed to lipgloss.Color.
type Palette struct {
	// Surfaces
	Background       string
	HeaderBackground string
	InputBackground  string

	// Text
	Text       string // Primary text
	SubtleText string // Placeholders, hints, typing indicator
	HeaderText string
	InputText  string
	ButtonText string

	// Accents
	Primary     string // Buttons, links, focused borders
	Secondary   string
	InputBorder string

	// Message bubbles
	BubbleUser string
	BubbleBot  string
	TextUser   string
	TextBot    string

	// StatusBar is the foreground style of terminal chrome drawn on top of
	// Background: "dark" for dark glyphs, "light" for light glyphs.
	StatusBar string
}

var lightPalette = Palette{
	Background:       "#FFFFFF",
	Text:             "#000000",
	Primary:          "#007bff",
	Secondary:        "#e5e5ea",
	InputBackground:  "#FFFFFF",
	InputBorder:      "#cccccc",
	InputText:        "#000000",
	StatusBar:        "dark",
	ButtonText:       "#FFFFFF",
	HeaderBackground: "#f8f8f8",
	HeaderText:       "#000000",
	SubtleText:       "#666666",
	BubbleUser:       "#007bff",
	BubbleBot:        "#e5e5ea",
	TextUser:         "#FFFFFF",
	TextBot:          "#000000",
}

var darkPalette = Palette{
	Background:       "#121212",
	Text:             "#FFFFFF",
	Primary:          "#0A84FF",
	Secondary:        "#3A3A3C",
	InputBackground:  "#1C1C1E",
	InputBorder:      "#3A3A3C",
	InputText:        "#FFFFFF",
	StatusBar:        "light",
	ButtonText:       "#FFFFFF",
	HeaderBackground: "#1C1C1E",
	HeaderText:       "#FFFFFF",
	SubtleText:       "#8E8E93",
	BubbleUser:       "#0A84FF",
	BubbleBot:        "#3A3A3C",
	TextUser:         "#FFFFFF",
	TextBot:          "#FFFFFF",
}

// ColorsFor returns the fixed palette for mode. Unknown modes get the light palette.
func ColorsFor(mode Mode) Palette {
	if mode == Dark {
		return darkPalette
	}
	return lightPalette
}
