// Package ui provides the visual components of the hookchat TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   Login form  or  message viewport                  │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Composer (chat only)                                │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line, key hints or a flash message)       │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton holding the layout calculations. All size
// calculations should go through it so components agree on dimensions.
//
// Header: Title bar with a gradient from the palette's primary colour into
// the header background.
//
// Footer: Context-aware key hints, replaced by a flash message while one is
// active. Flashes expire after FlashDuration.
//
// Login: Username form shown to signed-out users.
//
// Chat: Message bubbles in a scrolling viewport above a textarea composer.
// Fenced code in bot replies is syntax highlighted.
//
// ConfirmModal: Yes/no dialog built on huh, used before clearing a chat.
//
// # Styles
//
// Styles live in styles.go as package variables and are rebuilt from a
// theme.Palette by ApplyPalette whenever the light/dark mode changes.
package ui
