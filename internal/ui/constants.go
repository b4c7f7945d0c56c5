package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + BorderSize

	// TypingIndicatorHeight is reserved above the composer while awaiting a reply
	TypingIndicatorHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// BubbleWidthPercent is the share of the viewport a message bubble may use
	BubbleWidthPercent = 80

	// MinTerminalWidth and MinTerminalHeight clamp layout calculations
	MinTerminalWidth  = 30
	MinTerminalHeight = 10
)

// Login form
const (
	LoginWidth          = 44
	UsernameCharLimit   = 64
	UsernamePlaceholder = "Username"
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 50
)

// FlashDuration is how long a footer flash stays visible
const FlashDuration = 3 * time.Second
