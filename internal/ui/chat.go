package ui

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hookchat/hookchat/internal/conversation"
	"github.com/hookchat/hookchat/internal/keys"
)

// TypingText is shown while a reply is pending
const TypingText = "Agent is responding..."

// StopwatchTickMsg is sent to update the typing indicator stopwatch
type StopwatchTickMsg time.Time

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Chat is the message viewport and composer of the chat screen
type Chat struct {
	viewport      viewport.Model
	input         textarea.Model
	width         int
	height        int
	focused       bool
	messages      []conversation.Message // newest first
	waiting       bool
	waitStartTime time.Time
	now           func() time.Time
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		now:      time.Now,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	vc := GetViewContext()

	viewportHeight := height - InputTotalHeight
	if c.waiting {
		viewportHeight -= TypingIndicatorHeight
	}
	c.viewport.SetWidth(width)
	c.viewport.SetHeight(max(viewportHeight, 1))

	// Input width accounts for its own border AND padding
	c.input.SetWidth(max(vc.InnerWidth(width)-InputPaddingWidth, 1))
	c.updateContent()
}

// SetFocused sets the focus state of the composer
func (c *Chat) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused returns whether the composer has focus
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetMessages replaces the rendered transcript (newest first)
func (c *Chat) SetMessages(messages []conversation.Message) {
	c.messages = messages
	c.updateContent()
}

// GetInput returns the composer text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// SetInput replaces the composer text
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// ClearInput empties the composer
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// InsertNewline adds a line break at the cursor
func (c *Chat) InsertNewline() {
	c.input.InsertRune('\n')
}

// SetWaiting toggles the typing indicator
func (c *Chat) SetWaiting(waiting bool) {
	if waiting && !c.waiting {
		c.waitStartTime = c.now()
	}
	c.waiting = waiting
	c.SetSize(c.width, c.height)
}

// IsWaiting returns whether the typing indicator is shown
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

func (c *Chat) updateContent() {
	c.viewport.SetContent(renderTranscript(c.messages, c.viewport.Width()))
	c.viewport.GotoBottom()
}

func (c *Chat) typingIndicator() string {
	elapsed := c.now().Sub(c.waitStartTime)
	return TypingIndicatorStyle.Render(TypingText+" ") + StopwatchStyle.Render(formatElapsed(elapsed))
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case StopwatchTickMsg:
		if c.waiting {
			return c, StopwatchTick()
		}
		return c, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.PgUp, keys.PgDown:
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		if !c.focused {
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	if c.focused {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Mouse wheel and other non-key events scroll the transcript
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	input := inputStyle.Width(c.width).Render(c.input.View())

	sections := []string{c.viewport.View()}
	if c.waiting {
		sections = append(sections, c.typingIndicator())
	}
	sections = append(sections, input)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
