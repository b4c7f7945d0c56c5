package ui

import (
	"bytes"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/hookchat/hookchat/internal/conversation"
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// wrapText wraps plain text to width, breaking long words when needed
func wrapText(text string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	return ansi.Wrap(text, width, " -")
}

// renderMarkdown wraps prose and syntax highlights fenced code blocks.
// Code lines are not wrapped; they are cut at width instead.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result []string
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlockContent strings.Builder

	flushCode := func() {
		highlighted := highlightCode(codeBlockContent.String(), codeBlockLang)
		for _, l := range strings.Split(highlighted, "\n") {
			result = append(result, ansi.Truncate(l, width, "…"))
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				codeBlockContent.Reset()
			} else {
				inCodeBlock = false
				flushCode()
				codeBlockLang = ""
			}
			continue
		}

		if inCodeBlock {
			if codeBlockContent.Len() > 0 {
				codeBlockContent.WriteString("\n")
			}
			codeBlockContent.WriteString(line)
			continue
		}
		result = append(result, wrapText(line, width))
	}

	// Unterminated fence: highlight what we have
	if inCodeBlock {
		flushCode()
	}

	return strings.Join(result, "\n")
}

// bubbleWidth is the widest a bubble's text may be for a viewport width.
func bubbleWidth(viewportWidth int) int {
	if viewportWidth <= 0 {
		viewportWidth = DefaultWrapWidth
	}
	// Padding(0, 1) on the bubble styles takes two cells
	return max(viewportWidth*BubbleWidthPercent/100-2, 10)
}

// renderBubble draws one message: user messages right-aligned in the primary
// colour, bot messages left-aligned with highlighted code.
func renderBubble(msg conversation.Message, viewportWidth int) string {
	if viewportWidth <= 0 {
		viewportWidth = DefaultWrapWidth
	}
	inner := bubbleWidth(viewportWidth)
	text := strings.TrimSpace(msg.Text)

	var body string
	var style lipgloss.Style
	align := lipgloss.Left
	if msg.IsUser() {
		body = wrapText(text, inner)
		style = UserBubbleStyle
		align = lipgloss.Right
	} else {
		body = renderMarkdown(text, inner)
		style = BotBubbleStyle
	}

	bubble := style.Render(body)
	stamp := TimestampStyle.Render(formatTimestamp(msg.CreatedAt))
	block := lipgloss.JoinVertical(align, bubble, stamp)
	return lipgloss.PlaceHorizontal(viewportWidth, align, block)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("15:04")
}

// renderTranscript renders a newest-first message sequence oldest at the top.
func renderTranscript(messages []conversation.Message, width int) string {
	if len(messages) == 0 {
		return EmptyChatStyle.Render("Say hello to start the conversation.")
	}
	parts := make([]string, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		parts = append(parts, renderBubble(messages[i], width))
	}
	return strings.Join(parts, "\n\n")
}
