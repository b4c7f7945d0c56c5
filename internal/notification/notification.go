// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"strings"

	"github.com/gen2brain/beeep"
	"github.com/mattn/go-runewidth"

	"github.com/hookchat/hookchat/internal/logger"
)

// Title is the notification title for every hookchat notification
const Title = "hookchat"

// MaxBodyWidth is the display width a reply preview is truncated to
const MaxBodyWidth = 80

// notifyFunc is swapped out in tests
var notifyFunc = beeep.Notify

// SetNotifier replaces the function used to deliver notifications
func SetNotifier(fn func(title, message string, icon any) error) {
	notifyFunc = fn
}

// ResetNotifier restores the beeep notifier
func ResetNotifier() {
	notifyFunc = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.ComponentLogger("Notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon lets beeep pick the platform default
	err := notifyFunc(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// ReplyReceived announces a bot reply, previewing its first line.
func ReplyReceived(reply string) error {
	return Send(Title, Preview(reply, MaxBodyWidth))
}

// Preview returns the first non-blank line of text truncated to width cells.
func Preview(text string, width int) string {
	line := ""
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if line == "" {
		return "New reply"
	}
	return runewidth.Truncate(line, width, "…")
}
