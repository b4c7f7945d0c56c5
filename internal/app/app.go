package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hookchat/hookchat/internal/clipboard"
	"github.com/hookchat/hookchat/internal/config"
	"github.com/hookchat/hookchat/internal/conversation"
	"github.com/hookchat/hookchat/internal/logger"
	"github.com/hookchat/hookchat/internal/notification"
	"github.com/hookchat/hookchat/internal/route"
	"github.com/hookchat/hookchat/internal/session"
	"github.com/hookchat/hookchat/internal/theme"
	"github.com/hookchat/hookchat/internal/ui"
)

// ThemeGracePeriod is how long the app waits for the terminal to report its
// background colour before falling back to the configured default theme.
const ThemeGracePeriod = 300 * time.Millisecond

// Status messages shown in the footer
const (
	NewChatMessage    = "Previous messages cleared."
	MenuMessage       = "Chat history feature coming soon!"
	AwaitingMessage   = "Wait for the current reply before sending."
	NothingToCopy     = "No reply to copy yet."
	CopiedMessage     = "Reply copied to clipboard."
	CopyFailedMessage = "Could not copy to clipboard."
	SignedOutMessage  = "Signed out."
	chatTitle         = "Chat"
	loginTitle        = "hookchat"
	chatHeaderHints   = "ctrl+n new • ctrl+t theme • ctrl+l sign out"
	loginHeaderHints  = "ctrl+t theme"
)

// Deps are the services the shell drives. Sender is usually a *webhook.Client.
type Deps struct {
	Config  *config.Config
	Session *session.Store
	Theme   *theme.Preference
	Sender  conversation.Sender
}

// Model is the main Bubble Tea model
type Model struct {
	ctx     context.Context
	config  *config.Config
	version string

	session *session.Store
	theme   *theme.Preference
	sender  conversation.Sender
	conv    *conversation.Controller

	header *ui.Header
	footer *ui.Footer
	login  *ui.Login
	chat   *ui.Chat
	modal  *ui.ConfirmModal

	width  int
	height int
	group  route.Group

	sessionReady  bool
	themeReady    bool
	themeResolved bool // a system default has been chosen and hydration started

	windowFocused bool

	// Side effects, replaced in tests
	copyText    func(text string) error
	notifyReply func(reply string) error
}

// themeGraceExpiredMsg ends the wait for the terminal background colour
type themeGraceExpiredMsg struct{}

// sessionChangedMsg is forwarded from the session store after hydration,
// sign-in and sign-out
type sessionChangedMsg struct {
	Authenticated bool
}

// themeChangedMsg is forwarded from the theme preference after hydration and
// every toggle
type themeChangedMsg struct {
	Mode theme.Mode
}

// ReplyMsg carries the outcome of a webhook submission
type ReplyMsg struct {
	Pending conversation.Pending
	Reply   string
	Err     error
}

// ClipboardResultMsg reports the outcome of copying a reply
type ClipboardResultMsg struct {
	Err error
}

// New creates a new app model. The context bounds every background command.
func New(ctx context.Context, deps Deps, version string) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:           ctx,
		config:        deps.Config,
		version:       version,
		session:       deps.Session,
		theme:         deps.Theme,
		sender:        deps.Sender,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		login:         ui.NewLogin(),
		chat:          ui.NewChat(),
		group:         route.GroupPublic,
		windowFocused: true,
		copyText:      clipboard.WriteText,
		notifyReply:   notification.ReplyReceived,
	}
	m.conv = conversation.New(deps.Sender, conversation.WithNotifier(conversation.NotifierFunc(func(text string) {
		m.footer.SetFlash(text, ui.FlashError)
	})))
	m.applyGroup()
	return m
}

// Init starts hydration and asks the terminal for its background colour
func (m *Model) Init() tea.Cmd {
	logger.ComponentLogger("App").Info("starting", "version", m.version)
	return tea.Batch(
		m.hydrateSession(),
		tea.RequestBackgroundColor,
		tea.Tick(ThemeGracePeriod, func(time.Time) tea.Msg { return themeGraceExpiredMsg{} }),
	)
}

// Ready reports whether hydration has finished and the window has a size
func (m *Model) Ready() bool {
	return m.sessionReady && m.themeReady && m.width > 0 && m.height > 0
}

// Group returns the screen group currently shown
func (m *Model) Group() route.Group {
	return m.group
}

// Conversation exposes the controller driving the chat screen
func (m *Model) Conversation() *conversation.Controller {
	return m.conv
}

// FlashText returns the footer flash, empty when none is showing
func (m *Model) FlashText() string {
	return m.footer.FlashText()
}

// ModalVisible reports whether the new-chat confirmation is open
func (m *Model) ModalVisible() bool {
	return m.modal != nil
}

// Watch forwards session and theme changes to send, usually
// (*tea.Program).Send. The returned function stops forwarding.
func (m *Model) Watch(send func(tea.Msg)) (stop func()) {
	stopSession := m.session.Subscribe(func(authenticated bool) {
		send(sessionChangedMsg{Authenticated: authenticated})
	})
	stopTheme := m.theme.Subscribe(func(mode theme.Mode) {
		send(themeChangedMsg{Mode: mode})
	})
	return func() {
		stopSession()
		stopTheme()
	}
}

// hydrateSession reads the persisted flag; the result arrives through Watch
func (m *Model) hydrateSession() tea.Cmd {
	return func() tea.Msg {
		m.session.Hydrate(m.ctx)
		return nil
	}
}

// resolveTheme hydrates the preference with systemDefault. Only the first
// call starts hydration; later answers from the terminal are ignored.
func (m *Model) resolveTheme(systemDefault theme.Mode) tea.Cmd {
	if m.themeResolved {
		return nil
	}
	m.themeResolved = true
	logger.ComponentLogger("App").Debug("system theme resolved", "mode", systemDefault)
	return func() tea.Msg {
		m.theme.Hydrate(m.ctx, systemDefault)
		return nil
	}
}

// configuredTheme is the fallback when the terminal does not report a colour
func (m *Model) configuredTheme() theme.Mode {
	if mode, ok := theme.ParseMode(m.config.GetDefaultTheme()); ok {
		return mode
	}
	return theme.Dark
}

// syncRoute applies the route rule after hydration or a session change
func (m *Model) syncRoute() tea.Cmd {
	if !m.sessionReady {
		return nil
	}
	next, redirect := route.Decide(m.session.IsAuthenticated(), m.group)
	if !redirect {
		return nil
	}
	logger.ComponentLogger("App").Info("route changed", "from", m.group, "to", next)
	m.group = next
	return m.applyGroup()
}

// applyGroup moves focus and key hints to the screen of the current group
func (m *Model) applyGroup() tea.Cmd {
	m.modal = nil
	if m.group == route.GroupAuthenticated {
		m.header.SetTitle(chatTitle)
		m.header.SetHints(chatHeaderHints)
		m.footer.SetBindings(ui.ChatBindings)
		m.login.Blur()
		return m.chat.SetFocused(true)
	}
	m.header.SetTitle(loginTitle)
	m.header.SetHints(loginHeaderHints)
	m.footer.SetBindings(ui.LoginBindings)
	m.chat.SetFocused(false)
	return m.login.Focus()
}

// applyTheme rebuilds the styles from mode and re-renders the transcript
func (m *Model) applyTheme(mode theme.Mode) {
	ui.ApplyPalette(theme.ColorsFor(mode))
	m.chat.SetMessages(m.conv.Messages())
}
