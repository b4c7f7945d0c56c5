package app

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/hookchat/hookchat/internal/conversation"
	"github.com/hookchat/hookchat/internal/keys"
	"github.com/hookchat/hookchat/internal/logger"
	"github.com/hookchat/hookchat/internal/route"
	"github.com/hookchat/hookchat/internal/theme"
	"github.com/hookchat/hookchat/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.BackgroundColorMsg:
		mode := theme.Light
		if msg.IsDark() {
			mode = theme.Dark
		}
		return m, m.resolveTheme(mode)

	case themeGraceExpiredMsg:
		return m, m.resolveTheme(m.configuredTheme())

	case sessionChangedMsg:
		m.sessionReady = m.session.Hydrated()
		return m, m.syncRoute()

	case themeChangedMsg:
		m.themeReady = m.theme.Hydrated()
		m.applyTheme(msg.Mode)
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		logger.Debug("App: Window focused")
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		logger.Debug("App: Window blurred")
		return m, nil

	case ReplyMsg:
		return m.handleReply(msg)

	case ClipboardResultMsg:
		if msg.Err != nil {
			return m, m.ShowFlashError(CopyFailedMessage)
		}
		return m, m.ShowFlashSuccess(CopiedMessage)

	case ui.FlashTickMsg:
		if m.footer.HasFlash() && !m.footer.ClearIfExpired() {
			return m, ui.FlashTick()
		}
		return m, nil

	case ui.StopwatchTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)
	}

	// Cursor blinks, mouse wheel and form internals go to the active component
	if m.modal != nil {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}
	if m.group == route.GroupAuthenticated {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return m, cmd
	}
	login, cmd := m.login.Update(msg)
	m.login = login
	return m, cmd
}

// handleKeyPress handles all keyboard input
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keys.Quit {
		return m, tea.Quit
	}
	if !m.Ready() {
		return m, nil
	}
	if m.modal != nil {
		return m.handleModalKey(msg)
	}
	if key == keys.ToggleTheme {
		return m, m.toggleTheme()
	}
	if m.group == route.GroupAuthenticated {
		return m.handleChatKey(msg)
	}
	return m.handleLoginKey(msg)
}

func (m *Model) handleLoginKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keys.Enter {
		return m, m.submitLogin()
	}
	login, cmd := m.login.Update(msg)
	m.login = login
	return m, cmd
}

func (m *Model) handleChatKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case key == keys.Send:
		return m, m.sendMessage()
	case keys.IsNewline(key):
		m.chat.InsertNewline()
		m.conv.SetInput(m.chat.GetInput())
		return m, nil
	case key == keys.NewChat:
		if m.config.GetConfirmNewChat() {
			m.openModal()
			return m, nil
		}
		return m, m.startNewChat()
	case key == keys.SignOut:
		return m, m.signOut()
	case key == keys.CopyReply:
		return m, m.copyLatestReply()
	case key == keys.Menu:
		return m, m.ShowFlashInfo(MenuMessage)
	}

	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	m.conv.SetInput(m.chat.GetInput())
	return m, cmd
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Enter:
		confirmed := m.modal.Confirmed()
		m.closeModal()
		if confirmed {
			return m, m.startNewChat()
		}
		return m, nil
	case keys.Escape:
		m.closeModal()
		return m, nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) openModal() {
	m.modal = ui.NewChatConfirmModal()
	m.footer.SetBindings(ui.ModalBindings)
}

func (m *Model) closeModal() {
	m.modal = nil
	m.footer.SetBindings(ui.ChatBindings)
}

// submitLogin signs in with the entered username. The username is only
// checked for presence; the stored flag is the whole session.
func (m *Model) submitLogin() tea.Cmd {
	username := m.login.Username()
	if username == "" {
		logger.ComponentLogger("App").Warn("login failed", "reason", "empty username")
		return m.ShowFlashError(ui.EmptyUsernameMessage)
	}
	logger.ComponentLogger("App").Info("signing in", "username", username)
	return func() tea.Msg {
		m.session.SignIn(m.ctx)
		return nil
	}
}

// signOut clears the session and the transcript
func (m *Model) signOut() tea.Cmd {
	m.conv.StartNewConversation()
	m.chat.SetWaiting(false)
	m.chat.ClearInput()
	m.chat.SetMessages(nil)
	m.login.Reset()
	flash := m.ShowFlashInfo(SignedOutMessage)
	return tea.Batch(flash, func() tea.Msg {
		m.session.SignOut(m.ctx)
		return nil
	})
}

func (m *Model) toggleTheme() tea.Cmd {
	return func() tea.Msg {
		m.theme.Toggle(m.ctx)
		return nil
	}
}

func (m *Model) startNewChat() tea.Cmd {
	m.conv.StartNewConversation()
	m.chat.SetWaiting(false)
	m.chat.ClearInput()
	m.chat.SetMessages(nil)
	return m.ShowFlashInfo(NewChatMessage)
}

// sendMessage records the composer text and starts delivery in the background
func (m *Model) sendMessage() tea.Cmd {
	p, err := m.conv.Begin(m.chat.GetInput())
	switch {
	case errors.Is(err, conversation.ErrEmptyInput):
		return nil
	case errors.Is(err, conversation.ErrAwaitingReply):
		return m.ShowFlashWarning(AwaitingMessage)
	case err != nil:
		return m.ShowFlashError(err.Error())
	}

	m.chat.ClearInput()
	m.chat.SetMessages(m.conv.Messages())
	m.chat.SetWaiting(true)

	ctx, sender := m.ctx, m.sender
	deliver := func() tea.Msg {
		reply, err := sender.Send(ctx, p.Text)
		return ReplyMsg{Pending: p, Reply: reply, Err: err}
	}
	return tea.Batch(deliver, ui.StopwatchTick())
}

func (m *Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.Err != nil {
		// Fail raises the flash through the notifier
		if _, ok := m.conv.Fail(msg.Pending, msg.Err); !ok {
			return m, nil
		}
		cmd = ui.FlashTick()
	} else {
		reply, ok := m.conv.Complete(msg.Pending, msg.Reply)
		if !ok {
			return m, nil
		}
		cmd = m.notifyIfAway(reply.Text)
	}
	m.chat.SetWaiting(false)
	m.chat.SetMessages(m.conv.Messages())
	return m, cmd
}

// notifyIfAway raises a desktop notification when the terminal is not focused
func (m *Model) notifyIfAway(reply string) tea.Cmd {
	if m.windowFocused || !m.config.GetNotificationsEnabled() {
		return nil
	}
	notify := m.notifyReply
	return func() tea.Msg {
		// Failures are logged by the notification package
		_ = notify(reply)
		return nil
	}
}

func (m *Model) copyLatestReply() tea.Cmd {
	latest, ok := conversation.LatestReply(m.conv.Messages())
	if !ok {
		return m.ShowFlashInfo(NothingToCopy)
	}
	copyText, text := m.copyText, latest.Text
	return func() tea.Msg {
		return ClipboardResultMsg{Err: copyText(text)}
	}
}
