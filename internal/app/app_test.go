package app

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/hookchat/hookchat/internal/conversation"
	herrors "github.com/hookchat/hookchat/internal/errors"
	"github.com/hookchat/hookchat/internal/keys"
	"github.com/hookchat/hookchat/internal/route"
	"github.com/hookchat/hookchat/internal/session"
	"github.com/hookchat/hookchat/internal/theme"
	"github.com/hookchat/hookchat/internal/ui"
)

func TestLoadingUntilHydrated(t *testing.T) {
	e := newTestEnv(t, testConfig(t), nil)
	m := e.m

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !strings.Contains(m.RenderToString(), "Loading...") {
		t.Error("expected placeholder before hydration")
	}

	// Keys are ignored until ready
	typeText(m, "ada")
	if m.login.Username() != "" {
		t.Error("input accepted before hydration")
	}

	e.run(t, m.hydrateSession(), 0)
	if m.Ready() {
		t.Error("should wait for the theme as well")
	}

	e.run(t, m.resolveTheme(theme.Dark), 0)
	if !m.Ready() {
		t.Fatal("expected ready after both hydrations")
	}
	if strings.Contains(m.RenderToString(), "Loading...") {
		t.Error("placeholder still shown after hydration")
	}
}

func TestRoute_AfterHydration(t *testing.T) {
	tests := []struct {
		name  string
		seed  map[string]string
		group route.Group
		want  string
	}{
		{"signed out", nil, route.GroupPublic, ui.LoginTitle},
		{"signed in", map[string]string{session.Key: "true"}, route.GroupAuthenticated, "Say hello"},
		{"garbage flag", map[string]string{session.Key: "yes"}, route.GroupPublic, ui.LoginTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t, testConfig(t), tt.seed)
			e.hydrate(t)

			if e.m.Group() != tt.group {
				t.Errorf("Group() = %v, want %v", e.m.Group(), tt.group)
			}
			if view := ansi.Strip(e.m.RenderToString()); !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q", tt.want)
			}
		})
	}
}

func TestLogin_EmptyUsername(t *testing.T) {
	e := newTestEnv(t, testConfig(t), nil)
	e.hydrate(t)

	typeText(e.m, "   ")
	press(e.m, keys.Enter)

	if got := e.m.FlashText(); got != ui.EmptyUsernameMessage {
		t.Errorf("flash = %q, want %q", got, ui.EmptyUsernameMessage)
	}
	if e.m.session.IsAuthenticated() {
		t.Error("empty username should not sign in")
	}
	if _, ok := e.stored(t, session.Key); ok {
		t.Error("nothing should be persisted")
	}
}

func TestLogin_SignsIn(t *testing.T) {
	e := newTestEnv(t, testConfig(t), nil)
	e.hydrate(t)

	typeText(e.m, "ada")
	cmd := press(e.m, keys.Enter)
	e.run(t, cmd, 0)

	if e.m.Group() != route.GroupAuthenticated {
		t.Errorf("Group() = %v, want authenticated", e.m.Group())
	}
	if v, ok := e.stored(t, session.Key); !ok || v != "true" {
		t.Errorf("stored flag = %q, %v", v, ok)
	}
	if !e.m.chat.IsFocused() {
		t.Error("composer should take focus on the chat screen")
	}
}

func TestSignOut(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	send(t, e.m, "hello")

	cmd := press(e.m, keys.SignOut)
	// The flash timer comes first in the batch
	e.run(t, cmd, 1)

	if e.m.Group() != route.GroupPublic {
		t.Errorf("Group() = %v, want public", e.m.Group())
	}
	if _, ok := e.stored(t, session.Key); ok {
		t.Error("session flag should be removed")
	}
	if n := len(e.m.Conversation().Messages()); n != 0 {
		t.Errorf("transcript should be cleared, has %d messages", n)
	}
	if e.m.FlashText() != SignedOutMessage {
		t.Errorf("flash = %q", e.m.FlashText())
	}
}

func TestSignOut_DropsPendingReply(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	m := e.m

	typeText(m, "secret question")
	stale := press(m, keys.Enter)

	e.run(t, press(m, keys.SignOut), 1)
	typeText(m, "bob")
	e.run(t, press(m, keys.Enter), 0)

	if m.Group() != route.GroupAuthenticated {
		t.Fatalf("Group() = %v, want authenticated", m.Group())
	}
	if m.Conversation().Awaiting() || m.chat.IsWaiting() {
		t.Error("the next session should not wait on the previous reply")
	}

	typeText(m, "hi")
	next := press(m, keys.Enter)
	if got := m.FlashText(); got == AwaitingMessage {
		t.Fatalf("send was blocked by the previous session")
	}

	m.Update(runAt(t, stale, 0))
	msgs := m.Conversation().Messages()
	if len(msgs) != 1 || msgs[0].Text != "hi" {
		t.Fatalf("messages = %+v, want only the new question", msgs)
	}
	if !m.Conversation().Awaiting() || !m.chat.IsWaiting() {
		t.Error("the stale reply must not end the current wait")
	}

	m.Update(runAt(t, next, 0))
	msgs = m.Conversation().Messages()
	if len(msgs) != 2 || msgs[0].Text != "world" || msgs[1].Text != "hi" {
		t.Errorf("messages = %+v, want reply to hi", msgs)
	}
}

func TestNewChat_DropsPendingFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.ConfirmNewChat = false
	e := signedInEnv(t, cfg)
	e.sender.err = herrors.WebhookStatus("http://bot", 502)

	typeText(e.m, "hello")
	stale := press(e.m, keys.Enter)
	press(e.m, keys.NewChat)

	e.m.Update(runAt(t, stale, 0))

	if n := len(e.m.Conversation().Messages()); n != 0 {
		t.Errorf("cleared chat got %d messages", n)
	}
	if got := e.m.FlashText(); got != NewChatMessage {
		t.Errorf("flash = %q, want %q", got, NewChatMessage)
	}
}

func TestSend_HelloWorld(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	m := e.m

	typeText(m, "hello")
	cmd := press(m, keys.Enter)

	msgs := m.Conversation().Messages()
	if len(msgs) != 1 || msgs[0].Text != "hello" || !msgs[0].IsUser() {
		t.Fatalf("user message should be recorded before delivery: %+v", msgs)
	}
	if m.chat.GetInput() != "" {
		t.Error("composer should clear on send")
	}
	if !m.chat.IsWaiting() {
		t.Error("typing indicator should show while awaiting")
	}
	if view := ansi.Strip(m.RenderToString()); !strings.Contains(view, ui.TypingText) {
		t.Error("view missing typing indicator")
	}

	m.Update(runAt(t, cmd, 0))

	msgs = m.Conversation().Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Text != "world" || msgs[0].Sender != conversation.SenderBot {
		t.Errorf("newest message = %+v, want bot world", msgs[0])
	}
	if m.chat.IsWaiting() {
		t.Error("typing indicator should hide after the reply")
	}
	if calls := e.sender.Calls(); len(calls) != 1 || calls[0] != "hello" {
		t.Errorf("sender calls = %v", calls)
	}
	if view := ansi.Strip(m.RenderToString()); !strings.Contains(view, "world") {
		t.Error("view missing reply")
	}
}

func TestSend_Failure(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	e.sender.err = herrors.WebhookStatus("http://bot", 500)

	send(t, e.m, "hello")

	msgs := e.m.Conversation().Messages()
	if len(msgs) != 2 || msgs[0].Text != conversation.ErrorReply {
		t.Fatalf("messages = %+v, want error reply on top", msgs)
	}
	if got := e.m.FlashText(); got != conversation.FailureNotice {
		t.Errorf("flash = %q, want %q", got, conversation.FailureNotice)
	}
	if e.m.Conversation().Awaiting() {
		t.Error("failure should end the wait")
	}
}

func TestSend_EmptyInputIgnored(t *testing.T) {
	e := signedInEnv(t, testConfig(t))

	typeText(e.m, "  ")
	if cmd := press(e.m, keys.Enter); cmd != nil {
		t.Error("blank input should not start a request")
	}
	if len(e.m.Conversation().Messages()) != 0 {
		t.Error("blank input should not be recorded")
	}
	if len(e.sender.Calls()) != 0 {
		t.Error("sender should not be called")
	}
}

func TestSend_WhileAwaitingKeepsInput(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	m := e.m

	typeText(m, "first")
	pending := press(m, keys.Enter)

	typeText(m, "second")
	press(m, keys.Enter)

	if got := m.FlashText(); got != AwaitingMessage {
		t.Errorf("flash = %q, want %q", got, AwaitingMessage)
	}
	if got := m.chat.GetInput(); got != "second" {
		t.Errorf("input = %q, want it kept", got)
	}
	if n := len(m.Conversation().Messages()); n != 1 {
		t.Errorf("got %d messages, want 1", n)
	}

	m.Update(runAt(t, pending, 0))
	press(m, keys.Enter)
	if n := len(m.Conversation().Messages()); n != 3 {
		t.Errorf("second message should send after the reply, have %d messages", n)
	}
}

func TestComposer_ShiftEnterInsertsNewline(t *testing.T) {
	e := signedInEnv(t, testConfig(t))

	typeText(e.m, "a")
	press(e.m, keys.ShiftEnter)
	typeText(e.m, "b")

	if got := e.m.chat.GetInput(); got != "a\nb" {
		t.Errorf("input = %q", got)
	}
	if got := e.m.Conversation().Input(); got != "a\nb" {
		t.Errorf("controller input = %q", got)
	}
}

func TestNewChat_Confirmation(t *testing.T) {
	tests := []struct {
		name    string
		confirm string
		cleared bool
	}{
		{"enter confirms", keys.Enter, true},
		{"esc cancels", keys.Escape, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := signedInEnv(t, testConfig(t))
			send(t, e.m, "hello")

			press(e.m, keys.NewChat)
			if !e.m.ModalVisible() {
				t.Fatal("expected confirmation modal")
			}
			if view := ansi.Strip(e.m.RenderToString()); !strings.Contains(view, "Clear the current conversation?") {
				t.Error("modal not rendered")
			}

			press(e.m, tt.confirm)
			if e.m.ModalVisible() {
				t.Error("modal should close")
			}
			cleared := len(e.m.Conversation().Messages()) == 0
			if cleared != tt.cleared {
				t.Errorf("cleared = %v, want %v", cleared, tt.cleared)
			}
			if tt.cleared && e.m.FlashText() != NewChatMessage {
				t.Errorf("flash = %q", e.m.FlashText())
			}
		})
	}
}

func TestNewChat_WithoutConfirmation(t *testing.T) {
	cfg := testConfig(t)
	cfg.ConfirmNewChat = false
	e := signedInEnv(t, cfg)
	send(t, e.m, "hello")
	oldID := e.m.Conversation().ConversationID()

	press(e.m, keys.NewChat)

	if e.m.ModalVisible() {
		t.Error("modal should be skipped")
	}
	if len(e.m.Conversation().Messages()) != 0 {
		t.Error("transcript should be cleared")
	}
	if e.m.Conversation().ConversationID() == oldID {
		t.Error("a new conversation should start")
	}
	if !e.m.session.IsAuthenticated() {
		t.Error("new chat must not touch the session")
	}
}

func TestToggleTheme(t *testing.T) {
	e := signedInEnv(t, testConfig(t))

	cmd := press(e.m, keys.ToggleTheme)
	e.run(t, cmd, 0)

	if got := ui.CurrentPalette(); got != theme.ColorsFor(theme.Light) {
		t.Error("palette should switch to light")
	}
	if v, ok := e.stored(t, theme.Key); !ok || v != string(theme.Light) {
		t.Errorf("stored theme = %q, %v", v, ok)
	}

	cmd = press(e.m, keys.ToggleTheme)
	e.run(t, cmd, 0)
	if got := ui.CurrentPalette(); got != theme.ColorsFor(theme.Dark) {
		t.Error("palette should switch back to dark")
	}
}

func TestToggleTheme_OnLoginScreen(t *testing.T) {
	e := newTestEnv(t, testConfig(t), nil)
	e.hydrate(t)

	cmd := press(e.m, keys.ToggleTheme)
	e.run(t, cmd, 0)
	if e.m.theme.Mode() != theme.Light {
		t.Errorf("Mode() = %v, want light", e.m.theme.Mode())
	}
	if e.m.login.Username() != "" {
		t.Error("shortcut should not reach the username input")
	}
}

func TestSystemTheme(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.Msg
		config string
		seed   map[string]string
		want   theme.Mode
	}{
		{"dark terminal", tea.BackgroundColorMsg{Color: color.Black}, "light", nil, theme.Dark},
		{"light terminal", tea.BackgroundColorMsg{Color: color.White}, "dark", nil, theme.Light},
		{"no answer uses config", themeGraceExpiredMsg{}, "light", nil, theme.Light},
		{"stored wins", tea.BackgroundColorMsg{Color: color.Black}, "dark", map[string]string{theme.Key: "light"}, theme.Light},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.DefaultTheme = tt.config
			e := newTestEnv(t, cfg, tt.seed)

			_, cmd := e.m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected theme hydration to start")
			}
			e.run(t, cmd, 0)
			if got := e.m.theme.Mode(); got != tt.want {
				t.Errorf("Mode() = %v, want %v", got, tt.want)
			}
			if got := ui.CurrentPalette(); got != theme.ColorsFor(tt.want) {
				t.Error("palette not applied")
			}
		})
	}
}

func TestSystemTheme_FirstAnswerWins(t *testing.T) {
	e := newTestEnv(t, testConfig(t), nil)

	_, cmd := e.m.Update(themeGraceExpiredMsg{})
	if cmd == nil {
		t.Fatal("expected hydration")
	}
	if _, late := e.m.Update(tea.BackgroundColorMsg{Color: color.White}); late != nil {
		t.Error("a late terminal answer should be ignored")
	}
}

func TestCopyLatestReply(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	var copied string
	e.m.copyText = func(text string) error {
		copied = text
		return nil
	}

	press(e.m, keys.CopyReply)
	if e.m.FlashText() != NothingToCopy {
		t.Errorf("flash = %q, want %q", e.m.FlashText(), NothingToCopy)
	}

	send(t, e.m, "hello")
	cmd := press(e.m, keys.CopyReply)
	e.run(t, cmd, 0)

	if copied != "world" {
		t.Errorf("copied %q, want world", copied)
	}
	if e.m.FlashText() != CopiedMessage {
		t.Errorf("flash = %q", e.m.FlashText())
	}
}

func TestCopyLatestReply_Failure(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	e.m.copyText = func(string) error { return errors.New("no display") }

	send(t, e.m, "hello")
	cmd := press(e.m, keys.CopyReply)
	e.run(t, cmd, 0)

	if e.m.FlashText() != CopyFailedMessage {
		t.Errorf("flash = %q", e.m.FlashText())
	}
}

func TestMenuPlaceholder(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	press(e.m, keys.Menu)
	if e.m.FlashText() != MenuMessage {
		t.Errorf("flash = %q, want %q", e.m.FlashText(), MenuMessage)
	}
}

func TestNotifications(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		blurred bool
		want    bool
	}{
		{"blurred and enabled", true, true, true},
		{"focused", true, false, false},
		{"disabled", false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.NotificationsEnabled = tt.enabled
			e := signedInEnv(t, cfg)

			var notified []string
			e.m.notifyReply = func(reply string) error {
				notified = append(notified, reply)
				return nil
			}
			if tt.blurred {
				e.m.Update(tea.BlurMsg{})
			}

			typeText(e.m, "hello")
			cmd := press(e.m, keys.Enter)
			_, notify := e.m.Update(runAt(t, cmd, 0))
			if notify != nil {
				notify()
			}

			if got := len(notified) == 1; got != tt.want {
				t.Errorf("notified = %v, want %v", notified, tt.want)
			}
			if tt.want && notified[0] != "world" {
				t.Errorf("notification body = %q", notified[0])
			}
		})
	}
}

func TestFocusRestoresQuietMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.NotificationsEnabled = true
	e := signedInEnv(t, cfg)
	e.m.notifyReply = func(string) error {
		t.Error("should not notify while focused")
		return nil
	}

	e.m.Update(tea.BlurMsg{})
	e.m.Update(tea.FocusMsg{})

	typeText(e.m, "hello")
	cmd := press(e.m, keys.Enter)
	if _, notify := e.m.Update(runAt(t, cmd, 0)); notify != nil {
		notify()
	}
}

func TestQuit(t *testing.T) {
	e := newTestEnv(t, testConfig(t), nil)
	// Quit works even before hydration
	cmd := press(e.m, keys.Quit)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestView(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	v := e.m.View()

	if !v.AltScreen || !v.ReportFocus {
		t.Error("expected alt screen and focus reporting")
	}
	if v.BackgroundColor == nil {
		t.Error("background should follow the palette")
	}
	if v.WindowTitle != "hookchat" {
		t.Errorf("WindowTitle = %q", v.WindowTitle)
	}
}

func TestFlashExpires(t *testing.T) {
	e := signedInEnv(t, testConfig(t))
	press(e.m, keys.Menu)

	if _, cmd := e.m.Update(ui.FlashTickMsg{}); cmd == nil {
		t.Error("a fresh flash should keep ticking")
	}
	e.m.footer.ClearFlash()
	if _, cmd := e.m.Update(ui.FlashTickMsg{}); cmd != nil {
		t.Error("no flash, no tick")
	}
}
