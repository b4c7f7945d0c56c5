// Package conversation holds the in-memory chat transcript and mediates each
// submission between the input buffer and the webhook.
//
// A submission moves Idle -> Sending -> (Delivered | Failed). The steps are
// exposed separately (Begin, Complete, Fail) so an event loop can mutate state
// on its own goroutine while the network call runs elsewhere; Submit chains
// them for blocking callers.
package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	herrors "github.com/hookchat/hookchat/internal/errors"
	"github.com/hookchat/hookchat/internal/logger"
)

const (
	// ErrorReply is the bot message appended when a submission fails
	ErrorReply = "Error connecting to the bot."
	// FailureNotice is shown once to the user when a submission fails
	FailureNotice = "Could not send message. Please try again."
)

var (
	// ErrEmptyInput is returned by Begin for blank input. Callers treat it as a no-op.
	ErrEmptyInput = errors.New("empty input")
	// ErrAwaitingReply is returned by Begin while a reply is still pending.
	ErrAwaitingReply = errors.New("awaiting reply")
)

// Sender delivers a message and returns the reply text
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// Notifier shows a transient notice to the user
type Notifier interface {
	Notify(text string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(text string)

// Notify calls f(text)
func (f NotifierFunc) Notify(text string) { f(text) }

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

// Option configures a Controller
type Option func(*Controller)

// WithNotifier sets the failure notifier
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Pending is an in-flight submission returned by Begin. It belongs to the
// conversation that was current when it began.
type Pending struct {
	ConversationID string
	UserMessage    Message
	Text           string
}

// Controller owns the message sequence and input buffer of one chat.
type Controller struct {
	sender   Sender
	notifier Notifier
	now      func() time.Time

	mu             sync.Mutex
	conversationID string
	messages       []Message // newest first
	input          string
	awaiting       bool
}

// New creates a controller that delivers through sender.
func New(sender Sender, opts ...Option) *Controller {
	c := &Controller{
		sender:         sender,
		notifier:       noopNotifier{},
		now:            time.Now,
		conversationID: newID(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConversationID identifies the current transcript; it changes on StartNewConversation.
func (c *Controller) ConversationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversationID
}

// SetInput replaces the input buffer
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.input = text
	c.mu.Unlock()
}

// Input returns the input buffer
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Awaiting reports whether a reply is pending
func (c *Controller) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// Messages returns a copy of the transcript, newest first.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Begin starts a submission of text. The user message is recorded and the
// input cleared before any network activity.
func (c *Controller) Begin(text string) (Pending, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Pending{}, ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.awaiting {
		return Pending{}, ErrAwaitingReply
	}

	msg := c.newMessageLocked(trimmed, SenderUser)
	c.messages = prepend(c.messages, msg)
	c.input = ""
	c.awaiting = true

	logger.WithConversation(c.conversationID).Debug("message submitted", "id", msg.ID, "len", len(trimmed))
	return Pending{ConversationID: c.conversationID, UserMessage: msg, Text: trimmed}, nil
}

// Complete records the reply for p. It reports false, and records nothing,
// when the conversation p belongs to has since been cleared.
func (c *Controller) Complete(p Pending, reply string) (Message, bool) {
	c.mu.Lock()
	if p.ConversationID != c.conversationID {
		c.mu.Unlock()
		logger.WithConversation(p.ConversationID).Debug("discarding reply for cleared conversation", "for", p.UserMessage.ID)
		return Message{}, false
	}
	c.awaiting = false
	msg := c.newMessageLocked(reply, SenderBot)
	c.messages = prepend(c.messages, msg)
	c.mu.Unlock()

	logger.WithConversation(p.ConversationID).Debug("reply received", "id", msg.ID, "for", p.UserMessage.ID)
	return msg, true
}

// Fail records the error reply for p and notifies the user once. Like
// Complete it ignores submissions from a cleared conversation.
func (c *Controller) Fail(p Pending, err error) (Message, bool) {
	log := logger.WithConversation(p.ConversationID)

	c.mu.Lock()
	if p.ConversationID != c.conversationID {
		c.mu.Unlock()
		log.Debug("discarding failure for cleared conversation", "for", p.UserMessage.ID, "error", err)
		return Message{}, false
	}
	c.awaiting = false
	msg := c.newMessageLocked(ErrorReply, SenderBot)
	c.messages = prepend(c.messages, msg)
	c.mu.Unlock()

	log.Error("submission failed",
		"for", p.UserMessage.ID, "kind", herrors.GetKind(err).String(), "error", err)
	c.notifier.Notify(FailureNotice)
	return msg, true
}

// Submit runs a whole submission synchronously and returns the bot message.
// The returned error is the delivery failure, if any; the transcript holds the
// error reply in that case.
func (c *Controller) Submit(ctx context.Context, text string) (Message, error) {
	p, err := c.Begin(text)
	if err != nil {
		return Message{}, err
	}

	reply, err := c.sender.Send(ctx, p.Text)
	if err != nil {
		msg, _ := c.Fail(p, err)
		return msg, err
	}
	msg, _ := c.Complete(p, reply)
	return msg, nil
}

// StartNewConversation discards the transcript and input. A reply still in
// flight is dropped when it arrives, so the new conversation can send at once.
func (c *Controller) StartNewConversation() {
	c.mu.Lock()
	old := c.conversationID
	c.messages = nil
	c.input = ""
	c.awaiting = false
	c.conversationID = newID()
	next := c.conversationID
	c.mu.Unlock()

	logger.WithConversation(old).Info("conversation cleared", "next", next)
}

func (c *Controller) newMessageLocked(text string, sender Role) Message {
	return Message{
		ID:        newID(),
		Text:      text,
		Sender:    sender,
		CreatedAt: c.now(),
	}
}

func prepend(messages []Message, m Message) []Message {
	out := make([]Message, 0, len(messages)+1)
	out = append(out, m)
	return append(out, messages...)
}

// newID returns a time-ordered UUIDv7, falling back to a random UUID if the
// clock source fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
