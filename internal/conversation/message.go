package conversation

import "time"

// Role identifies who authored a message
type Role string

const (
	SenderUser Role = "user"
	SenderBot  Role = "bot"
)

// Message is one immutable transcript entry
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Role      `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// IsUser reports whether the user wrote m
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// LatestReply returns the newest bot message in a newest-first sequence.
func LatestReply(messages []Message) (Message, bool) {
	for _, m := range messages {
		if m.Sender == SenderBot {
			return m, true
		}
	}
	return Message{}, false
}
