package models

import "strings"

// Role identifies who authored a message
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message represents a single chat bubble
type Message struct {
	Role    Role
	Text    string
	Sources []string // only meaningful for RoleBot
}

// NewUserMessage creates a user message
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text, Sources: []string{}}
}

// NewBotMessage creates a bot message. A nil sources slice is normalized to empty.
func NewBotMessage(text string, sources []string) Message {
	src := make([]string, len(sources))
	copy(src, sources)
	return Message{Role: RoleBot, Text: text, Sources: src}
}

// IsBot reports whether the message was authored by the backend
func (m Message) IsBot() bool {
	return m.Role == RoleBot
}

// HasSources reports whether a source control should be shown for the message
func (m Message) HasSources() bool {
	return m.IsBot() && len(m.Sources) > 0
}

// SourcesText returns the sources joined for display
func (m Message) SourcesText() string {
	return strings.Join(m.Sources, SourcesSeparator)
}
