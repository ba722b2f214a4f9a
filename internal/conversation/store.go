// Package conversation holds the chat state: the ordered message list and
// the pending input text.
//
// A Store is owned by a single goroutine (the TUI update loop) and is not
// safe for concurrent use.
package conversation

import (
	"strings"

	"github.com/diogo/biotutor/internal/models"
)

// Subscriber is notified with a snapshot after every append
type Subscriber func(messages []models.Message)

// Store is an append-only conversation with one view subscriber
type Store struct {
	messages   []models.Message
	pending    string
	subscriber Subscriber
	requestSeq uint64
}

// New creates a store seeded with the greeting
func New() *Store {
	return &Store{
		messages: []models.Message{models.NewBotMessage(models.GreetingText, nil)},
	}
}

// Subscribe registers the view subscriber, replacing any previous one.
// Passing nil removes it.
func (s *Store) Subscribe(fn Subscriber) {
	s.subscriber = fn
}

// Messages returns a snapshot in insertion order
func (s *Store) Messages() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages
func (s *Store) Len() int {
	return len(s.messages)
}

// AppendUserMessage appends the trimmed text as a user message.
// Whitespace-only text is ignored and false is returned.
func (s *Store) AppendUserMessage(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	s.append(models.NewUserMessage(text))
	return true
}

// AppendBotMessage appends a reply from the backend
func (s *Store) AppendBotMessage(text string, sources []string) {
	s.append(models.NewBotMessage(text, sources))
}

// AppendServerError appends the fixed fallback reply for a failed query
func (s *Store) AppendServerError() {
	s.append(models.NewBotMessage(models.ServerErrorText, nil))
}

// LastBotMessage returns the most recent bot message
func (s *Store) LastBotMessage() (models.Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].IsBot() {
			return s.messages[i], true
		}
	}
	return models.Message{}, false
}

// SourceIndexes returns the indexes of bot messages that carry sources
func (s *Store) SourceIndexes() []int {
	var idx []int
	for i, m := range s.messages {
		if m.HasSources() {
			idx = append(idx, i)
		}
	}
	return idx
}

// At returns the message at index i
func (s *Store) At(i int) (models.Message, bool) {
	if i < 0 || i >= len(s.messages) {
		return models.Message{}, false
	}
	return s.messages[i], true
}

// SetPending replaces the in-progress input text
func (s *Store) SetPending(text string) {
	s.pending = text
}

// Pending returns the in-progress input text
func (s *Store) Pending() string {
	return s.pending
}

// Send turns the pending input into a user message. The pending text is
// cleared immediately, before any reply arrives. When the trimmed input is
// empty nothing changes and ok is false.
func (s *Store) Send() (query string, ok bool) {
	query = strings.TrimSpace(s.pending)
	if query == "" {
		return "", false
	}
	s.pending = ""
	s.AppendUserMessage(query)
	return query, true
}

// NextRequestID returns a sequence number for tagging a submitted query
func (s *Store) NextRequestID() uint64 {
	s.requestSeq++
	return s.requestSeq
}

func (s *Store) append(m models.Message) {
	s.messages = append(s.messages, m)
	if s.subscriber != nil {
		s.subscriber(s.Messages())
	}
}
