package store

import (
	"sync"

	yakker "github.com/yakker-ai/yakker-go"
)

// MessageStore manages an append-only conversation history.
// It is safe for concurrent use.
type MessageStore struct {
	mu       sync.RWMutex
	messages []yakker.Message
}

// NewMessageStore creates an empty MessageStore.
func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make([]yakker.Message, 0),
	}
}

// NewMessageStoreFrom creates a MessageStore initialized with existing messages.
func NewMessageStoreFrom(messages []yakker.Message) *MessageStore {
	ms := NewMessageStore()
	if len(messages) > 0 {
		ms.messages = make([]yakker.Message, len(messages))
		copy(ms.messages, messages)
	}
	return ms
}

// Messages returns a copy of all messages.
func (m *MessageStore) Messages() []yakker.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]yakker.Message, len(m.messages))
	copy(result, m.messages)
	return result
}

// Append adds messages to the store.
func (m *MessageStore) Append(msgs ...yakker.Message) {
	if len(msgs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msgs...)
}

// Len returns the number of messages.
func (m *MessageStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

// Last returns the last n messages. If n exceeds the total, all are returned.
func (m *MessageStore) Last(n int) []yakker.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	start := len(m.messages) - n
	if start < 0 {
		start = 0
	}
	result := make([]yakker.Message, len(m.messages)-start)
	copy(result, m.messages[start:])
	return result
}

// Clear removes all messages.
func (m *MessageStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = make([]yakker.Message, 0)
}

// Clone creates a deep copy of the MessageStore.
func (m *MessageStore) Clone() *MessageStore {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clone := NewMessageStore()
	if len(m.messages) > 0 {
		clone.messages = make([]yakker.Message, len(m.messages))
		copy(clone.messages, m.messages)
	}
	return clone
}
