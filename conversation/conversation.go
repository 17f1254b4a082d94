// Package conversation maintains the durable side of a client exchange:
// the append-only message log and the cross-turn shared state snapshot.
// The orchestrator reads it when building requests and commits completed
// turns into it; partial state from an abandoned turn is never committed.
package conversation

import (
	yakker "github.com/yakker-ai/yakker-go"
	"github.com/yakker-ai/yakker-go/store"
)

// Conversation holds message history and shared state for multi-message,
// multi-step exchanges.
type Conversation struct {
	messages *store.MessageStore
	state    *store.State
}

// New creates an empty conversation, optionally seeded with initial state.
func New(initState map[string]any) *Conversation {
	return &Conversation{
		messages: store.NewMessageStore(),
		state:    store.NewStateFrom(initState),
	}
}

// AddMessage appends a new message with the given role and content and
// returns the created message.
func (c *Conversation) AddMessage(role yakker.Role, content string) yakker.Message {
	msg := yakker.NewMessage(role, content)
	c.messages.Append(msg)
	return msg
}

// Append adds fully-formed messages to the history.
func (c *Conversation) Append(msgs ...yakker.Message) {
	c.messages.Append(msgs...)
}

// Messages returns a copy of all messages in the conversation.
func (c *Conversation) Messages() []yakker.Message {
	return c.messages.Messages()
}

// Len returns the number of messages in the conversation.
func (c *Conversation) Len() int {
	return c.messages.Len()
}

// ClearMessages removes all messages from the history.
func (c *Conversation) ClearMessages() {
	c.messages.Clear()
}

// State returns a shallow copy of the shared state.
func (c *Conversation) State() map[string]any {
	return c.state.Data()
}

// MergeState performs a shallow merge of newState into the shared state:
// every top-level key in newState overwrites the existing value, keys absent
// from newState are left untouched.
func (c *Conversation) MergeState(newState map[string]any) {
	c.state.Merge(newState)
}

// SetStateItem stores a single value in the shared state.
func (c *Conversation) SetStateItem(key string, value any) {
	c.state.Set(key, value)
}

// RemoveStateItem removes a specific key from the shared state.
func (c *Conversation) RemoveStateItem(key string) {
	c.state.Delete(key)
}

// ClearState empties the shared state.
func (c *Conversation) ClearState() {
	c.state.Clear()
}
