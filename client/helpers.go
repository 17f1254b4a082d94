package client

import (
	"context"

	"github.com/yakker-ai/yakker-go/conversation"
)

// Simple sends a single message to the agent at url and returns the
// response text. A throwaway client and conversation are created for the
// exchange; pass options like WithTransport or WithTimeout to tune it.
func Simple(ctx context.Context, url, content string, opts ...Option) (string, error) {
	return New(url, opts...).Send(ctx, content)
}

// WithHistory sends a message against an existing conversation, preserving
// its prior messages and state. The conversation is updated in place with
// the new exchange.
func WithHistory(ctx context.Context, url string, conv *conversation.Conversation, content string, opts ...Option) (string, error) {
	opts = append(opts, WithConversation(conv))
	return New(url, opts...).Send(ctx, content)
}
