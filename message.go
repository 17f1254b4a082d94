package yakker

import "github.com/google/uuid"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message represents a single message in a conversation.
// Field names follow the AG-UI protocol wire format.
type Message struct {
	// ID is a unique identifier for the message.
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	// ToolCalls contains tool invocation requests carried by an assistant
	// message. Only populated when Role is RoleAssistant.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	// ToolCallID ties a tool-result message back to the call it resolves.
	// Only populated when Role is RoleTool.
	ToolCallID string `json:"toolCallId,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// NewMessage creates a message with a generated ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:      GenerateMessageID(),
		Role:    role,
		Content: content,
	}
}

// NewToolResultMessage creates the tool-role message that resolves a single
// tool call. Content is always a string because the AG-UI message format
// requires string content.
func NewToolResultMessage(result ToolResult) Message {
	return Message{
		ID:         GenerateMessageID(),
		Role:       RoleTool,
		Content:    result.Content,
		ToolCallID: result.ToolCallID,
	}
}
