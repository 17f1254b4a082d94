package yakker

import "encoding/json"

// Tool describes a capability that the agent may invoke.
// It is sent in the request's tool list so the agent knows what it can ask for.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string `json:"name"`
	// Description explains what the tool does (helps the agent decide when to use it).
	Description string `json:"description"`
	// Parameters is a JSON Schema object defining the tool's arguments.
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// ToolCall represents a request from the agent to invoke a tool.
// Arguments is a JSON-encoded string assembled from streamed fragments.
type ToolCall struct {
	// ID is a unique identifier for this call (used to match results).
	ID string `json:"id"`
	// Name is the name of the tool to invoke.
	Name string `json:"name"`
	// Arguments is a JSON string containing the arguments to pass.
	Arguments string `json:"arguments"`
}

// ToolResult represents the outcome of executing a tool call.
type ToolResult struct {
	// ToolCallID matches the ID from the corresponding ToolCall.
	ToolCallID string `json:"toolCallId"`
	// Content is the result content to return to the agent.
	Content string `json:"content"`
	// IsError indicates if the result represents an error.
	IsError bool `json:"isError,omitempty"`
}
