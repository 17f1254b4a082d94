package client

import (
	"encoding/json"
	"log/slog"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	yakker "github.com/yakker-ai/yakker-go"
)

// RunAgentInput is the request payload posted to the agent endpoint for
// each turn. Field names follow the AG-UI wire convention.
type RunAgentInput struct {
	ThreadID       string         `json:"threadId"`
	RunID          string         `json:"runId"`
	Messages       []wireMessage  `json:"messages"`
	State          map[string]any `json:"state"`
	Tools          []yakker.Tool  `json:"tools"`
	Context        []any          `json:"context"`
	ForwardedProps map[string]any `json:"forwardedProps"`
}

// wireMessage is the on-the-wire shape of a conversation message.
// Assistant tool invocations travel in the nested function form.
type wireMessage struct {
	ID         string         `json:"id,omitempty"`
	Role       yakker.Role    `json:"role"`
	Content    string         `json:"content,omitempty"`
	ToolCalls  []wireToolCall `json:"toolCalls,omitempty"`
	ToolCallID string         `json:"toolCallId,omitempty"`
}

type wireToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function wireFunctionCall `json:"function"`
}

type wireFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

func toWireMessage(msg yakker.Message) wireMessage {
	wm := wireMessage{
		ID:         msg.ID,
		Role:       msg.Role,
		Content:    msg.Content,
		ToolCallID: msg.ToolCallID,
	}
	for _, tc := range msg.ToolCalls {
		wm.ToolCalls = append(wm.ToolCalls, wireToolCall{
			ID:   tc.ID,
			Type: "function",
			Function: wireFunctionCall{
				Name:      tc.Name,
				Arguments: tc.Arguments,
			},
		})
	}
	return wm
}

// buildRequest assembles and serializes the run payload for a turn.
// A fresh run id is generated per request; the thread id is stable across
// the conversation. Returns ErrNoMessages when the history is empty.
func buildRequest(threadID string, messages []yakker.Message, state map[string]any, tools []yakker.Tool, logger *slog.Logger) ([]byte, error) {
	if len(messages) == 0 {
		return nil, yakker.ErrNoMessages
	}

	hasUser := false
	for _, m := range messages {
		if m.Role == yakker.RoleUser {
			hasUser = true
			break
		}
	}
	if !hasUser {
		logger.Warn("run request contains no user message")
	}

	wire := make([]wireMessage, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, toWireMessage(m))
	}

	if state == nil {
		state = map[string]any{}
	}
	if tools == nil {
		tools = []yakker.Tool{}
	}

	input := RunAgentInput{
		ThreadID:       threadID,
		RunID:          events.GenerateRunID(),
		Messages:       wire,
		State:          state,
		Tools:          tools,
		Context:        []any{},
		ForwardedProps: map[string]any{},
	}

	return json.Marshal(input)
}
