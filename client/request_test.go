package client

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yakker "github.com/yakker-ai/yakker-go"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestBuildRequest(t *testing.T) {
	t.Run("rejects an empty message list", func(t *testing.T) {
		_, err := buildRequest("thread-1", nil, nil, nil, testLogger())
		assert.ErrorIs(t, err, yakker.ErrNoMessages)
	})

	t.Run("produces the full wire payload", func(t *testing.T) {
		msgs := []yakker.Message{
			{ID: "msg-1", Role: yakker.RoleUser, Content: "hi"},
		}
		state := map[string]any{"mode": "test"}
		tools := []yakker.Tool{{Name: "search", Description: "Search"}}

		payload, err := buildRequest("thread-1", msgs, state, tools, testLogger())
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(payload, &m))

		assert.Equal(t, "thread-1", m["threadId"])
		assert.NotEmpty(t, m["runId"])
		assert.Equal(t, "test", m["state"].(map[string]any)["mode"])

		// Always-present envelope fields, even when empty.
		assert.Contains(t, m, "context")
		assert.Contains(t, m, "forwardedProps")
		assert.NotNil(t, m["context"])
		assert.NotNil(t, m["forwardedProps"])

		wireMsgs := m["messages"].([]any)
		require.Len(t, wireMsgs, 1)
		first := wireMsgs[0].(map[string]any)
		assert.Equal(t, "user", first["role"])
		assert.Equal(t, "hi", first["content"])

		wireTools := m["tools"].([]any)
		require.Len(t, wireTools, 1)
		assert.Equal(t, "search", wireTools[0].(map[string]any)["name"])
	})

	t.Run("fresh run id per request", func(t *testing.T) {
		msgs := []yakker.Message{{Role: yakker.RoleUser, Content: "hi"}}

		first, err := buildRequest("t", msgs, nil, nil, testLogger())
		require.NoError(t, err)
		second, err := buildRequest("t", msgs, nil, nil, testLogger())
		require.NoError(t, err)

		var a, b map[string]any
		require.NoError(t, json.Unmarshal(first, &a))
		require.NoError(t, json.Unmarshal(second, &b))
		assert.NotEqual(t, a["runId"], b["runId"])
		assert.Equal(t, a["threadId"], b["threadId"])
	})

	t.Run("nil state and tools serialize as empty, not null", func(t *testing.T) {
		msgs := []yakker.Message{{Role: yakker.RoleUser, Content: "hi"}}

		payload, err := buildRequest("t", msgs, nil, nil, testLogger())
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(payload, &m))
		assert.NotNil(t, m["state"])
		assert.NotNil(t, m["tools"])
	})

	t.Run("history without a user message still builds", func(t *testing.T) {
		msgs := []yakker.Message{{Role: yakker.RoleSystem, Content: "be terse"}}

		_, err := buildRequest("t", msgs, nil, nil, testLogger())
		assert.NoError(t, err)
	})
}

func TestToWireMessage(t *testing.T) {
	t.Run("assistant tool calls use the nested function form", func(t *testing.T) {
		msg := yakker.Message{
			ID:   "msg-1",
			Role: yakker.RoleAssistant,
			ToolCalls: []yakker.ToolCall{
				{ID: "tc-1", Name: "search", Arguments: `{"q":"go"}`},
			},
		}

		data, err := json.Marshal(toWireMessage(msg))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))

		calls := m["toolCalls"].([]any)
		require.Len(t, calls, 1)
		call := calls[0].(map[string]any)
		assert.Equal(t, "tc-1", call["id"])
		assert.Equal(t, "function", call["type"])

		fn := call["function"].(map[string]any)
		assert.Equal(t, "search", fn["name"])
		assert.Equal(t, `{"q":"go"}`, fn["arguments"])
	})

	t.Run("tool result messages keep toolCallId", func(t *testing.T) {
		msg := yakker.Message{
			Role:       yakker.RoleTool,
			Content:    "42",
			ToolCallID: "tc-1",
		}

		data, err := json.Marshal(toWireMessage(msg))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "tc-1", m["toolCallId"])
		assert.NotContains(t, m, "toolCalls")
	})
}
