// Package mcp bridges MCP (Model Context Protocol) servers into a yakker
// client's capability set. A [RemoteRegistry] connects to an MCP server,
// mirrors its tool catalog as yakker tool descriptors, and proxies execution
// back to the server; [RemoteRegistry.Attach] wires the whole catalog into a
// local [tool.Registry] so an agent run can invoke remote tools like any
// locally registered handler.
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	yakker "github.com/yakker-ai/yakker-go"
)

// fromMCPTool converts an MCP tool definition into a yakker tool descriptor.
// The parameter schema comes from RawInputSchema when present, otherwise
// from the structured InputSchema.
func fromMCPTool(t mcp.Tool) yakker.Tool {
	var schema json.RawMessage
	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		schema = data
	}

	return yakker.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// toCallToolRequest converts a yakker tool call into an MCP call request.
// The argument string is parsed as JSON when possible; otherwise it is
// passed through verbatim.
func toCallToolRequest(call yakker.ToolCall) mcp.CallToolRequest {
	var args any
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			args = call.Arguments
		}
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      call.Name,
			Arguments: args,
		},
	}
}

// fromCallToolResult flattens an MCP call result into a yakker tool result.
// Text content blocks are concatenated; non-text blocks and structured
// content are serialized as JSON.
func fromCallToolResult(callID string, result *mcp.CallToolResult) yakker.ToolResult {
	if result == nil {
		return yakker.ToolResult{
			ToolCallID: callID,
			IsError:    true,
		}
	}

	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				parts = append(parts, string(data))
			}
		}
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}

	return yakker.ToolResult{
		ToolCallID: callID,
		Content:    strings.Join(parts, "\n"),
		IsError:    result.IsError,
	}
}
