// Package yakker is a Go client engine for the AG-UI protocol.
//
// AG-UI servers expose conversational agents over a streamed, line-delimited
// event feed (Server-Sent Events). yakker sends a user message together with
// the running conversation, consumes the incremental response stream,
// reconstructs the agent's text and any requested tool calls, optionally
// executes those calls through registered handlers, and resumes the exchange
// automatically until the agent produces a final answer.
//
// The root package holds the shared data types (Message, Tool, ToolCall,
// ToolResult) and the reflective JSON-schema builder used to describe tool
// handlers. The concern packages build on them:
//
//   - sse: decodes raw "data: {...}" protocol lines into events
//   - stream: reduces an ordered event sequence into a turn result
//   - store, conversation: message history and shared state
//   - tool: the capability registry mapping tool names to handlers
//   - client: the multi-turn orchestrator and HTTP transport
//   - mcp: bridges tools from an MCP server into the registry
//
// Most applications only need the client package:
//
//	c := client.New("http://localhost:8000/agent")
//	client.RegisterFunc(c, "approve", "Ask the user for approval",
//	    func(ctx context.Context, args ApproveArgs) (string, error) {
//	        return "true", nil
//	    })
//	for ev := range c.Stream(ctx, "Please delete the file") {
//	    if ev.Type == client.EventTextDelta {
//	        fmt.Print(ev.Delta)
//	    }
//	}
package yakker
