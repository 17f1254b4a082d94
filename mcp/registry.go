package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	yakker "github.com/yakker-ai/yakker-go"
	"github.com/yakker-ai/yakker-go/tool"
)

// RemoteRegistry mirrors the tool catalog of an MCP server and proxies
// execution to it. The catalog is cached locally; call Refresh to pick up
// server-side changes. Safe for concurrent use.
type RemoteRegistry struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]yakker.Tool
}

// NewRemoteRegistry connects to an MCP server launched as a subprocess over
// stdio. command is the server executable path; env and args are passed
// through to it.
func NewRemoteRegistry(ctx context.Context, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("mcp: create stdio client: %w", err)
	}
	return newRemoteRegistry(ctx, c)
}

// NewRemoteRegistrySSE connects to an MCP server over SSE at baseURL.
func NewRemoteRegistrySSE(ctx context.Context, baseURL string) (*RemoteRegistry, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("mcp: create sse client: %w", err)
	}
	return newRemoteRegistry(ctx, c)
}

func newRemoteRegistry(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("mcp: start client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "yakker-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("mcp: initialize session: %w", err)
	}

	r := &RemoteRegistry{
		client: c,
		tools:  make(map[string]yakker.Tool),
	}
	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("mcp: list tools: %w", err)
	}
	return r, nil
}

// Close shuts down the connection to the MCP server.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Refresh re-fetches the server's tool catalog.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]yakker.Tool, len(result.Tools))
	for _, t := range result.Tools {
		r.tools[t.Name] = fromMCPTool(t)
	}
	return nil
}

// Tools returns all cached tool descriptors.
func (r *RemoteRegistry) Tools() []yakker.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]yakker.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	return tools
}

// GetTool retrieves a cached tool descriptor by name.
func (r *RemoteRegistry) GetTool(name string) (yakker.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// Names returns the names of all cached tools.
func (r *RemoteRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of cached tools.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Has reports whether the catalog contains a tool with the given name.
func (r *RemoteRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Execute invokes a tool on the remote server. Server-side failures are
// folded into the result's IsError flag rather than returned as errors, so
// the agent sees the failure as a tool outcome.
func (r *RemoteRegistry) Execute(ctx context.Context, call yakker.ToolCall) (yakker.ToolResult, error) {
	result, err := r.client.CallTool(ctx, toCallToolRequest(call))
	if err != nil {
		return yakker.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
		}, nil
	}
	return fromCallToolResult(call.ID, result), nil
}

// Attach registers every cached remote tool on a local registry, with a
// proxy handler that forwards execution to the MCP server. Descriptors
// already registered under the same name cause an error.
func (r *RemoteRegistry) Attach(reg *tool.Registry) error {
	for _, t := range r.Tools() {
		handler := func(ctx context.Context, call yakker.ToolCall) (string, error) {
			result, err := r.Execute(ctx, call)
			if err != nil {
				return "", err
			}
			if result.IsError {
				return "", fmt.Errorf("mcp: remote tool %s failed: %s", call.Name, result.Content)
			}
			return result.Content, nil
		}
		if err := reg.Register(t, handler); err != nil {
			return err
		}
	}
	return nil
}
