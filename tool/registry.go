// Package tool manages the capability set a client offers to the agent:
// a registry mapping tool names to a descriptor (name, description, JSON
// parameter schema) and an executable handler. The registry's descriptors
// populate each outbound request's tool list; its handlers resolve the tool
// calls the agent streams back.
package tool

import (
	"context"
	"sync"

	yakker "github.com/yakker-ai/yakker-go"
)

// registeredTool combines a tool descriptor with its handler.
type registeredTool struct {
	tool    yakker.Tool
	handler Handler
}

// Registry manages registered tools and their handlers.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]registeredTool),
	}
}

// Register adds a tool with its handler to the registry.
// Returns an error if a tool with the same name is already registered.
func (r *Registry) Register(t yakker.Tool, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return &ErrToolAlreadyRegistered{Name: t.Name}
	}
	r.tools[t.Name] = registeredTool{tool: t, handler: handler}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(t yakker.Tool, handler Handler) {
	if err := r.Register(t, handler); err != nil {
		panic(err)
	}
}

// Unregister removes a tool from the registry.
// It is a no-op if the tool is not registered.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// Get retrieves a handler by tool name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return rt.handler, true
}

// GetTool retrieves a tool descriptor by name.
func (r *Registry) GetTool(name string) (yakker.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return yakker.Tool{}, false
	}
	return rt.tool, true
}

// Tools returns all registered tool descriptors.
// This populates the tool list of outbound requests.
func (r *Registry) Tools() []yakker.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]yakker.Tool, 0, len(r.tools))
	for _, rt := range r.tools {
		tools = append(tools, rt.tool)
	}
	return tools
}

// Names returns the names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute runs the handler for a tool call and returns a ToolResult.
// If the tool is not found, returns ErrToolNotFound.
// If the handler fails, the failure is captured in the result's IsError flag
// with the error text as content, so the agent can react to it; handler
// errors never propagate.
func (r *Registry) Execute(ctx context.Context, call yakker.ToolCall) (yakker.ToolResult, error) {
	r.mu.RLock()
	rt, ok := r.tools[call.Name]
	r.mu.RUnlock()

	if !ok {
		return yakker.ToolResult{}, &ErrToolNotFound{Name: call.Name}
	}

	content, err := rt.handler(ctx, call)
	if err != nil {
		return yakker.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
		}, nil
	}

	return yakker.ToolResult{
		ToolCallID: call.ID,
		Content:    content,
	}, nil
}

// RegisterFunc registers a tool with a typed handler. The handler's argument
// struct supplies the JSON parameter schema via yakker.SchemaFor, and the
// call's argument string is unmarshaled into it before invocation. An
// argument string that fails to parse surfaces as a handler error, which
// Execute converts into an error result.
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	t, handler, err := Bind(name, description, fn)
	if err != nil {
		return err
	}
	return r.Register(t, handler)
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := RegisterFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}
