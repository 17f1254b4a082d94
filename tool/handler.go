package tool

import (
	"context"

	yakker "github.com/yakker-ai/yakker-go"
)

// Handler is a function that executes a tool call and returns a result.
// The context supports cancellation and timeout. The call carries the tool
// name, id, and arguments as a JSON string. Returns the result content
// string, or an error if execution failed.
type Handler func(ctx context.Context, call yakker.ToolCall) (string, error)

// TypedHandler is a function that executes a tool call with typed arguments.
// The args parameter is unmarshaled from the call's JSON argument string.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)
