package tool

import (
	"context"
	"encoding/json"
	"fmt"

	yakker "github.com/yakker-ai/yakker-go"
)

// Bind creates a Tool descriptor and Handler from a typed function.
// The JSON schema for the tool's parameters is generated from struct tags
// on type T.
//
// Example:
//
//	type ApproveArgs struct {
//	    Action string `json:"action" desc:"Action requiring approval" required:"true"`
//	    Amount int    `json:"amount" desc:"Amount involved"`
//	}
//
//	t, h, err := tool.Bind("approve", "Ask the user to approve an action",
//	    func(ctx context.Context, args ApproveArgs) (string, error) {
//	        return "true", nil
//	    })
func Bind[T any](name, description string, fn TypedHandler[T]) (yakker.Tool, Handler, error) {
	schema, err := yakker.SchemaFor[T]()
	if err != nil {
		return yakker.Tool{}, nil, err
	}

	t := yakker.Tool{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}

	handler := func(ctx context.Context, call yakker.ToolCall) (string, error) {
		var args T
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", fmt.Errorf("tool: %s: invalid arguments: %w", call.Name, err)
		}
		return fn(ctx, args)
	}

	return t, handler, nil
}

// MustBind is like Bind but panics on error.
// Useful in initialization code where errors should be fatal.
func MustBind[T any](name, description string, fn TypedHandler[T]) (yakker.Tool, Handler) {
	t, h, err := Bind(name, description, fn)
	if err != nil {
		panic(err)
	}
	return t, h
}
