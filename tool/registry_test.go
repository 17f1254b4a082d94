package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yakker "github.com/yakker-ai/yakker-go"
)

type searchArgs struct {
	Query string `json:"query" desc:"Search query" required:"true"`
}

func echoHandler(ctx context.Context, call yakker.ToolCall) (string, error) {
	return call.Arguments, nil
}

func TestRegistryRegister(t *testing.T) {
	t.Run("registers a tool", func(t *testing.T) {
		r := NewRegistry()
		err := r.Register(yakker.Tool{Name: "echo", Description: "Echo args"}, echoHandler)

		require.NoError(t, err)
		assert.Equal(t, 1, r.Len())
		assert.Contains(t, r.Names(), "echo")

		h, ok := r.Get("echo")
		assert.True(t, ok)
		assert.NotNil(t, h)

		tl, ok := r.GetTool("echo")
		assert.True(t, ok)
		assert.Equal(t, "Echo args", tl.Description)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(yakker.Tool{Name: "dupe"}, echoHandler))

		err := r.Register(yakker.Tool{Name: "dupe"}, echoHandler)
		var already *ErrToolAlreadyRegistered
		assert.ErrorAs(t, err, &already)
		assert.Equal(t, "dupe", already.Name)
	})

	t.Run("MustRegister panics on duplicate", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(yakker.Tool{Name: "once"}, echoHandler)

		assert.Panics(t, func() {
			r.MustRegister(yakker.Tool{Name: "once"}, echoHandler)
		})
	})

	t.Run("Unregister removes the tool", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(yakker.Tool{Name: "gone"}, echoHandler)

		r.Unregister("gone")

		assert.Equal(t, 0, r.Len())
		_, ok := r.Get("gone")
		assert.False(t, ok)
	})
}

func TestRegistryExecute(t *testing.T) {
	t.Run("returns the handler's content", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(yakker.Tool{Name: "greet"}, func(ctx context.Context, call yakker.ToolCall) (string, error) {
			return "hello", nil
		})

		result, err := r.Execute(context.Background(), yakker.ToolCall{ID: "tc-1", Name: "greet"})

		require.NoError(t, err)
		assert.Equal(t, "tc-1", result.ToolCallID)
		assert.Equal(t, "hello", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("handler failure becomes an error result, not an error", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(yakker.Tool{Name: "flaky"}, func(ctx context.Context, call yakker.ToolCall) (string, error) {
			return "", errors.New("backend unavailable")
		})

		result, err := r.Execute(context.Background(), yakker.ToolCall{ID: "tc-2", Name: "flaky"})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "backend unavailable", result.Content)
		assert.Equal(t, "tc-2", result.ToolCallID)
	})

	t.Run("unknown tool returns ErrToolNotFound", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Execute(context.Background(), yakker.ToolCall{ID: "tc-3", Name: "nope"})

		var notFound *ErrToolNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, "nope", notFound.Name)
	})
}

func TestBind(t *testing.T) {
	t.Run("derives the schema and unmarshals arguments", func(t *testing.T) {
		tl, h, err := Bind("search", "Search the web", func(ctx context.Context, args searchArgs) (string, error) {
			return "found: " + args.Query, nil
		})
		require.NoError(t, err)

		assert.Equal(t, "search", tl.Name)
		assert.Equal(t, "Search the web", tl.Description)
		assert.NotEmpty(t, tl.Parameters)

		out, err := h(context.Background(), yakker.ToolCall{
			ID:        "tc-1",
			Name:      "search",
			Arguments: `{"query":"golang"}`,
		})
		require.NoError(t, err)
		assert.Equal(t, "found: golang", out)
	})

	t.Run("invalid argument JSON is a handler error", func(t *testing.T) {
		_, h := MustBind("search", "Search", func(ctx context.Context, args searchArgs) (string, error) {
			return args.Query, nil
		})

		_, err := h(context.Background(), yakker.ToolCall{
			ID:        "tc-1",
			Name:      "search",
			Arguments: `{not json`,
		})
		assert.Error(t, err)
	})

	t.Run("MustBind panics for non-struct argument types", func(t *testing.T) {
		assert.Panics(t, func() {
			MustBind("bad", "Bad", func(ctx context.Context, args string) (string, error) {
				return args, nil
			})
		})
	})
}

func TestRegisterFunc(t *testing.T) {
	t.Run("registers a typed handler end to end", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, RegisterFunc(r, "search", "Search the web",
			func(ctx context.Context, args searchArgs) (string, error) {
				return "ok: " + args.Query, nil
			}))

		result, err := r.Execute(context.Background(), yakker.ToolCall{
			ID:        "tc-1",
			Name:      "search",
			Arguments: `{"query":"go"}`,
		})
		require.NoError(t, err)
		assert.Equal(t, "ok: go", result.Content)
	})

	t.Run("argument parse failure surfaces as an error result", func(t *testing.T) {
		r := NewRegistry()
		MustRegisterFunc(r, "search", "Search",
			func(ctx context.Context, args searchArgs) (string, error) {
				return args.Query, nil
			})

		result, err := r.Execute(context.Background(), yakker.ToolCall{
			ID:        "tc-1",
			Name:      "search",
			Arguments: `garbage`,
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "invalid arguments")
	})
}
