// Package client implements the run orchestrator: it posts conversation
// turns to an AG-UI agent endpoint, consumes the event stream each turn
// produces, executes the tool calls the agent requests against a local
// registry, and loops until the agent finishes or a turn cap is reached.
package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	yakker "github.com/yakker-ai/yakker-go"
	"github.com/yakker-ai/yakker-go/conversation"
	"github.com/yakker-ai/yakker-go/tool"
)

// DefaultMaxTurns caps how many request/response turns a single run may
// take before it is stopped with TerminationMaxTurns.
const DefaultMaxTurns = 10

// Client drives multi-turn exchanges with an AG-UI agent endpoint.
type Client struct {
	url          string
	transport    Transport
	conversation *conversation.Conversation
	registry     *tool.Registry
	threadID     string
	maxTurns     int
	timeout      time.Duration
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport, mainly for testing.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithHTTPClient sets the underlying HTTP client for the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.transport = NewHTTPTransport(hc) }
}

// WithInitialState seeds the conversation's shared state.
func WithInitialState(state map[string]any) Option {
	return func(c *Client) { c.conversation = conversation.New(state) }
}

// WithConversation attaches an existing conversation, preserving its
// history and state.
func WithConversation(conv *conversation.Conversation) Option {
	return func(c *Client) { c.conversation = conv }
}

// WithRegistry attaches an existing tool registry.
func WithRegistry(reg *tool.Registry) Option {
	return func(c *Client) { c.registry = reg }
}

// WithThreadID pins the thread identifier instead of generating one.
func WithThreadID(id string) Option {
	return func(c *Client) { c.threadID = id }
}

// WithMaxTurns sets the per-run turn cap. Values below 1 are ignored.
func WithMaxTurns(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.maxTurns = n
		}
	}
}

// WithTimeout bounds each run with a deadline. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the agent at url.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:      url,
		maxTurns: DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(nil)
	}
	if c.conversation == nil {
		c.conversation = conversation.New(nil)
	}
	if c.registry == nil {
		c.registry = tool.NewRegistry()
	}
	if c.threadID == "" {
		c.threadID = events.GenerateThreadID()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Conversation returns the client's conversation.
func (c *Client) Conversation() *conversation.Conversation {
	return c.conversation
}

// Registry returns the client's tool registry.
func (c *Client) Registry() *tool.Registry {
	return c.registry
}

// ThreadID returns the stable thread identifier used in requests.
func (c *Client) ThreadID() string {
	return c.threadID
}

// RegisterTool adds a tool with its handler to the client's registry.
func (c *Client) RegisterTool(t yakker.Tool, h tool.Handler) error {
	return c.registry.Register(t, h)
}

// RegisterFunc registers a typed tool handler on the client's registry,
// deriving the parameter schema from the handler's argument struct.
func RegisterFunc[T any](c *Client, name, description string, fn tool.TypedHandler[T]) error {
	return tool.RegisterFunc(c.registry, name, description, fn)
}
