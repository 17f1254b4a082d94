// Command chat is an interactive terminal client for an AG-UI agent.
// It reads user messages from stdin, streams the agent's reply as it
// arrives, and resolves any tool calls the agent makes against the
// locally registered handlers.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/yakker-ai/yakker-go/client"
	"github.com/yakker-ai/yakker-go/mcp"
)

// ApproveArgs are the arguments of the built-in demo approval tool.
type ApproveArgs struct {
	Action string `json:"action" desc:"The action requiring user approval" required:"true"`
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(cfg.AgentURL,
		client.WithMaxTurns(cfg.MaxTurns),
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
	)

	if cfg.DemoTools {
		registerDemoTools(c)
	}

	if cfg.MCPCommand != "" || cfg.MCPURL != "" {
		remote, err := connectMCP(ctx, cfg)
		if err != nil {
			logger.Error("mcp connection failed", "error", err)
			os.Exit(1)
		}
		defer remote.Close()
		if err := remote.Attach(c.Registry()); err != nil {
			logger.Error("mcp attach failed", "error", err)
			os.Exit(1)
		}
		logger.Info("mcp tools attached", "count", remote.Len(), "tools", remote.Names())
	}

	fmt.Printf("connected to %s (thread %s)\n", cfg.AgentURL, c.ThreadID())
	fmt.Println("type a message, or /quit to exit")

	stdin := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !stdin.Scan() {
			break
		}
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		runOnce(ctx, c, line)

		if ctx.Err() != nil {
			break
		}
	}
	fmt.Println()
}

func runOnce(ctx context.Context, c *client.Client, content string) {
	for ev := range c.Stream(ctx, content) {
		switch ev.Type {
		case client.EventTextDelta:
			fmt.Print(ev.Delta)
		case client.EventTurnEnd:
			fmt.Println()
		case client.EventToolResult:
			if ev.ToolResult.IsError {
				fmt.Printf("[tool %s error: %s]\n", ev.ToolCall.Name, ev.ToolResult.Content)
			} else {
				fmt.Printf("[tool %s -> %s]\n", ev.ToolCall.Name, ev.ToolResult.Content)
			}
		case client.EventRunError:
			fmt.Fprintln(os.Stderr, "run error:", ev.Err)
		case client.EventRunEnd:
			if ev.Termination != client.TerminationComplete {
				fmt.Printf("[run ended: %s]\n", ev.Termination)
			}
		}
	}
}

// registerDemoTools adds an approval tool that prompts on the terminal,
// so agent runs that ask for confirmation can be exercised end to end.
func registerDemoTools(c *client.Client) {
	client.RegisterFunc(c, "approve", "Ask the user to approve an action before proceeding",
		func(ctx context.Context, args ApproveArgs) (string, error) {
			fmt.Printf("\napprove %q? [y/N] ", args.Action)
			reader := bufio.NewReader(os.Stdin)
			answer, err := reader.ReadString('\n')
			if err != nil {
				return "", err
			}
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer == "y" || answer == "yes" {
				return "approved", nil
			}
			return "denied", nil
		})
}

func connectMCP(ctx context.Context, cfg *Config) (*mcp.RemoteRegistry, error) {
	if cfg.MCPURL != "" {
		return mcp.NewRemoteRegistrySSE(ctx, cfg.MCPURL)
	}
	parts := strings.Fields(cfg.MCPCommand)
	return mcp.NewRemoteRegistry(ctx, parts[0], nil, parts[1:]...)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
