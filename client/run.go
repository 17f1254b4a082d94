package client

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"

	yakker "github.com/yakker-ai/yakker-go"
	"github.com/yakker-ai/yakker-go/sse"
	"github.com/yakker-ai/yakker-go/stream"
)

// Stream appends content as a user message and starts a run: it posts the
// conversation to the agent, executes any tool calls the agent requests, and
// repeats until the agent answers without tools or the turn cap is hit. The
// returned channel carries turn, text-delta, tool-result, and terminal
// events, and is closed when the run ends.
//
// Channel sends block until the consumer receives, so every fragment reaches
// the caller in order; cancelling ctx releases the run.
func (c *Client) Stream(ctx context.Context, content string) <-chan Event {
	ch := make(chan Event)

	if content != "" {
		c.conversation.AddMessage(yakker.RoleUser, content)
	}

	go c.runLoop(ctx, ch)
	return ch
}

func (c *Client) runLoop(ctx context.Context, ch chan<- Event) {
	defer close(ch)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reason := TerminationMaxTurns

	for turn := 1; turn <= c.maxTurns; turn++ {
		if ctx.Err() != nil {
			reason = TerminationCancelled
			break
		}

		if !emit(ctx, ch, newEvent(EventTurnStart, turn)) {
			reason = TerminationCancelled
			break
		}

		result, err := c.streamTurn(ctx, ch, turn)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				reason = TerminationCancelled
				break
			}
			c.logger.Error("run turn failed", "turn", turn, "error", err)
			ev := newEvent(EventRunError, turn)
			ev.Err = err
			emit(ctx, ch, ev)
			reason = TerminationError
			break
		}

		c.commitTurn(result)

		endEv := newEvent(EventTurnEnd, turn)
		endEv.Text = result.Text
		if !emit(ctx, ch, endEv) {
			reason = TerminationCancelled
			break
		}

		if !result.HasToolCalls() {
			reason = TerminationComplete
			break
		}

		if c.registry.Len() == 0 {
			c.logger.Warn("agent requested tools but no handlers are registered",
				"turn", turn,
				"calls", len(result.Calls),
			)
			reason = TerminationUnresolvedTools
			break
		}

		if !c.resolveToolCalls(ctx, ch, turn, result.Calls) {
			reason = TerminationCancelled
			break
		}
	}

	if ctx.Err() != nil && reason != TerminationError {
		reason = TerminationCancelled
	}

	// On cancellation the final event may not be deliverable; the channel
	// close is the terminal signal either way.
	final := newEvent(EventRunEnd, 0)
	final.Termination = reason
	emit(ctx, ch, final)
}

// streamTurn posts one request and reduces its event stream, emitting text
// deltas as they arrive.
func (c *Client) streamTurn(ctx context.Context, ch chan<- Event, turn int) (*stream.TurnResult, error) {
	payload, err := buildRequest(c.threadID, c.conversation.Messages(), c.conversation.State(), c.registry.Tools(), c.logger)
	if err != nil {
		return nil, err
	}

	body, err := c.transport.Stream(ctx, c.url, payload)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	decoder := sse.NewDecoder(c.logger)
	acc := stream.NewAccumulator(c.conversation.State())

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		ev, ok := decoder.Decode(scanner.Text())
		if !ok {
			continue
		}
		if delta, hasText := acc.Apply(ev); hasText {
			dev := newEvent(EventTextDelta, turn)
			dev.Delta = delta
			if !emit(ctx, ch, dev) {
				return nil, ctx.Err()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("client: read event stream: %w", err)
	}

	return acc.Result(), nil
}

// commitTurn records a completed turn: the assistant message, with any tool
// calls attached, and the turn's final state snapshot merged into the
// conversation. Abandoned turns are never committed.
func (c *Client) commitTurn(result *stream.TurnResult) {
	msg := yakker.Message{
		ID:        yakker.GenerateMessageID(),
		Role:      yakker.RoleAssistant,
		Content:   result.Text,
		ToolCalls: result.ToolCalls(),
	}
	c.conversation.Append(msg)
	c.conversation.MergeState(result.Snapshot)
}

// resolveToolCalls executes every pending call in arrival order, appending a
// tool-role message per call so the agent sees each outcome next turn.
// Failures become error-flagged results, never aborts. Reports false if the
// run was cancelled mid-resolution.
func (c *Client) resolveToolCalls(ctx context.Context, ch chan<- Event, turn int, calls []stream.ToolCallRecord) bool {
	for i := range calls {
		rec := &calls[i]
		call := rec.ToolCall()

		var result yakker.ToolResult
		switch {
		case !rec.Complete:
			result = yakker.ToolResult{
				ToolCallID: call.ID,
				Content:    fmt.Sprintf("tool call %s (%s) was never finalized by the agent", call.ID, call.Name),
				IsError:    true,
			}
		default:
			var err error
			result, err = c.registry.Execute(ctx, call)
			if err != nil {
				// Covers unregistered tool names; handler failures are
				// already folded into the result by Execute.
				result = yakker.ToolResult{
					ToolCallID: call.ID,
					Content:    err.Error(),
					IsError:    true,
				}
			}
		}

		if result.IsError {
			c.logger.Warn("tool call failed", "turn", turn, "tool", call.Name, "id", call.ID, "error", result.Content)
		} else {
			c.logger.Debug("tool call resolved", "turn", turn, "tool", call.Name, "id", call.ID)
		}

		c.conversation.Append(yakker.NewToolResultMessage(result))

		ev := newEvent(EventToolResult, turn)
		ev.ToolCall = &call
		ev.ToolResult = &result
		if !emit(ctx, ch, ev) {
			return false
		}
	}
	return true
}

// Send runs a single non-streaming turn: it posts the conversation, reads the
// whole response body, and returns the agent's accumulated text. Tool calls
// are not resolved on this path; the parsed calls are visible on the
// conversation's last assistant message.
func (c *Client) Send(ctx context.Context, content string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if content != "" {
		c.conversation.AddMessage(yakker.RoleUser, content)
	}

	payload, err := buildRequest(c.threadID, c.conversation.Messages(), c.conversation.State(), c.registry.Tools(), c.logger)
	if err != nil {
		return "", err
	}

	body, err := c.transport.Do(ctx, c.url, payload)
	if err != nil {
		return "", err
	}

	decoder := sse.NewDecoder(c.logger)
	evs, err := decoder.DecodeAll(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("client: read response events: %w", err)
	}

	result := stream.Reduce(evs, stream.NewAccumulator(c.conversation.State()), nil)
	c.commitTurn(result)
	return result.Text, nil
}
