package client

import (
	"context"
	"time"

	yakker "github.com/yakker-ai/yakker-go"
)

// EventType identifies the kind of event emitted on a run's event channel.
type EventType string

const (
	// EventTurnStart signals the beginning of a request/response turn.
	EventTurnStart EventType = "turn_start"
	// EventTextDelta carries an incremental text fragment from the agent.
	EventTextDelta EventType = "text_delta"
	// EventToolResult reports the outcome of a locally executed tool call.
	EventToolResult EventType = "tool_result"
	// EventTurnEnd signals a completed turn, carrying its accumulated text.
	EventTurnEnd EventType = "turn_end"
	// EventRunEnd is the final event of a run, carrying the termination reason.
	EventRunEnd EventType = "run_end"
	// EventRunError reports a run-fatal error; a run_end follows it.
	EventRunError EventType = "run_error"
)

// TerminationReason states why a run stopped.
type TerminationReason string

const (
	// TerminationComplete means the agent finished without requesting tools.
	TerminationComplete TerminationReason = "complete"
	// TerminationMaxTurns means the turn cap was reached with tools still pending.
	TerminationMaxTurns TerminationReason = "max_turns"
	// TerminationUnresolvedTools means tools were requested but none could be handled.
	TerminationUnresolvedTools TerminationReason = "unresolved_tools"
	// TerminationCancelled means the caller's context ended the run.
	TerminationCancelled TerminationReason = "cancelled"
	// TerminationError means a transport or protocol failure ended the run.
	TerminationError TerminationReason = "error"
)

// Event is a single notification on a run's event channel.
// Fields beyond Type and Timestamp are populated per event kind.
type Event struct {
	Type        EventType
	Turn        int
	Delta       string
	Text        string
	ToolCall    *yakker.ToolCall
	ToolResult  *yakker.ToolResult
	Termination TerminationReason
	Err         error
	Timestamp   time.Time
}

func newEvent(typ EventType, turn int) Event {
	return Event{Type: typ, Turn: turn, Timestamp: time.Now()}
}

// emit delivers ev on ch, blocking until the consumer receives it or the
// context ends. Reports whether the event was delivered.
func emit(ctx context.Context, ch chan<- Event, ev Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
