// Package stream reduces an ordered sequence of decoded protocol events for
// one turn into a TurnResult: the accumulated assistant text, the assembled
// tool-call table, and the final state snapshot.
//
// The mutable accumulation context is an explicit Accumulator passed by
// reference. Text fragments are handed to the caller through a callback the
// moment they arrive, so live display never waits for the turn to finish.
package stream

import (
	"strings"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	yakker "github.com/yakker-ai/yakker-go"
	"github.com/yakker-ai/yakker-go/sse"
)

// ToolCallRecord is one in-progress tool invocation assembled from
// TOOL_CALL_START / TOOL_CALL_ARGS / TOOL_CALL_END events.
type ToolCallRecord struct {
	// ID is the caller-opaque id keying this record.
	ID string
	// Name is the tool name, set once by the start event.
	Name string
	// Args is the exact concatenation, in arrival order, of every args
	// fragment seen for this id.
	Args string
	// Complete is set by the end event. Only complete records may ever be
	// executed.
	Complete bool
}

// ToolCall converts the record into the shared tool-call type.
func (r *ToolCallRecord) ToolCall() yakker.ToolCall {
	return yakker.ToolCall{
		ID:        r.ID,
		Name:      r.Name,
		Arguments: r.Args,
	}
}

// Accumulator is the mutable accumulation context for a single turn.
// It is owned by exactly one turn and discarded when the turn ends;
// it is not safe for concurrent use.
type Accumulator struct {
	text     strings.Builder
	calls    map[string]*ToolCallRecord
	order    []string
	snapshot map[string]any
}

// NewAccumulator creates an empty accumulation context carrying the state
// snapshot known before the turn. If no STATE_SNAPSHOT event arrives during
// the turn, the inherited snapshot is what the TurnResult reports.
func NewAccumulator(inherited map[string]any) *Accumulator {
	if inherited == nil {
		inherited = map[string]any{}
	}
	return &Accumulator{
		calls:    make(map[string]*ToolCallRecord),
		snapshot: inherited,
	}
}

// Apply processes a single decoded event, mutating the accumulator in place.
// It returns the text fragment to surface to the caller and whether one was
// produced; TEXT_MESSAGE_CONTENT is the only event type that yields
// user-visible output mid-stream.
//
// Out-of-order protocol input is absorbed, never fatal: an args fragment for
// an unknown id creates the record defensively (with an empty name, so it can
// never match a registered tool), an end event for an unknown id is dropped,
// and a duplicate start overwrites the previous record - last start wins.
func (a *Accumulator) Apply(ev sse.Event) (delta string, ok bool) {
	switch ev.Type() {
	case events.EventTypeTextMessageContent:
		delta = ev.Delta()
		a.text.WriteString(delta)
		return delta, true

	case events.EventTypeStateSnapshot:
		a.snapshot = ev.Snapshot()

	case events.EventTypeToolCallStart:
		id := ev.ToolCallID()
		if _, exists := a.calls[id]; !exists {
			a.order = append(a.order, id)
		}
		a.calls[id] = &ToolCallRecord{ID: id, Name: ev.ToolCallName()}

	case events.EventTypeToolCallArgs:
		id := ev.ToolCallID()
		rec, exists := a.calls[id]
		if !exists {
			rec = &ToolCallRecord{ID: id}
			a.calls[id] = rec
			a.order = append(a.order, id)
		}
		rec.Args += ev.Delta()

	case events.EventTypeToolCallEnd:
		if rec, exists := a.calls[ev.ToolCallID()]; exists {
			rec.Complete = true
		}

	default:
		// Unknown or absent type: ignored, the protocol is forward-extensible.
	}

	return "", false
}

// Result finalizes the accumulator into a TurnResult.
func (a *Accumulator) Result() *TurnResult {
	calls := make([]ToolCallRecord, 0, len(a.order))
	for _, id := range a.order {
		calls = append(calls, *a.calls[id])
	}
	return &TurnResult{
		Text:     a.text.String(),
		Calls:    calls,
		Snapshot: a.snapshot,
	}
}

// TurnResult is the output of reducing one turn's event stream.
type TurnResult struct {
	// Text is the ordered concatenation of all text deltas.
	Text string
	// Calls is the final tool-call table, in arrival order. Possibly empty.
	Calls []ToolCallRecord
	// Snapshot is the final state snapshot seen, or the snapshot carried in
	// from before the turn if none arrived.
	Snapshot map[string]any
}

// HasToolCalls reports whether the turn requested any tool invocations.
func (r *TurnResult) HasToolCalls() bool {
	return len(r.Calls) > 0
}

// ToolCalls converts the table into the shared tool-call type, preserving
// arrival order. Returns nil when the table is empty.
func (r *TurnResult) ToolCalls() []yakker.ToolCall {
	if len(r.Calls) == 0 {
		return nil
	}
	calls := make([]yakker.ToolCall, len(r.Calls))
	for i := range r.Calls {
		calls[i] = r.Calls[i].ToolCall()
	}
	return calls
}

// Reduce processes an ordered sequence of events, mutating acc in place and
// handing each text fragment to emit as it is produced. A nil emit discards
// fragments. It returns the finished context as a TurnResult.
func Reduce(evs []sse.Event, acc *Accumulator, emit func(delta string)) *TurnResult {
	for _, ev := range evs {
		if delta, ok := acc.Apply(ev); ok && emit != nil {
			emit(delta)
		}
	}
	return acc.Result()
}
