// Package sse decodes raw AG-UI protocol lines into events.
//
// AG-UI servers stream responses as Server-Sent Events: each event is a line
// of the form "data: {json}". The decoder turns one raw line into a generic
// event record or reports that the line carries no event. It does not
// validate protocol-level shape; consumers dispatch on the event's type field.
package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
)

// dataPrefix marks a line as carrying an event payload.
const dataPrefix = "data: "

// logPayloadLimit bounds how much of a malformed payload is logged.
const logPayloadLimit = 100

// Event is one decoded unit from the protocol feed: a generic key-value
// mapping with typed accessors for the fields the protocol defines. Unknown
// keys and unknown type values are preserved and ignored downstream; the
// protocol is forward-extensible.
type Event map[string]any

// Type returns the event's discriminant, or the empty type if absent.
func (e Event) Type() events.EventType {
	s, _ := e["type"].(string)
	return events.EventType(s)
}

// Delta returns the incremental text or argument fragment, or "" if absent.
func (e Event) Delta() string {
	s, _ := e["delta"].(string)
	return s
}

// Snapshot returns the full state replacement carried by a STATE_SNAPSHOT
// event, or an empty map if absent.
func (e Event) Snapshot() map[string]any {
	m, ok := e["snapshot"].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// ToolCallID returns the id of the tool call this event belongs to.
func (e Event) ToolCallID() string {
	s, _ := e["toolCallId"].(string)
	return s
}

// ToolCallName returns the tool name carried by a TOOL_CALL_START event.
func (e Event) ToolCallName() string {
	s, _ := e["toolCallName"].(string)
	return s
}

// Decoder turns raw protocol lines into events.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder creates a Decoder. A nil logger falls back to slog.Default.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// Decode parses a single protocol line.
//
// A line that does not begin with the event prefix is not an event: ok is
// false and nothing is logged. A line with the prefix but an undecodable
// payload is malformed: the failure is logged with the payload truncated and
// ok is false. A malformed line never aborts the stream.
func (d *Decoder) Decode(line string) (Event, bool) {
	if !strings.HasPrefix(line, dataPrefix) {
		return nil, false
	}

	payload := line[len(dataPrefix):]

	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		d.logger.Warn("malformed payload in event stream",
			"payload", truncate(payload, logPayloadLimit),
			"error", err,
		)
		return nil, false
	}
	return ev, true
}

// DecodeAll parses every event in a complete response body, line by line.
// Non-event and malformed lines are skipped. This is the non-streaming path;
// live streams feed Decode one line at a time instead.
func (d *Decoder) DecodeAll(r io.Reader) ([]Event, error) {
	var result []Event

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if ev, ok := d.Decode(scanner.Text()); ok {
			result = append(result, ev)
		}
	}
	if err := scanner.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// ExtractText concatenates the text fragments of a decoded event sequence in
// order, ignoring every other event type.
func ExtractText(evs []Event) string {
	var b strings.Builder
	for _, ev := range evs {
		if ev.Type() == events.EventTypeTextMessageContent {
			b.WriteString(ev.Delta())
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
