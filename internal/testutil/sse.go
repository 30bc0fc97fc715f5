package testutil

import (
	"strings"
	"testing"
)

// SSEEvent is one parsed Server-Sent Event.
type SSEEvent struct {
	Type string // event: field
	Data string // data: field, multi-line payloads joined with \n
}

// ParseSSEEvents parses a recorded SSE response body into events.
//
// Follows the W3C SSE framing rules the handlers rely on:
//   - an empty line terminates an event
//   - multiple "data:" lines are joined with newline
//   - "data:" without a preceding "event:" defaults to type "message"
//   - lines starting with ":" are comments and are skipped
//
// Anything else in the stream fails the test, so a malformed handler
// shows up as a parse failure rather than a silently missing event.
func ParseSSEEvents(t *testing.T, body string) []SSEEvent {
	t.Helper()

	var events []SSEEvent
	var cur *SSEEvent
	var data []string

	flush := func() {
		if cur == nil {
			return
		}
		cur.Data = strings.Join(data, "\n")
		events = append(events, *cur)
		cur, data = nil, nil
	}

	for i, line := range strings.Split(body, "\n") {
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "event: "):
			if cur != nil {
				t.Fatalf("line %d: event %q started before %q was terminated", i+1, line, cur.Type)
			}
			cur = &SSEEvent{Type: strings.TrimPrefix(line, "event: ")}
		case strings.HasPrefix(line, "data: "):
			if cur == nil {
				cur = &SSEEvent{Type: "message"}
			}
			data = append(data, strings.TrimPrefix(line, "data: "))
		default:
			t.Fatalf("line %d: unexpected SSE line %q", i+1, line)
		}
	}

	if cur != nil {
		t.Fatalf("stream ended without terminating event %q (missing empty line)", cur.Type)
	}
	return events
}

// FindEvent returns the first event of the given type, or nil.
func FindEvent(events []SSEEvent, eventType string) *SSEEvent {
	for i := range events {
		if events[i].Type == eventType {
			return &events[i]
		}
	}
	return nil
}

// FindAllEvents returns every event of the given type, in order.
func FindAllEvents(events []SSEEvent, eventType string) []SSEEvent {
	var found []SSEEvent
	for _, e := range events {
		if e.Type == eventType {
			found = append(found, e)
		}
	}
	return found
}
