package cloudglue

import (
	"io"
	"reflect"
	"strings"
	"testing"
)

// byteAtATimeReader yields one byte per Read call to exercise chunk
// boundaries that never align with line boundaries.
type byteAtATimeReader struct {
	data []byte
	pos  int
}

func (r *byteAtATimeReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	p[0] = r.data[r.pos]
	r.pos++
	return 1, nil
}

func (r *byteAtATimeReader) Close() error { return nil }

func collectEvents(t *testing.T, s *ResponseStream) []*ResponseEvent {
	t.Helper()
	var events []*ResponseEvent
	for {
		ev, err := s.Recv()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Recv() error = %v", err)
		}
		events = append(events, ev)
	}
}

func streamOf(body string) *ResponseStream {
	return newResponseStream(io.NopCloser(strings.NewReader(body)))
}

func TestStreamJSONPayload(t *testing.T) {
	s := streamOf("event: message\ndata: {\"a\":1}\n\n")

	events := collectEvents(t, s)
	if len(events) != 1 {
		t.Fatalf("events count = %d, want 1", len(events))
	}

	if events[0].Event != "message" {
		t.Errorf("Event = %q, want %q", events[0].Event, "message")
	}

	payload, ok := events[0].Data.(map[string]any)
	if !ok {
		t.Fatalf("Data is %T, want map[string]any", events[0].Data)
	}
	if payload["a"] != float64(1) {
		t.Errorf("payload[a] = %v, want 1", payload["a"])
	}
}

func TestStreamMalformedJSONDegradesToRawString(t *testing.T) {
	s := streamOf("data: not-json\n\n")

	events := collectEvents(t, s)
	if len(events) != 1 {
		t.Fatalf("events count = %d, want 1", len(events))
	}
	if events[0].Data != "not-json" {
		t.Errorf("Data = %v, want %q", events[0].Data, "not-json")
	}
}

func TestStreamDoneSentinelNeverParsed(t *testing.T) {
	s := streamOf("data: [DONE]\n\n")

	events := collectEvents(t, s)
	if len(events) != 1 {
		t.Fatalf("events count = %d, want 1", len(events))
	}
	if events[0].Data != "[DONE]" {
		t.Errorf("Data = %v, want the literal string %q", events[0].Data, "[DONE]")
	}
	if !events[0].Done() {
		t.Error("Done() = false, want true")
	}
}

func TestStreamMultilineDataJoined(t *testing.T) {
	// Data lines between two blank lines concatenate, newline-joined,
	// before parsing.
	s := streamOf("data: {\"text\":\ndata: \"hi\"}\n\n")

	events := collectEvents(t, s)
	if len(events) != 1 {
		t.Fatalf("events count = %d, want 1", len(events))
	}

	payload, ok := events[0].Data.(map[string]any)
	if !ok {
		t.Fatalf("Data is %T, want map[string]any", events[0].Data)
	}
	if payload["text"] != "hi" {
		t.Errorf("payload[text] = %v, want %q", payload["text"], "hi")
	}
}

func TestStreamChunkBoundaryIdempotence(t *testing.T) {
	body := "event: delta\n" +
		"data: {\"text\":\"one\"}\n" +
		"\n" +
		"data: not-json\n" +
		"\n" +
		"event: completed\n" +
		"data: {\"usage\":{\"total_tokens\":7}}\n" +
		"\n" +
		"data: [DONE]\n" +
		"\n"

	whole := collectEvents(t, streamOf(body))
	chunked := collectEvents(t, newResponseStream(&byteAtATimeReader{data: []byte(body)}))

	if !reflect.DeepEqual(whole, chunked) {
		t.Errorf("1-byte chunking changed the event sequence:\nwhole:   %#v\nchunked: %#v", whole, chunked)
	}
	if len(whole) != 4 {
		t.Errorf("events count = %d, want 4", len(whole))
	}
}

func TestStreamTrailingPartialBlockFlushed(t *testing.T) {
	// No trailing blank line, no trailing newline: the pending block is
	// flushed before the sequence terminates.
	s := streamOf("event: delta\ndata: {\"text\":\"tail\"}")

	events := collectEvents(t, s)
	if len(events) != 1 {
		t.Fatalf("events count = %d, want 1", len(events))
	}
	if events[0].Event != "delta" {
		t.Errorf("Event = %q, want %q", events[0].Event, "delta")
	}
	payload, ok := events[0].Data.(map[string]any)
	if !ok {
		t.Fatalf("Data is %T, want map[string]any", events[0].Data)
	}
	if payload["text"] != "tail" {
		t.Errorf("payload[text] = %v, want %q", payload["text"], "tail")
	}
}

func TestStreamEventNameResetsBetweenBlocks(t *testing.T) {
	s := streamOf("event: first\ndata: 1\n\ndata: 2\n\n")

	events := collectEvents(t, s)
	if len(events) != 2 {
		t.Fatalf("events count = %d, want 2", len(events))
	}
	if events[0].Event != "first" {
		t.Errorf("first Event = %q, want %q", events[0].Event, "first")
	}
	if events[1].Event != "" {
		t.Errorf("second Event = %q, want empty: name must reset on flush", events[1].Event)
	}
}

func TestStreamIgnoresCommentsAndCRLF(t *testing.T) {
	s := streamOf(": keep-alive\r\ndata: {\"a\":1}\r\n\r\n")

	events := collectEvents(t, s)
	if len(events) != 1 {
		t.Fatalf("events count = %d, want 1", len(events))
	}
	payload, ok := events[0].Data.(map[string]any)
	if !ok {
		t.Fatalf("Data is %T, want map[string]any", events[0].Data)
	}
	if payload["a"] != float64(1) {
		t.Errorf("payload[a] = %v, want 1", payload["a"])
	}
}

func TestStreamRecvAfterEOF(t *testing.T) {
	s := streamOf("data: [DONE]\n\n")
	collectEvents(t, s)

	if _, err := s.Recv(); err != io.EOF {
		t.Errorf("Recv() after end = %v, want io.EOF", err)
	}
}
