package cloudglue

import (
	"encoding/json"
	"io"
	"strings"
)

// DoneSentinel is the literal payload marking the end of a response stream.
const DoneSentinel = "[DONE]"

// streamChunkSize is the fixed read size for the underlying byte stream.
const streamChunkSize = 512

// ResponseEvent is one decoded server-sent event.
type ResponseEvent struct {
	// Event is the event name from the "event:" line, if any.
	Event string

	// Data is the decoded JSON payload. When the payload is not valid JSON
	// it degrades to the raw joined text, and the DoneSentinel is always the
	// literal string, never parsed.
	Data any
}

// Done reports whether this event is the stream-end sentinel.
func (e *ResponseEvent) Done() bool {
	s, ok := e.Data.(string)
	return ok && s == DoneSentinel
}

// ResponseStream decodes a live server-sent-event byte stream into discrete
// events. It is a forward-only, single-pass, single-consumer sequence; it is
// not restartable and terminates when the underlying stream closes.
type ResponseStream struct {
	body  io.ReadCloser
	chunk []byte

	// Decoder state: partial physical line, pending event name, pending
	// data lines of the current block.
	buf   string
	event string
	data  []string

	eof bool
	err error
}

func newResponseStream(body io.ReadCloser) *ResponseStream {
	return &ResponseStream{
		body:  body,
		chunk: make([]byte, streamChunkSize),
	}
}

// Recv returns the next event. It returns io.EOF once the stream has ended
// normally; any trailing partial block is flushed before that.
func (s *ResponseStream) Recv() (*ResponseEvent, error) {
	if s.err != nil {
		return nil, s.err
	}

	for {
		// Drain complete physical lines already buffered. Chunk boundaries
		// need not align with line boundaries.
		for {
			i := strings.IndexByte(s.buf, '\n')
			if i < 0 {
				break
			}
			line := strings.TrimSuffix(s.buf[:i], "\r")
			s.buf = s.buf[i+1:]
			if ev := s.consumeLine(line); ev != nil {
				return ev, nil
			}
		}

		if s.eof {
			if s.buf != "" {
				line := s.buf
				s.buf = ""
				if ev := s.consumeLine(line); ev != nil {
					return ev, nil
				}
			}
			if ev := s.flush(); ev != nil {
				return ev, nil
			}
			s.err = io.EOF
			return nil, io.EOF
		}

		n, err := s.body.Read(s.chunk)
		if n > 0 {
			s.buf += string(s.chunk[:n])
		}
		if err != nil {
			if err == io.EOF {
				s.eof = true
				continue
			}
			s.err = newNetworkError(err, "")
			return nil, s.err
		}
	}
}

// consumeLine processes one physical line, returning a flushed event when the
// line terminates a block.
func (s *ResponseStream) consumeLine(line string) *ResponseEvent {
	switch {
	case line == "":
		return s.flush()
	case strings.HasPrefix(line, "event:"):
		s.event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
	case strings.HasPrefix(line, "data:"):
		s.data = append(s.data, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
	}
	// Comments and unknown fields are ignored.
	return nil
}

// flush emits the pending block, if any, and resets the pending state.
// Malformed JSON degrades to the raw text rather than failing the stream.
func (s *ResponseStream) flush() *ResponseEvent {
	if len(s.data) == 0 {
		s.event = ""
		return nil
	}

	joined := strings.Join(s.data, "\n")
	ev := &ResponseEvent{Event: s.event}
	s.event = ""
	s.data = nil

	if joined == DoneSentinel {
		ev.Data = DoneSentinel
		return ev
	}

	var decoded any
	if err := json.Unmarshal([]byte(joined), &decoded); err != nil {
		ev.Data = joined
	} else {
		ev.Data = decoded
	}
	return ev
}

// Close releases the underlying connection. Recv must not be called after
// Close.
func (s *ResponseStream) Close() error {
	return s.body.Close()
}
