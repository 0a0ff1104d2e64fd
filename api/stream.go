package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// doneToken is the reserved payload that terminates a stream.
const doneToken = "[DONE]"

// stream implements [lab.Stream] by decoding the backend's line-framed
// token stream. Frames split across network chunks are reassembled by the
// scanner; a trailing unterminated line is processed at stream end.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	state   lab.StreamState
	err     error // terminal error, if any
}

// Interface compliance check.
var _ lab.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser) *stream {
	return &stream{
		body:    body,
		scanner: bufio.NewScanner(body),
		ctx:     ctx,
		state:   lab.StreamStateNew,
	}
}

// Next reads the next semantic event from the stream.
// Returns io.EOF after EventDone has been emitted.
func (s *stream) Next() (lab.Event, error) {
	switch s.state {
	case lab.StreamStateComplete:
		return nil, io.EOF
	case lab.StreamStateError:
		return nil, s.err
	case lab.StreamStateClosed:
		return nil, lab.ErrStreamClosed
	}

	for s.scanner.Scan() {
		line := s.scanner.Text()

		// Blank lines are frame separators.
		if strings.TrimSpace(line) == "" {
			continue
		}

		s.state = lab.StreamStateStreaming
		payload := framePayload(line)

		if payload == doneToken {
			s.state = lab.StreamStateComplete
			return lab.EventDone{}, nil
		}
		return lab.EventContent{Text: unwrapContent(payload)}, nil
	}

	if err := s.scanner.Err(); err != nil {
		s.terminate(err)
		return nil, s.err
	}

	// EOF without a [DONE] payload: the transport signalled completion, so
	// the stream is done.
	s.state = lab.StreamStateComplete
	return lab.EventDone{}, nil
}

// State returns the current stream state.
func (s *stream) State() lab.StreamState {
	return s.state
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	if s.state != lab.StreamStateComplete && s.state != lab.StreamStateError {
		s.state = lab.StreamStateClosed
	}
	return s.body.Close()
}

// terminate records a terminal error and sets the error state.
func (s *stream) terminate(err error) {
	s.state = lab.StreamStateError
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		s.err = fmt.Errorf("api: stream aborted: %w", ctxErr)
		return
	}
	s.err = fmt.Errorf("api: %w", err)
}

// framePayload strips the SSE data marker from a line: "data:" with one
// optional leading space before the payload. Unprefixed lines are raw
// payload — some upstreams omit the marker, which is tolerated rather
// than treated as an error.
func framePayload(line string) string {
	if rest, ok := strings.CutPrefix(line, "data:"); ok {
		return strings.TrimPrefix(rest, " ")
	}
	return line
}

// unwrapContent extracts the "content" field from JSON-encoded payloads.
// Anything that is not a JSON object with a content field passes through
// untouched, including malformed JSON.
func unwrapContent(payload string) string {
	if !strings.HasPrefix(payload, "{") {
		return payload
	}
	var body struct {
		Content *string `json:"content"`
	}
	if err := json.Unmarshal([]byte(payload), &body); err != nil || body.Content == nil {
		return payload
	}
	return *body.Content
}
