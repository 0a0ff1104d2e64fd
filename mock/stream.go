package mock

import (
	"io"
	"sync"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// Interface compliance check.
var _ lab.Stream = (*Stream)(nil)

// Stream is a test double for lab.Stream.
// Set the function fields for the methods you need. NextFn panics when nil
// to catch missing setup. CloseFn and StateFn are nil-safe (no-op and zero
// value) because test code commonly calls defer stream.Close() and these
// methods rarely need custom behavior.
type Stream struct {
	NextFn  func() (lab.Event, error)
	StateFn func() lab.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (lab.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() lab.StreamState {
	if s.StateFn == nil {
		return lab.StreamStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Script returns a Stream that plays the given events in order and then
// reports io.EOF on every subsequent Next call. State moves to Streaming
// on the first Next and to Complete once the events are exhausted.
func Script(events ...lab.Event) *Stream {
	return script(events, nil)
}

// ScriptErr plays the given events and then fails with err instead of
// ending cleanly. State moves to Error when err is delivered.
func ScriptErr(err error, events ...lab.Event) *Stream {
	return script(events, err)
}

func script(events []lab.Event, failure error) *Stream {
	var mu sync.Mutex
	i := 0
	state := lab.StreamStateNew
	s := &Stream{}
	s.NextFn = func() (lab.Event, error) {
		mu.Lock()
		defer mu.Unlock()
		if i < len(events) {
			evt := events[i]
			i++
			state = lab.StreamStateStreaming
			return evt, nil
		}
		if failure != nil {
			state = lab.StreamStateError
			return nil, failure
		}
		state = lab.StreamStateComplete
		return nil, io.EOF
	}
	s.StateFn = func() lab.StreamState {
		mu.Lock()
		defer mu.Unlock()
		return state
	}
	return s
}
