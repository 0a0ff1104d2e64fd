package lab

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving content.
	StreamStateComplete                     // Done observed; Next() returns io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream is a lazy, forward-only, non-restartable sequence of events
// decoded from a streaming response body. It uses a pull-based iterator
// pattern; cancellation flows through the context passed to the call that
// opened the stream.
//
// Next() returns the next semantic Event. After EventDone it returns
// io.EOF. Transport failures (network abort, decode error) surface as a
// non-EOF error and terminate the sequence.
//
// Close() releases the underlying transport resource and is safe to call
// on any exit path, including after an error.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Close() error
}
