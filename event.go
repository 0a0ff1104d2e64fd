package lab

// Event is a sealed interface representing a decoded stream event.
// Events are purely semantic. Transport/protocol errors come from
// Next()'s error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventContent carries one chunk of streamed response text.
type EventContent struct {
	Text string
}

func (EventContent) event() {}

// EventDone signals the stream's terminal payload. No further events
// follow; subsequent Next calls return io.EOF.
type EventDone struct{}

func (EventDone) event() {}

// Interface compliance checks.
var (
	_ Event = EventContent{}
	_ Event = EventDone{}
)
