package sim

// VTimeInSec is a time in the simulated space, in the unit of second.
// Testbench clocks usually work at the microsecond scale; the unit is
// semantically arbitrary as long as the whole bench agrees on it.
type VTimeInSec float64

// Microsecond is a helper constant for defining testbench durations.
const Microsecond VTimeInSec = 1e-6

// An Event is something going to happen in the future.
type Event interface {
	// Time returns the time at which the event should happen.
	Time() VTimeInSec

	// Handler returns the handler that should handle the event.
	Handler() Handler
}

// A Handler defines a domain for events. An event can only be scheduled by
// its handler and, when triggered, can only directly mutate that handler.
type Handler interface {
	Handle(e Event) error
}

// EventBase provides the common fields and getters for concrete events.
type EventBase struct {
	ID      string
	time    VTimeInSec
	handler Handler
}

// MakeEventBase creates an EventBase that happens at time t.
func MakeEventBase(t VTimeInSec, handler Handler) EventBase {
	return EventBase{
		ID:      GetIDGenerator().Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns the time at which the event is going to happen.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}
