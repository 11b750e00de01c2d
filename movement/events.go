package movement

type EventKind int

const (
	EventJumped EventKind = iota + 1
	EventWallJumped
	EventGroundedChanged
)

func (k EventKind) String() string {
	switch k {
	case EventJumped:
		return "jumped"
	case EventWallJumped:
		return "wall_jumped"
	case EventGroundedChanged:
		return "grounded_changed"
	}
	return "unknown"
}

// Event is emitted by the controller during a tick.
type Event struct {
	Kind EventKind
	Tick uint64

	// Grounded and ImpactSpeed are set for EventGroundedChanged. ImpactSpeed
	// is the absolute vertical speed at the instant of landing.
	Grounded    bool
	ImpactSpeed float64
}

// Observer receives events at the end of the tick that produced them.
type Observer interface {
	OnMovementEvent(evt Event)
}

type ObserverFunc func(evt Event)

func (f ObserverFunc) OnMovementEvent(evt Event) {
	f(evt)
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Events returns the queued events without clearing them.
func (q *EventQueue) Events() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	return append([]Event(nil), q.items...)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
