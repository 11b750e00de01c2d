package ecs

// Event is a world event. Type names the event, Data carries the payload.
type Event struct {
	Type   string
	Entity Entity
	Data   any
}

// EventQueue is a FIFO cleared at the end of every World.Update, so every
// system that runs after the producer sees the frame's events.
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
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
