package movement

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestEventQueue(t *testing.T) {
	var q EventQueue
	q.Push(Event{Kind: EventJumped})
	q.Push(Event{Kind: EventWallJumped})

	got := q.Events()
	if len(got) != 2 {
		t.Fatalf("Events len = %d", len(got))
	}
	got[0].Kind = EventGroundedChanged
	if q.Events()[0].Kind != EventJumped {
		t.Fatalf("Events must return a copy")
	}

	drained := q.Drain()
	if len(drained) != 2 || q.Events() != nil {
		t.Fatalf("Drain must empty the queue")
	}

	var nilQueue *EventQueue
	nilQueue.Push(Event{})
	if nilQueue.Events() != nil || nilQueue.Drain() != nil {
		t.Fatalf("nil queue must be inert")
	}
}

func TestEventsVisibleUntilNextTick(t *testing.T) {
	r := newRig(t)
	r.ground(t)
	r.step(jumpPress)

	first := r.c.Events()
	second := r.c.Events()
	if !hasEvent(first, EventJumped) || !hasEvent(second, EventJumped) {
		t.Fatalf("every reader must see the tick's events")
	}
	for _, e := range first {
		if e.Tick != r.c.Ticks() {
			t.Fatalf("event tick = %d, want %d", e.Tick, r.c.Ticks())
		}
	}

	r.c.Update(jumpHold)
	if !hasEvent(r.c.Events(), EventJumped) {
		t.Fatalf("Update must not clear events")
	}
	r.c.Tick(testDT)
	if hasEvent(r.c.Events(), EventJumped) {
		t.Fatalf("events must clear on the next tick")
	}
}

func TestEventKindString(t *testing.T) {
	cases := map[EventKind]string{
		EventJumped:          "jumped",
		EventWallJumped:      "wall_jumped",
		EventGroundedChanged: "grounded_changed",
		EventKind(0):         "unknown",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Fatalf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}

func TestSnapshotMode(t *testing.T) {
	cases := []struct {
		snap Snapshot
		want string
	}{
		{Snapshot{Phase: LedgeBegin, Dashing: true}, "ledge_climb"},
		{Snapshot{Dashing: true, Grounded: true}, "dash"},
		{Snapshot{Grabbing: true, ClimbSpeed: 1}, "climb"},
		{Snapshot{Grabbing: true}, "wall_grab"},
		{Snapshot{WallSliding: true}, "wall_slide"},
		{Snapshot{Grounded: true, Pushing: true}, "push"},
		{Snapshot{Grounded: true, Velocity: cp.Vector{X: 3}}, "run"},
		{Snapshot{Grounded: true}, "idle"},
		{Snapshot{Velocity: cp.Vector{Y: 2}}, "jump"},
		{Snapshot{Velocity: cp.Vector{Y: -2}}, "fall"},
	}
	for _, c := range cases {
		if got := c.snap.Mode(); got != c.want {
			t.Fatalf("Mode(%+v) = %q, want %q", c.snap, got, c.want)
		}
	}
}

func TestZeroTickIsIgnored(t *testing.T) {
	r := newRig(t)
	r.c.Tick(0)
	r.c.Tick(-1)
	if r.c.Ticks() != 0 || r.c.Now() != 0 || r.body.velocityWrites != 0 {
		t.Fatalf("non-positive dt must not advance the controller")
	}
}
