package system

import (
	"log"

	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/movement"
)

// EventLogSystem logs the frame's events while any debug overlay is on.
type EventLogSystem struct {
	logf func(format string, args ...any)
}

func NewEventLogSystem() *EventLogSystem {
	return &EventLogSystem{logf: log.Printf}
}

func (l *EventLogSystem) Update(w *ecs.World) {
	if w == nil || !DebugEnabled(w) {
		return
	}
	for _, evt := range w.Events().Events() {
		switch data := evt.Data.(type) {
		case movement.Event:
			if data.Kind == movement.EventGroundedChanged {
				l.logf("movement: %s entity=%s tick=%d grounded=%t impact=%.2f", evt.Type, evt.Entity, data.Tick, data.Grounded, data.ImpactSpeed)
				continue
			}
			l.logf("movement: %s entity=%s tick=%d", evt.Type, evt.Entity, data.Tick)
		default:
			l.logf("event: %s entity=%s", evt.Type, evt.Entity)
		}
	}
}

// DebugEnabled reports whether any debug overlay is on.
func DebugEnabled(w *ecs.World) bool {
	enabled := false
	ecs.ForEach(w, component.DebugOverlayComponent.Kind(), func(_ ecs.Entity, d *component.DebugOverlay) {
		enabled = enabled || d.Enabled
	})
	return enabled
}

// SetDebug switches every debug overlay on or off and returns the new state.
func SetDebug(w *ecs.World, enabled bool) bool {
	ecs.ForEach(w, component.DebugOverlayComponent.Kind(), func(_ ecs.Entity, d *component.DebugOverlay) {
		d.Enabled = enabled
	})
	return enabled
}

// ToggleDebug flips the debug overlays.
func ToggleDebug(w *ecs.World) bool {
	return SetDebug(w, !DebugEnabled(w))
}
