package system

import (
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/movement"
)

// maxTicksPerFrame bounds catch-up after a long frame. The leftover time is
// dropped rather than carried into the next frame.
const maxTicksPerFrame = 5

// Stepper advances a physics world by one fixed step.
type Stepper interface {
	Step(dt float64)
}

// snapshotObserver is implemented by input sources that react to the
// character's state, such as scripts.
type snapshotObserver interface {
	Observe(snap movement.Snapshot)
}

// MovementSystem feeds the sampled frame to every controller, then runs as
// many fixed ticks as the frame time covers. Each tick steps every controller
// and then the physics world once.
type MovementSystem struct {
	physics Stepper
	frameDt float64
	step    float64

	accumulator float64
	ticks       uint64
}

func NewMovementSystem(physics Stepper, frameDt float64) *MovementSystem {
	return &MovementSystem{physics: physics, frameDt: frameDt, step: common.FixedStep}
}

// Ticks is the number of fixed ticks run so far.
func (m *MovementSystem) Ticks() uint64 {
	return m.ticks
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.MoverComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, mv *component.Mover, in *component.Input) {
		if mv.Controller != nil {
			mv.Controller.Update(in.Frame)
		}
	})

	m.accumulator += m.frameDt
	n := 0
	for m.accumulator >= m.step {
		if n == maxTicksPerFrame {
			m.accumulator = 0
			break
		}
		m.Tick(w)
		m.accumulator -= m.step
		n++
	}

	ecs.ForEach2(w, component.MoverComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, mv *component.Mover, in *component.Input) {
		if obs, ok := in.Source.(snapshotObserver); ok && mv.Controller != nil {
			obs.Observe(mv.Controller.Snapshot())
		}
	})
}

// Tick runs one fixed step and forwards the controllers' events to the
// world queue.
func (m *MovementSystem) Tick(w *ecs.World) {
	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, mv *component.Mover) {
		if mv.Controller == nil {
			return
		}
		mv.Controller.Tick(m.step)
		for _, evt := range mv.Controller.Events() {
			w.Events().Push(ecs.Event{Type: evt.Kind.String(), Entity: e, Data: evt})
		}
	})
	if m.physics != nil {
		m.physics.Step(m.step)
	}
	m.ticks++
}
