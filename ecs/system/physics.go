package system

import (
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
)

// PhysicsSystem copies body positions into transforms after the ticks ran.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		t.X, t.Y = pos.X, pos.Y
		if mv, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok && mv.Controller != nil {
			t.Facing = mv.Controller.Facing()
		}
	})
}
