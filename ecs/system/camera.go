package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
)

// CameraSystem moves each camera toward the transform of its own entity,
// kept inside the level bounds.
type CameraSystem struct {
	bounds cp.BB
}

func NewCameraSystem(bounds cp.BB) *CameraSystem {
	return &CameraSystem{bounds: bounds}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cam *component.Camera, t *component.Transform) {
		target := cp.Vector{X: t.X, Y: t.Y}
		if anim, ok := ecs.Get(w, e, component.ClimbAnimationComponent.Kind()); ok {
			dx, dy := ClimbOffset(anim)
			target = target.Add(cp.Vector{X: dx, Y: dy})
		}
		cam.View.Follow(target, cam.Follow, cs.bounds)
	})
}

// CurrentView returns the view of the first camera, or fallback when the
// world has none.
func CurrentView(w *ecs.World, fallback common.View) common.View {
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return fallback
	}
	cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
	return cam.View
}
