package system

import (
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/movement"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EventClimbComplete is pushed when the ledge-climb animation has finished
// and the controller was told so.
const EventClimbComplete = "climb_complete"

// AnimationSystem plays the ledge-climb animation and reports its end to the
// controller. It also keeps the animation state name current.
type AnimationSystem struct {
	frameDt float64
}

func NewAnimationSystem(frameDt float64) *AnimationSystem {
	return &AnimationSystem{frameDt: frameDt}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.MoverComponent.Kind(), component.ClimbAnimationComponent.Kind(), func(e ecs.Entity, mv *component.Mover, anim *component.ClimbAnimation) {
		ctrl := mv.Controller
		if ctrl == nil {
			return
		}
		snap := ctrl.Snapshot()
		anim.State = snap.Mode()

		switch {
		case snap.Phase == movement.LedgeBegin && anim.Tween == nil && anim.Progress == 0:
			startClimb(anim, ctrl, snap)
		case snap.Phase == movement.LedgeNone:
			anim.Tween = nil
			anim.Progress = 0
			return
		}
		if anim.Tween == nil {
			return
		}

		v, done := anim.Tween.Update(float32(a.frameDt))
		anim.Progress = float64(v)
		if done {
			anim.Tween = nil
			anim.Progress = 1
			if ctrl.LedgeClimbComplete() {
				w.Events().Push(ecs.Event{Type: EventClimbComplete, Entity: e})
			}
		}
	})
}

func startClimb(anim *component.ClimbAnimation, ctrl *movement.Controller, snap movement.Snapshot) {
	easing := anim.Ease
	if easing == nil {
		easing = ease.OutQuad
	}
	begin, over := ctrl.Config().Ledge.For(movement.SideOf(snap.Facing))
	anim.From = snap.Position
	anim.To = snap.Position.Add(over.Sub(begin))
	anim.Progress = 0
	anim.Tween = gween.New(0, 1, float32(anim.Duration), easing)
}

// ClimbOffset is how far the drawn character is ahead of its pinned body
// while the climb animation plays.
func ClimbOffset(anim *component.ClimbAnimation) (dx, dy float64) {
	if anim == nil || anim.Tween == nil {
		return 0, 0
	}
	d := anim.To.Sub(anim.From).Mult(anim.Progress)
	return d.X, d.Y
}
