package system

import (
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
)

// InputSystem samples every input source once per visual frame.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		if in.Sampler == nil {
			return
		}
		in.Frame = in.Sampler.Sample()
	})
}
