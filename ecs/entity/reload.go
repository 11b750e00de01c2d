package entity

import (
	"errors"

	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/prefabs"
)

// ReloadTunables re-reads each mover's tunables file and applies it to the
// controller and its input sampler. Collider shapes are fixed at build time.
// A mover whose file fails to load keeps its current tunables.
func ReloadTunables(w *ecs.World) error {
	var errs []error
	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, mv *component.Mover) {
		if mv.Controller == nil {
			return
		}
		spec, err := prefabs.LoadMovementSpec(mv.Tunables)
		if err != nil {
			errs = append(errs, err)
			return
		}
		mv.Controller.SetConfig(spec.Tunables)
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok && in.Sampler != nil {
			in.Sampler.SetConfig(spec.Tunables)
		}
	})
	return errors.Join(errs...)
}
