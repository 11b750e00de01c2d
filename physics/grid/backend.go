package grid

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/movement"
	"github.com/milk9111/traversal/physics"
)

var _ physics.Backend = (*World)(nil)

func (w *World) Character(shape movement.Shape, feet cp.Vector) movement.Body {
	return w.AddCharacter(shape, feet)
}

func (w *World) Collisions() movement.CollisionQuery {
	return w.Query()
}
