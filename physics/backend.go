package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/movement"
)

// Backend is a physics world that can host the character: it hands out the
// body and query seams the movement controller is built on.
type Backend interface {
	Level() *levels.Level
	Character(shape movement.Shape, feet cp.Vector) movement.Body
	Collisions() movement.CollisionQuery
	Step(dt float64)
}

var _ Backend = (*World)(nil)

func (w *World) Character(shape movement.Shape, feet cp.Vector) movement.Body {
	return w.AddCharacter(shape, feet)
}

func (w *World) Collisions() movement.CollisionQuery {
	return w.Query()
}
