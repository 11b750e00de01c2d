package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/levels"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
)

const (
	categorySolid uint = 1 << iota
	categoryCharacter
)

// solidFilter is used by every query so the character never sees itself.
var solidFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySolid)

const solidFriction = 0.8

const (
	// maxStepTravel matches Chipmunk's default collision slop. A substep never
	// moves the character further than the solver lets it overlap.
	maxStepTravel = 0.1
	maxSubsteps   = 32
)

// World owns the Chipmunk space and the static level geometry.
type World struct {
	level *levels.Level
	space *cp.Space

	solids    []*cp.Shape
	character *Body
}

// NewWorld builds a space holding one static box per merged run of solid
// tiles plus segments along the level bounds.
func NewWorld(level *levels.Level) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	w := &World{level: level, space: space}
	w.buildStaticShapes()
	return w
}

func (w *World) buildStaticShapes() {
	if w.level == nil {
		return
	}

	for _, bb := range w.level.Rects() {
		shape := cp.NewBox2(w.space.StaticBody, bb, 0)
		w.addSolid(shape)
	}

	bounds := w.level.Bounds()
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: bounds.L, Y: bounds.T}, b: cp.Vector{X: bounds.R, Y: bounds.T}},
		{a: cp.Vector{X: bounds.L, Y: bounds.B}, b: cp.Vector{X: bounds.R, Y: bounds.B}},
		{a: cp.Vector{X: bounds.L, Y: bounds.B}, b: cp.Vector{X: bounds.L, Y: bounds.T}},
		{a: cp.Vector{X: bounds.R, Y: bounds.B}, b: cp.Vector{X: bounds.R, Y: bounds.T}},
	}
	for _, seg := range segments {
		w.addSolid(cp.NewSegment(w.space.StaticBody, seg.a, seg.b, 0))
	}
}

func (w *World) addSolid(shape *cp.Shape) {
	shape.SetFriction(solidFriction)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	w.solids = append(w.solids, shape)
}

func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Level() *levels.Level {
	return w.level
}

// SolidCount is the number of static shapes, merged boxes and bounds.
func (w *World) SolidCount() int {
	return len(w.solids)
}

// Query returns the collision query view of this world.
func (w *World) Query() *Query {
	return &Query{space: w.space}
}

// Step advances the simulation by dt, split into substeps short enough that
// the character cannot cross a wall between two of them. Chipmunk integrates
// positions before it solves contacts, and the controller rewrites the
// velocity every tick, so the character is pushed back out of solids after
// each substep instead of relying on the solver's bias.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	n := w.substeps(dt)
	for i := 0; i < n; i++ {
		w.space.Step(dt / float64(n))
		w.character.depenetrate()
	}
}

func (w *World) substeps(dt float64) int {
	if w.character == nil || w.character.kinematic {
		return 1
	}
	travel := w.character.body.Velocity().Length() * dt
	n := int(math.Ceil(travel / maxStepTravel))
	return min(max(n, 1), maxSubsteps)
}
