package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/movement"
)

const (
	characterMass = 1.0

	// Contacts shallower than this count as touching.
	contactTolerance  = 1e-6
	maxDepenetrations = 4
)

var materialFriction = map[movement.Material]float64{
	movement.MaterialGrippy:   1.0,
	movement.MaterialSlippery: 0.0,
}

// Body is the character's rigid body. It never rotates.
type Body struct {
	space *cp.Space
	body  *cp.Body
	shape *cp.Shape

	gravityScale float64
	kinematic    bool
	material     movement.Material
}

var _ movement.Body = (*Body)(nil)

// AddCharacter creates the character body with its feet at feet. Only one
// character is supported per world.
func (w *World) AddCharacter(s movement.Shape, feet cp.Vector) *Body {
	if w.character != nil {
		return w.character
	}

	body := cp.NewBody(characterMass, math.Inf(1))
	body.SetPosition(cp.Vector{X: feet.X, Y: feet.Y + s.Size.Y/2})

	shape := cp.NewBox(body, s.Size.X, s.Size.Y, 0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryCharacter, categorySolid))

	w.space.AddBody(body)
	w.space.AddShape(shape)
	shape.SetMass(characterMass)
	body.SetMoment(math.Inf(1))

	b := &Body{space: w.space, body: body, shape: shape, gravityScale: 1}
	body.SetVelocityUpdateFunc(func(cb *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(cb, gravity.Mult(b.gravityScale), damping, dt)
	})
	b.SetMaterial(movement.MaterialSlippery)

	w.character = b
	return b
}

func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

func (b *Body) SetPosition(p cp.Vector) {
	b.body.SetPosition(p)
}

func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	b.body.SetVelocityVector(v)
}

func (b *Body) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

// SetKinematic switches the body type. Going back to dynamic recomputes mass
// from the shape, so rotation has to be locked again.
func (b *Body) SetKinematic(kinematic bool) {
	if b.kinematic == kinematic {
		return
	}
	b.kinematic = kinematic
	if kinematic {
		b.body.SetType(cp.BODY_KINEMATIC)
		return
	}
	b.body.SetType(cp.BODY_DYNAMIC)
	b.body.SetMoment(math.Inf(1))
}

func (b *Body) Kinematic() bool {
	return b.kinematic
}

func (b *Body) SetMaterial(m movement.Material) {
	b.material = m
	b.shape.SetFriction(materialFriction[m])
}

func (b *Body) Material() movement.Material {
	return b.material
}

// Bounds is the collider's current world box.
func (b *Body) Bounds() cp.BB {
	return b.shape.BB()
}

// depenetrate pushes the character out of static geometry, deepest contact
// first, and drops the part of its velocity that points into the surface.
// Resolving the deepest contact first keeps seams between boxes from
// catching a body sliding across them.
func (b *Body) depenetrate() {
	if b == nil || b.kinematic {
		return
	}
	for i := 0; i < maxDepenetrations; i++ {
		var push cp.Vector
		deepest := -contactTolerance
		b.space.ShapeQuery(b.shape, func(_ *cp.Shape, points *cp.ContactPointSet) {
			for j := 0; j < points.Count; j++ {
				if d := points.Points[j].Distance; d < deepest {
					deepest = d
					push = points.Normal.Mult(d)
				}
			}
		})
		if push == (cp.Vector{}) {
			return
		}

		b.body.SetPosition(b.body.Position().Add(push))
		out := push.Normalize()
		v := b.body.Velocity()
		if into := v.Dot(out); into < 0 {
			b.body.SetVelocityVector(v.Sub(out.Mult(into)))
		}
	}
}
