package grid

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/movement"
	"github.com/solarlune/resolv"
)

// Body is the character box. Material is recorded but has no effect: the grid
// has no friction.
type Body struct {
	world *World
	obj   *resolv.Object
	size  cp.Vector

	velocity     cp.Vector
	gravityScale float64
	kinematic    bool
	material     movement.Material
}

var _ movement.Body = (*Body)(nil)

// AddCharacter places the character with its feet at feet. Only one character
// is supported per world.
func (w *World) AddCharacter(s movement.Shape, feet cp.Vector) *Body {
	if w.character != nil {
		return w.character
	}

	b := &Body{world: w, size: s.Size, gravityScale: 1, material: movement.MaterialSlippery}
	_, _, pw, ph := w.toPixels(cp.BB{R: s.Size.X, T: s.Size.Y})
	b.obj = resolv.NewObject(0, 0, pw, ph, tagCharacter)
	b.obj.SetShape(resolv.NewRectangle(0, 0, pw, ph))
	w.space.Add(b.obj)
	b.SetPosition(cp.Vector{X: feet.X, Y: feet.Y + s.Size.Y/2})

	w.character = b
	return b
}

func (b *Body) Position() cp.Vector {
	return b.Bounds().Center()
}

func (b *Body) SetPosition(p cp.Vector) {
	x, y, _, _ := b.world.toPixels(cp.NewBBForExtents(p, b.size.X/2, b.size.Y/2))
	b.obj.X, b.obj.Y = x, y
	b.obj.Update()
}

func (b *Body) Velocity() cp.Vector {
	return b.velocity
}

func (b *Body) SetVelocity(v cp.Vector) {
	b.velocity = v
}

func (b *Body) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

func (b *Body) SetKinematic(kinematic bool) {
	b.kinematic = kinematic
}

func (b *Body) Kinematic() bool {
	return b.kinematic
}

func (b *Body) SetMaterial(m movement.Material) {
	b.material = m
}

func (b *Body) Material() movement.Material {
	return b.material
}

// Bounds is the collider's current world box.
func (b *Body) Bounds() cp.BB {
	return b.world.fromPixels(b.obj.X, b.obj.Y, b.obj.W, b.obj.H)
}

func (b *Body) step(dt float64) {
	if b.kinematic {
		b.translate(b.velocity.Mult(dt))
		return
	}

	b.velocity.Y += common.Gravity * b.gravityScale * dt

	// y-down pixels
	dx := b.velocity.X * dt * b.world.scale
	dy := -b.velocity.Y * dt * b.world.scale

	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxStepPixels))
	if steps < 1 {
		steps = 1
	}
	sx, sy := dx/float64(steps), dy/float64(steps)
	for i := 0; i < steps; i++ {
		if sx != 0 && b.sweep(sx, 0) {
			sx = 0
			b.velocity.X = 0
		}
		if sy != 0 && b.sweep(0, sy) {
			sy = 0
			b.velocity.Y = 0
		}
	}
}

// sweep moves the box along one axis and stops it flush against the nearest
// solid in the way. It reports whether the move was blocked.
func (b *Body) sweep(dx, dy float64) bool {
	moved := b.world.fromPixels(b.obj.X+dx, b.obj.Y+dy, b.obj.W, b.obj.H)

	blocked := b.world.outside(moved)
	if blocked {
		dx, dy = b.clampToBounds(dx, dy)
	}

	if check := b.obj.Check(dx, dy, tagSolid); check != nil {
		best := math.Inf(1)
		for _, solid := range check.ObjectsByTags(tagSolid) {
			if !overlapsStrict(b.world.solids[solid], moved) {
				continue
			}
			contact := check.ContactWithObject(solid)
			d := math.Abs(contact.X()) + math.Abs(contact.Y())
			if d < best {
				best = d
				if dx != 0 {
					dx = contact.X()
				}
				if dy != 0 {
					dy = contact.Y()
				}
				blocked = true
			}
		}
	}

	b.obj.X += dx
	b.obj.Y += dy
	b.obj.Update()
	return blocked
}

func (b *Body) clampToBounds(dx, dy float64) (float64, float64) {
	maxX, maxY := b.world.scale*float64(b.world.level.Width), b.world.scale*b.world.height
	dx = clampf(b.obj.X+dx, 0, maxX-b.obj.W) - b.obj.X
	dy = clampf(b.obj.Y+dy, 0, maxY-b.obj.H) - b.obj.Y
	return dx, dy
}

func (b *Body) translate(d cp.Vector) {
	b.SetPosition(b.Position().Add(d))
}

// overlapsStrict ignores boxes that only touch, so a body resting flush on a
// tile can still slide along it.
func overlapsStrict(a, b cp.BB) bool {
	const eps = 1e-9
	return a.L < b.R-eps && b.L < a.R-eps && a.B < b.T-eps && b.B < a.T-eps
}
