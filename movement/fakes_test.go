package movement

import (
	"testing"

	"github.com/jakecoffman/cp"
)

const testDT = 0.02

// fakeQuery answers every query from flags, deciding the side from where the
// box sits relative to the body.
type fakeQuery struct {
	body *fakeBody

	ground, ceiling       bool
	wallLeft, wallRight   bool
	aboveLeft, aboveRight bool
	ledgeLeft, ledgeRight bool
}

func (q *fakeQuery) Ground(box cp.BB, dist float64) bool  { return q.ground }
func (q *fakeQuery) Ceiling(box cp.BB, dist float64) bool { return q.ceiling }

func (q *fakeQuery) Wall(side Side, box cp.BB, dist float64) (cp.Vector, bool) {
	if side == SideLeft {
		return cp.Vector{X: 1}, q.wallLeft
	}
	return cp.Vector{X: -1}, q.wallRight
}

func (q *fakeQuery) WallAbove(box cp.BB) bool {
	if box.Center().X < q.body.pos.X {
		return q.aboveLeft
	}
	return q.aboveRight
}

func (q *fakeQuery) Ledge(origin cp.Vector, clearance float64, anchor cp.Vector, radius float64) bool {
	if anchor.X < origin.X {
		return q.ledgeLeft
	}
	return q.ledgeRight
}

// fakeBody records writes and never integrates on its own.
type fakeBody struct {
	pos          cp.Vector
	vel          cp.Vector
	gravityScale float64
	kinematic    bool
	material     Material

	velocityWrites int
	positionWrites int
}

func (b *fakeBody) Position() cp.Vector { return b.pos }
func (b *fakeBody) SetPosition(p cp.Vector) {
	b.pos = p
	b.positionWrites++
}
func (b *fakeBody) Velocity() cp.Vector { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) {
	b.vel = v
	b.velocityWrites++
}
func (b *fakeBody) SetGravityScale(scale float64) { b.gravityScale = scale }
func (b *fakeBody) SetKinematic(k bool)           { b.kinematic = k }
func (b *fakeBody) SetMaterial(m Material)        { b.material = m }

type rig struct {
	c    *Controller
	body *fakeBody
	q    *fakeQuery
	cfg  Config
}

func newRig(t *testing.T, opts ...Option) *rig {
	t.Helper()
	cfg := DefaultConfig()
	body := &fakeBody{gravityScale: 1}
	q := &fakeQuery{body: body}
	return &rig{
		c:    New(cfg, DefaultShape(), q, body, opts...),
		body: body,
		q:    q,
		cfg:  cfg,
	}
}

// step runs one frame followed by one tick.
func (r *rig) step(in FrameInput) {
	r.c.Update(in)
	r.c.Tick(testDT)
}

func (r *rig) steps(n int, in FrameInput) {
	for i := 0; i < n; i++ {
		r.step(in)
	}
}

func (r *rig) ground(t *testing.T) {
	t.Helper()
	r.q.ground = true
	r.steps(3, FrameInput{})
	if !r.c.IsGrounded() {
		t.Fatalf("expected grounded after settling")
	}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

var (
	jumpPress = FrameInput{JumpDown: true, JumpHeld: true}
	jumpHold  = FrameInput{JumpHeld: true}
)
