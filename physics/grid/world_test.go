package grid

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/movement"
)

// blockLevel is a floor with a 3x3 block on the right:
//
//	..........
//	..........
//	.......###
//	.......###
//	.......###
//	##########
func blockLevel(t *testing.T) *levels.Level {
	t.Helper()
	const w, h = 10, 6
	tiles := make([]int, w*h)
	for x := 0; x < w; x++ {
		tiles[5*w+x] = 1
	}
	for y := 2; y <= 4; y++ {
		for x := 7; x < w; x++ {
			tiles[y*w+x] = 1
		}
	}
	lvl, err := levels.New("block", w, h, tiles, 2, 4)
	if err != nil {
		t.Fatalf("levels.New: %v", err)
	}
	return lvl
}

func TestPixelConversion(t *testing.T) {
	w := NewWorld(blockLevel(t))
	bb := cp.BB{L: 1, B: 2, R: 3, T: 5}

	x, y, width, height := w.toPixels(bb)
	s := float64(common.PixelsPerUnit)
	if x != 1*s || y != 1*s || width != 2*s || height != 3*s {
		t.Fatalf("toPixels = %v %v %v %v", x, y, width, height)
	}
	if got := w.fromPixels(x, y, width, height); got != bb {
		t.Fatalf("fromPixels = %v, want %v", got, bb)
	}
}

func TestQuery(t *testing.T) {
	w := NewWorld(blockLevel(t))
	if w.SolidCount() != 2 {
		t.Fatalf("SolidCount = %d, want 2", w.SolidCount())
	}
	q := w.Query()
	shape := movement.DefaultShape()

	cases := []struct {
		name string
		got  bool
		want bool
	}{
		{"ground_on_floor", q.Ground(shape.Bounds(cp.Vector{X: 2.5, Y: 1.9}), 0.05), true},
		{"ground_flush_zero_distance", q.Ground(shape.Bounds(cp.Vector{X: 2.5, Y: 1.9}), 0), true},
		{"ground_mid_air", q.Ground(shape.Bounds(cp.Vector{X: 2.5, Y: 3}), 0.05), false},
		{"ceiling_at_top_edge", q.Ceiling(shape.Bounds(cp.Vector{X: 2.5, Y: 5.08}), 0.05), true},
		{"ceiling_open", q.Ceiling(shape.Bounds(cp.Vector{X: 2.5, Y: 2}), 0.05), false},
		{"wall_above_in_block", q.WallAbove(shape.WallAboveBox(cp.Vector{X: 6.6, Y: 2.5}, movement.SideRight)), true},
		{"wall_above_open", q.WallAbove(shape.WallAboveBox(cp.Vector{X: 6.6, Y: 2.5}, movement.SideLeft)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Fatalf("got %v, want %v", c.got, c.want)
			}
		})
	}

	t.Run("wall_normals", func(t *testing.T) {
		box := shape.Bounds(cp.Vector{X: 6.6, Y: 2.5})
		n, ok := q.Wall(movement.SideRight, box, 0.05)
		if !ok || n != (cp.Vector{X: -1}) {
			t.Fatalf("right wall = %v, %v", n, ok)
		}
		if _, ok := q.Wall(movement.SideLeft, box, 0.05); ok {
			t.Fatalf("nothing on the left")
		}

		edge := shape.Bounds(cp.Vector{X: 0.4, Y: 2.5})
		n, ok = q.Wall(movement.SideLeft, edge, 0.05)
		if !ok || n != (cp.Vector{X: 1}) {
			t.Fatalf("level edge = %v, %v", n, ok)
		}
	})

	t.Run("ledge", func(t *testing.T) {
		pos := cp.Vector{X: 6.6, Y: 2.9}
		if !q.Ledge(pos, shape.LedgeClearance, shape.LedgeAnchor(pos, movement.SideRight), shape.LedgeRadius) {
			t.Fatalf("block corner should be a ledge")
		}
		away := cp.Vector{X: 3, Y: 2.9}
		if q.Ledge(away, shape.LedgeClearance, shape.LedgeAnchor(away, movement.SideRight), shape.LedgeRadius) {
			t.Fatalf("no ledge in open air")
		}
		high := cp.Vector{X: 6.6, Y: 4.5}
		if q.Ledge(high, 2, shape.LedgeAnchor(high, movement.SideRight), shape.LedgeRadius) {
			t.Fatalf("clearance through the top edge must block the ledge")
		}
	})
}

func TestBodyFallsAndLands(t *testing.T) {
	w := NewWorld(blockLevel(t))
	shape := movement.DefaultShape()
	b := w.AddCharacter(shape, cp.Vector{X: 2.5, Y: 3})

	for i := 0; i < 200; i++ {
		w.Step(common.FixedStep)
	}

	want := 1 + shape.Size.Y/2
	if got := b.Position().Y; math.Abs(got-want) > 1e-6 {
		t.Fatalf("resting y = %v, want %v", got, want)
	}
	if b.Velocity().Y != 0 {
		t.Fatalf("landing should zero vertical velocity, got %v", b.Velocity().Y)
	}
}

func TestBodyGravityScaleAndKinematic(t *testing.T) {
	w := NewWorld(blockLevel(t))
	b := w.AddCharacter(movement.DefaultShape(), cp.Vector{X: 2.5, Y: 3})
	start := b.Position()

	b.SetGravityScale(0)
	for i := 0; i < 10; i++ {
		w.Step(common.FixedStep)
	}
	if got := b.Position(); math.Abs(got.Y-start.Y) > 1e-9 {
		t.Fatalf("zero gravity moved the body to %v", got)
	}

	b.SetGravityScale(1)
	b.SetKinematic(true)
	b.SetVelocity(cp.Vector{X: 1})
	for i := 0; i < 10; i++ {
		w.Step(common.FixedStep)
	}
	got := b.Position()
	if math.Abs(got.Y-start.Y) > 1e-9 {
		t.Fatalf("kinematic body must ignore gravity, y=%v", got.Y)
	}
	if math.Abs(got.X-(start.X+0.2)) > 1e-9 {
		t.Fatalf("kinematic body x = %v, want %v", got.X, start.X+0.2)
	}
}

func TestControllerOnGrid(t *testing.T) {
	w := NewWorld(blockLevel(t))
	shape := movement.DefaultShape()
	body := w.AddCharacter(shape, w.Level().SpawnFeet())
	c := movement.New(movement.DefaultConfig(), shape, w.Query(), body)

	in := movement.FrameInput{Move: cp.Vector{X: 1}}
	for i := 0; i < 150; i++ {
		c.Update(in)
		c.Tick(common.FixedStep)
		w.Step(common.FixedStep)
	}

	if !c.IsGrounded() {
		t.Fatalf("controller should be grounded")
	}
	if got := body.Bounds().R; math.Abs(got-7) > 1e-6 {
		t.Fatalf("collider should stop flush at the block, R=%v", got)
	}
	if !c.Sensors().WallRight {
		t.Fatalf("wall on the right should be sensed")
	}
}
