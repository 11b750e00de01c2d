package grid

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/movement"
)

const sensorInset = 0.05

// Query answers sensor queries against the tile grid. Every solid is an axis
// aligned box, so wall normals are always horizontal.
type Query struct {
	world *World
}

var _ movement.CollisionQuery = (*Query)(nil)

func (q *Query) Ground(box cp.BB, dist float64) bool {
	return q.world.overlaps(cp.BB{L: box.L + sensorInset, B: box.B - dist, R: box.R - sensorInset, T: box.B})
}

func (q *Query) Ceiling(box cp.BB, dist float64) bool {
	return q.world.overlaps(cp.BB{L: box.L + sensorInset, B: box.T, R: box.R - sensorInset, T: box.T + dist})
}

// Wall sweeps from the box centre to dist past the edge on side.
func (q *Query) Wall(side movement.Side, box cp.BB, dist float64) (cp.Vector, bool) {
	c := box.Center()
	ray := cp.BB{L: c.X, B: c.Y, R: box.R + dist, T: c.Y}
	if side == movement.SideLeft {
		ray = cp.BB{L: box.L - dist, B: c.Y, R: c.X, T: c.Y}
	}
	if !q.world.overlaps(ray) {
		return cp.Vector{}, false
	}
	return cp.Vector{X: -float64(side)}, true
}

func (q *Query) WallAbove(box cp.BB) bool {
	return q.world.overlaps(box)
}

func (q *Query) Ledge(origin cp.Vector, clearance float64, anchor cp.Vector, radius float64) bool {
	if q.world.overlaps(cp.BB{L: origin.X, B: origin.Y, R: origin.X, T: origin.Y + clearance}) {
		return false
	}
	circle := cp.NewBBForCircle(anchor, radius)
	return q.world.solidIn(circle, func(solid cp.BB) bool {
		nearest := cp.Vector{X: clampf(anchor.X, solid.L, solid.R), Y: clampf(anchor.Y, solid.B, solid.T)}
		return nearest.DistanceSq(anchor) <= radius*radius
	})
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
