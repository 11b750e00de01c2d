package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/movement"
)

// sensorInset keeps ground and ceiling boxes off the side walls.
const sensorInset = 0.05

// Query answers the movement sensor queries against static geometry.
type Query struct {
	space *cp.Space
}

var _ movement.CollisionQuery = (*Query)(nil)

func (q *Query) overlaps(bb cp.BB) bool {
	hit := false
	q.space.BBQuery(bb, solidFilter, func(shape *cp.Shape, data interface{}) {
		hit = true
	}, nil)
	return hit
}

func (q *Query) Ground(box cp.BB, dist float64) bool {
	return q.overlaps(cp.BB{L: box.L + sensorInset, B: box.B - dist, R: box.R - sensorInset, T: box.B})
}

func (q *Query) Ceiling(box cp.BB, dist float64) bool {
	return q.overlaps(cp.BB{L: box.L + sensorInset, B: box.T, R: box.R - sensorInset, T: box.T + dist})
}

// Wall casts from the box centre so a collider already touching the wall
// still registers it.
func (q *Query) Wall(side movement.Side, box cp.BB, dist float64) (cp.Vector, bool) {
	c := box.Center()
	edge := box.R
	if side == movement.SideLeft {
		edge = box.L
	}
	end := cp.Vector{X: edge + float64(side)*dist, Y: c.Y}

	info := q.space.SegmentQueryFirst(c, end, 0, solidFilter)
	if info.Shape == nil {
		return cp.Vector{}, false
	}
	return info.Normal, true
}

func (q *Query) WallAbove(box cp.BB) bool {
	return q.overlaps(box)
}

func (q *Query) Ledge(origin cp.Vector, clearance float64, anchor cp.Vector, radius float64) bool {
	top := cp.Vector{X: origin.X, Y: origin.Y + clearance}
	if q.space.SegmentQueryFirst(origin, top, 0, solidFilter).Shape != nil {
		return false
	}
	return q.space.PointQueryNearest(anchor, radius, solidFilter).Shape != nil
}
