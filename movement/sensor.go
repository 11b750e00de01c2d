package movement

import "github.com/jakecoffman/cp"

type Side int

const (
	SideLeft  Side = -1
	SideRight Side = 1
)

// SideOf maps a facing sign to a side; zero counts as right.
func SideOf(facing float64) Side {
	if facing < 0 {
		return SideLeft
	}
	return SideRight
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// CollisionQuery is the narrow view of the physics world the sensor needs.
// Implementations must ignore the character's own collider. A query that
// finds no geometry returns false.
type CollisionQuery interface {
	// Ground reports geometry within dist below box.
	Ground(box cp.BB, dist float64) bool
	// Ceiling reports geometry within dist above box.
	Ceiling(box cp.BB, dist float64) bool
	// Wall casts a ray of length dist outward from box's edge on side, at
	// centre height, and returns the surface normal of the hit.
	Wall(side Side, box cp.BB, dist float64) (normal cp.Vector, ok bool)
	// WallAbove reports geometry overlapping box.
	WallAbove(box cp.BB) bool
	// Ledge reports a free vertical ray of length clearance from origin and
	// geometry overlapping the circle at anchor.
	Ledge(origin cp.Vector, clearance float64, anchor cp.Vector, radius float64) bool
}

// Shape is the character collider plus sensor placement, relative to the
// body position (collider centre).
type Shape struct {
	Size cp.Vector `yaml:"size"`

	// WallAboveOffset is the centre of the right-hand wall-above box.
	WallAboveOffset cp.Vector `yaml:"wall_above_offset"`
	WallAboveSize   cp.Vector `yaml:"wall_above_size"`

	// LedgeAnchorOffset is the right-hand ledge anchor; the left one is mirrored.
	LedgeAnchorOffset cp.Vector `yaml:"ledge_anchor_offset"`
	LedgeRadius       float64   `yaml:"ledge_radius"`
	LedgeClearance    float64   `yaml:"ledge_clearance"`
}

func DefaultShape() Shape {
	return Shape{
		Size:              cp.Vector{X: 0.8, Y: 1.8},
		WallAboveOffset:   cp.Vector{X: 0.5, Y: 0.7},
		WallAboveSize:     cp.Vector{X: 0.2, Y: 0.3},
		LedgeAnchorOffset: cp.Vector{X: 0.55, Y: 1.05},
		LedgeRadius:       0.1,
		LedgeClearance:    1.2,
	}
}

// Bounds is the collider box at pos.
func (s Shape) Bounds(pos cp.Vector) cp.BB {
	return cp.NewBBForExtents(pos, s.Size.X/2, s.Size.Y/2)
}

func (s Shape) WallAboveBox(pos cp.Vector, side Side) cp.BB {
	c := cp.Vector{X: pos.X + s.WallAboveOffset.X*float64(side), Y: pos.Y + s.WallAboveOffset.Y}
	return cp.NewBBForExtents(c, s.WallAboveSize.X/2, s.WallAboveSize.Y/2)
}

func (s Shape) LedgeAnchor(pos cp.Vector, side Side) cp.Vector {
	return cp.Vector{X: pos.X + s.LedgeAnchorOffset.X*float64(side), Y: pos.Y + s.LedgeAnchorOffset.Y}
}

// SensorResult is recomputed every tick and never persisted.
type SensorResult struct {
	Ground  bool
	Ceiling bool

	WallLeft   bool
	WallRight  bool
	WallNormal cp.Vector

	WallAboveLeft  bool
	WallAboveRight bool

	LedgeLeft        bool
	LedgeRight       bool
	LedgeAnchorLeft  cp.Vector
	LedgeAnchorRight cp.Vector
}

func (r SensorResult) Wall(side Side) bool {
	if side == SideLeft {
		return r.WallLeft
	}
	return r.WallRight
}

func (r SensorResult) AnyWall() bool {
	return r.WallLeft || r.WallRight
}

func (r SensorResult) WallAbove(side Side) bool {
	if side == SideLeft {
		return r.WallAboveLeft
	}
	return r.WallAboveRight
}

func (r SensorResult) Ledge(side Side) (cp.Vector, bool) {
	if side == SideLeft {
		return r.LedgeAnchorLeft, r.LedgeLeft
	}
	return r.LedgeAnchorRight, r.LedgeRight
}

// EnvironmentSensor turns CollisionQuery answers into a SensorResult.
type EnvironmentSensor struct {
	query CollisionQuery
	shape Shape
	dist  float64
}

func NewEnvironmentSensor(query CollisionQuery, shape Shape, grounderDistance float64) EnvironmentSensor {
	return EnvironmentSensor{query: query, shape: shape, dist: grounderDistance}
}

// Sense is a stateless read of the world around pos.
func (s EnvironmentSensor) Sense(pos cp.Vector) SensorResult {
	var r SensorResult
	if s.query == nil {
		return r
	}

	box := s.shape.Bounds(pos)
	r.Ground = s.query.Ground(box, s.dist)
	r.Ceiling = s.query.Ceiling(box, s.dist)

	leftNormal, left := s.query.Wall(SideLeft, box, s.dist)
	rightNormal, right := s.query.Wall(SideRight, box, s.dist)
	r.WallLeft, r.WallRight = left, right
	switch {
	case left:
		r.WallNormal = leftNormal
	case right:
		r.WallNormal = rightNormal
	}

	r.WallAboveLeft = s.query.WallAbove(s.shape.WallAboveBox(pos, SideLeft))
	r.WallAboveRight = s.query.WallAbove(s.shape.WallAboveBox(pos, SideRight))

	r.LedgeAnchorLeft = s.shape.LedgeAnchor(pos, SideLeft)
	r.LedgeAnchorRight = s.shape.LedgeAnchor(pos, SideRight)
	r.LedgeLeft = s.query.Ledge(pos, s.shape.LedgeClearance, r.LedgeAnchorLeft, s.shape.LedgeRadius)
	r.LedgeRight = s.query.Ledge(pos, s.shape.LedgeClearance, r.LedgeAnchorRight, s.shape.LedgeRadius)

	return r
}
