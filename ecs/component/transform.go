package component

// Transform is the entity's world position (y-up, world units, collider
// centre) as of the last physics sync.
type Transform struct {
	X      float64
	Y      float64
	Facing float64
}

var TransformComponent = NewComponent[Transform]()
