package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/movement"
)

// PhysicsBody links an entity to its body in the physics backend.
type PhysicsBody struct {
	Body movement.Body
	Size cp.Vector
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
