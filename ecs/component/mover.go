package component

import "github.com/milk9111/traversal/movement"

// Mover owns the movement controller and the collider shape it senses with.
type Mover struct {
	Controller *movement.Controller
	Shape      movement.Shape
	Tunables   string
}

var MoverComponent = NewComponent[Mover]()
