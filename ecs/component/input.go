package component

import "github.com/milk9111/traversal/movement"

// Input stores the entity's sampler, its raw source and the frame sampled
// last.
type Input struct {
	Source  movement.InputSource
	Sampler *movement.InputSampler
	Frame   movement.FrameInput
}

var InputComponent = NewComponent[Input]()
