package component

import (
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ClimbAnimation plays the ledge-climb animation. The controller holds the
// character until the animation reports completion.
type ClimbAnimation struct {
	Duration float64
	Ease     ease.TweenFunc

	Tween    *gween.Tween
	Progress float64
	From     cp.Vector
	To       cp.Vector

	// State is the animation state name derived from the controller.
	State string
}

var ClimbAnimationComponent = NewComponent[ClimbAnimation]()
