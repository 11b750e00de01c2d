package component

import "github.com/milk9111/traversal/common"

// Camera follows its target with Follow as the per-frame lerp factor.
type Camera struct {
	Follow float64
	View   common.View
}

var CameraComponent = NewComponent[Camera]()
