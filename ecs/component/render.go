package component

import "image/color"

// BoxRender draws the collider as a filled box, tinted by movement state.
type BoxRender struct {
	Color      color.Color
	GrabColor  color.Color
	DashColor  color.Color
	ClimbColor color.Color
}

var BoxRenderComponent = NewComponent[BoxRender]()

// DebugOverlay toggles the sensor and physics overlay.
type DebugOverlay struct {
	Enabled bool
}

var DebugOverlayComponent = NewComponent[DebugOverlay]()
