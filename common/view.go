package common

import "github.com/jakecoffman/cp"

// View maps y-up world units to y-down screen pixels.
type View struct {
	// Camera is the world point drawn at the centre of the screen.
	Camera cp.Vector
	// Scale is pixels per world unit.
	Scale float64

	Width, Height float64
}

func NewView(width, height float64) View {
	return View{Scale: PixelsPerUnit, Width: width, Height: height}
}

func (v View) ToScreen(p cp.Vector) (float64, float64) {
	return (p.X-v.Camera.X)*v.Scale + v.Width/2, v.Height/2 - (p.Y-v.Camera.Y)*v.Scale
}

// RectToScreen returns the top-left corner and size of bb in pixels.
func (v View) RectToScreen(bb cp.BB) (x, y, w, h float64) {
	x, y = v.ToScreen(cp.Vector{X: bb.L, Y: bb.T})
	return x, y, (bb.R - bb.L) * v.Scale, (bb.T - bb.B) * v.Scale
}

// Follow moves the camera toward target by factor t and keeps the view inside
// bounds when the bounds are larger than the screen.
func (v *View) Follow(target cp.Vector, t float64, bounds cp.BB) {
	v.Camera.X = float64(Lerp(float32(v.Camera.X), float32(target.X), float32(t)))
	v.Camera.Y = float64(Lerp(float32(v.Camera.Y), float32(target.Y), float32(t)))

	halfW := v.Width / 2 / v.Scale
	halfH := v.Height / 2 / v.Scale
	if bounds.R-bounds.L > 2*halfW {
		v.Camera.X = clamp(v.Camera.X, bounds.L+halfW, bounds.R-halfW)
	} else {
		v.Camera.X = (bounds.L + bounds.R) / 2
	}
	if bounds.T-bounds.B > 2*halfH {
		v.Camera.Y = clamp(v.Camera.Y, bounds.B+halfH, bounds.T-halfH)
	} else {
		v.Camera.Y = (bounds.B + bounds.T) / 2
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
