package movement

import "github.com/jakecoffman/cp"

// velocityIntegrator is the single writer of the body's velocity.
type velocityIntegrator struct {
	last cp.Vector
}

func (v *velocityIntegrator) apply(body Body, vel cp.Vector) {
	v.last = vel
	if body == nil {
		return
	}
	body.SetVelocity(vel)
}
