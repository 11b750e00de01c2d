package movement

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/tanema/gween/ease"
)

type dashSystem struct {
	dashing       bool
	canDash       bool
	timeRemaining float64
	progress      float64
	direction     cp.Vector
}

// dashCurve maps dash progress in [0,1] to a speed multiplier falling from 1
// to 0, slow at both ends.
func dashCurve(progress float64) float64 {
	p := math.Max(0, math.Min(1, progress))
	return float64(ease.InOutQuad(float32(p), 1, -1, 1))
}

func (d *dashSystem) sample(c *Controller) {
	if !c.input.DashDown || !d.canDash || d.dashing || c.ledge.phase != LedgeNone {
		return
	}

	if c.grab.grabbing {
		c.grab.detach()
		c.kin.velocity = cp.Vector{}
	}
	c.grab.canGrab = false

	move := c.input.Move
	dirX := c.kin.facing
	if math.Abs(move.X) > math.Abs(move.Y) {
		dirX = math.Copysign(1, move.X)
	}

	d.dashing = true
	d.canDash = false
	d.timeRemaining = c.cfg.DashDuration
	d.progress = 0
	d.direction = cp.Vector{X: dirX, Y: 0}
}

func (d *dashSystem) tick(c *Controller, dt float64) {
	if d.dashing {
		c.loco.zeroFriction(c)

		if x := c.input.Move.X; x != 0 && math.Copysign(1, x)*d.direction.X < 0 {
			d.cancel(c)
		} else {
			d.progress = math.Min(1, d.progress+dt/c.cfg.DashDuration)
			d.timeRemaining -= dt
			c.kin.velocity = d.direction.Mult(c.cfg.DashSpeed * dashCurve(d.progress))
			c.body.SetGravityScale(c.cfg.DashGravityScale)

			if d.timeRemaining <= 0 {
				d.cancel(c)
			}
		}
	}

	if c.kin.grounded && !d.dashing {
		d.canDash = true
	}
}

// cancel ends the dash, early or on schedule.
func (d *dashSystem) cancel(c *Controller) {
	d.dashing = false
	d.timeRemaining = 0
	c.kin.velocity = cp.Vector{}
	c.body.SetGravityScale(1)
	c.grab.startCooldown(c.cfg.GrabCooldown)
}
