package movement

import (
	"math"

	"github.com/jakecoffman/cp"
)

type jumpSystem struct {
	pending            bool
	bufferedJumpUsable bool
	coyoteUsable       bool
	endedJumpEarly     bool

	timeJumpPressed     float64
	timeWallJumpPressed float64

	canWallJump bool
	wallNormal  cp.Vector
}

func newJumpSystem() jumpSystem {
	return jumpSystem{
		timeJumpPressed:     math.Inf(-1),
		timeWallJumpPressed: math.Inf(-1),
	}
}

// sample stamps presses and tracks early release at frame rate.
func (j *jumpSystem) sample(c *Controller) {
	in := c.input
	if in.JumpDown {
		j.pending = true
		j.timeJumpPressed = c.kin.now
		j.timeWallJumpPressed = c.kin.now
	}
	if !j.endedJumpEarly && !c.kin.grounded && !in.JumpHeld && c.body.Velocity().Y > 0 {
		j.endedJumpEarly = true
	}
}

func (j *jumpSystem) landed() {
	j.coyoteUsable = true
	j.bufferedJumpUsable = true
	j.endedJumpEarly = false
}

func (j *jumpSystem) hasBufferedJump(c *Controller) bool {
	return j.bufferedJumpUsable && c.kin.now < j.timeJumpPressed+c.cfg.JumpBuffer
}

func (j *jumpSystem) canUseCoyote(c *Controller) bool {
	return j.coyoteUsable && !c.kin.grounded && c.kin.now < c.kin.leftGroundAt+c.cfg.CoyoteTime
}

func (j *jumpSystem) hasBufferedWallJump(c *Controller) bool {
	return j.canWallJump && c.kin.now < j.timeWallJumpPressed+c.cfg.JumpBuffer
}

func (j *jumpSystem) tick(c *Controller) {
	if !j.pending && !j.hasBufferedJump(c) && !j.hasBufferedWallJump(c) {
		return
	}

	switch {
	case c.grab.grabbing && c.kin.grounded:
		j.wallJump(c)
	case c.kin.grounded || j.canUseCoyote(c):
		switch {
		case c.grab.grabbing:
			j.wallJump(c)
		case c.dash.dashing:
			j.dashJump(c)
		default:
			j.groundJump(c)
		}
	case j.canWallJump && (j.pending || j.hasBufferedWallJump(c)):
		j.wallJump(c)
	}

	j.pending = false
}

func (j *jumpSystem) consume() {
	j.endedJumpEarly = false
	j.timeJumpPressed = math.Inf(-1)
	j.timeWallJumpPressed = math.Inf(-1)
	j.bufferedJumpUsable = false
	j.coyoteUsable = false
}

func (j *jumpSystem) groundJump(c *Controller) {
	j.consume()
	c.loco.zeroFriction(c)
	c.kin.velocity.Y = c.cfg.JumpPower
	c.emit(Event{Kind: EventJumped})
}

// dashJump turns an active dash into a jump that keeps a share of the dash's
// horizontal momentum.
func (j *jumpSystem) dashJump(c *Controller) {
	dir := c.dash.direction
	c.dash.dashing = false
	c.body.SetGravityScale(1)
	j.consume()
	c.kin.velocity.Y = c.cfg.JumpPower
	c.kin.velocity.X += dir.X * c.cfg.DashHorizontalBoost
	c.emit(Event{Kind: EventJumped})
}

func (j *jumpSystem) wallJumpBlocked(c *Controller) bool {
	return c.kin.now < c.ledge.wallJumpBlockedUntil
}

func (j *jumpSystem) wallJump(c *Controller) {
	if j.wallJumpBlocked(c) {
		return
	}
	if c.dash.dashing {
		c.dash.cancel(c)
	}

	j.consume()

	if c.grab.grabbing {
		c.loco.zeroFriction(c)
		c.kin.velocity = cp.Vector{X: 0, Y: c.cfg.JumpPower}
		c.grab.detach()
		c.body.SetGravityScale(1)
		c.grab.startCooldown(c.cfg.GrabCooldown)
	} else {
		c.kin.velocity = cp.Vector{X: j.wallNormal.X * c.cfg.WallJumpPushForce, Y: c.cfg.JumpPower}
	}

	c.emit(Event{Kind: EventJumped})
	c.emit(Event{Kind: EventWallJumped})
}
