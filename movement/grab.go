package movement

import (
	"github.com/milk9111/traversal/common"
)

type wallGrabSystem struct {
	grabbing   bool
	climbSpeed float64

	canGrab  bool
	cooldown float64
}

// sample handles attach and release at frame rate so letting go of the grab
// button takes effect immediately.
func (g *wallGrabSystem) sample(c *Controller) {
	in := c.input

	if g.canGrab && in.GrabHeld && c.ledge.phase == LedgeNone {
		s := c.sensor.Sense(c.body.Position())
		side := SideOf(c.kin.facing)
		if s.WallAbove(side) && s.Wall(side) {
			if c.dash.dashing {
				c.dash.cancel(c)
			}
			if !g.grabbing {
				g.grabbing = true
				g.climbSpeed = 0
				c.kin.velocity.X = 0
				c.kin.velocity.Y = 0
			}
		}
	}

	if g.grabbing && !in.GrabHeld && c.ledge.phase != LedgeBegin {
		g.detach()
		c.kin.velocity.Y = 0
	}
}

// tick integrates the climb speed and owns velocity while grabbing.
func (g *wallGrabSystem) tick(c *Controller, dt float64) {
	if !g.grabbing {
		return
	}
	if !c.sense.AnyWall() {
		g.detach()
		c.kin.velocity.Y = 0
		return
	}

	var target float64
	switch y := c.input.Move.Y; {
	case y > 0:
		target = y * c.cfg.climbUp()
	case y < 0:
		target = y * c.cfg.climbDown()
	}

	rate := c.cfg.ClimbDeceleration
	if target != 0 {
		rate = c.cfg.ClimbAcceleration
	}
	g.climbSpeed = common.MoveTowards(g.climbSpeed, target, rate*dt)

	c.kin.velocity.X = 0
	c.kin.velocity.Y = g.climbSpeed
}

func (g *wallGrabSystem) detach() {
	g.grabbing = false
	g.climbSpeed = 0
}

func (g *wallGrabSystem) startCooldown(d float64) {
	g.canGrab = false
	g.cooldown = d
}

// rearm counts the cooldown down once per tick.
func (g *wallGrabSystem) rearm(dt float64) {
	if g.cooldown > 0 {
		g.cooldown -= dt
		return
	}
	g.canGrab = true
}
