package movement

import (
	"math"

	"github.com/milk9111/traversal/common"
)

// locomotion covers horizontal running, facing, wall sliding and the friction
// material choice.
type locomotion struct {
	wallSliding bool
	grabSliding bool
	pushing     bool
	material    Material

	frictionOff deadline
}

func (l *locomotion) face(c *Controller) {
	x := c.input.Move.X
	if x == 0 || c.grab.grabbing || c.ledge.phase != LedgeNone {
		return
	}
	c.kin.facing = math.Copysign(1, x)
}

func (l *locomotion) horizontal(c *Controller, dt float64) {
	x := c.input.Move.X
	if x == 0 {
		decel := c.cfg.AirDeceleration
		if c.kin.grounded {
			decel = c.cfg.GroundDeceleration
		}
		c.kin.velocity.X = common.MoveTowards(c.kin.velocity.X, 0, decel*dt)
		return
	}
	c.kin.velocity.X = common.MoveTowards(c.kin.velocity.X, x*c.cfg.MaxSpeed, c.cfg.Acceleration*dt)
}

// zeroFriction opens a short window in which the slippery material is forced.
func (l *locomotion) zeroFriction(c *Controller) {
	l.frictionOff.arm(c.kin.now, c.cfg.ZeroFrictionWindow)
}

func (l *locomotion) towardWall(c *Controller) bool {
	x := c.input.Move.X
	s := c.sense
	return (x < 0 && s.WallLeft && c.kin.facing < 0) || (x > 0 && s.WallRight && c.kin.facing > 0)
}

func (l *locomotion) slide(c *Controller) {
	toward := l.towardWall(c)
	vy := c.kin.velocity.Y

	l.wallSliding = !c.dash.dashing && !c.grab.grabbing && !c.kin.grounded && vy < 0 && toward
	l.grabSliding = c.grab.grabbing && vy < -c.cfg.GrabSlideThreshold
	l.pushing = c.kin.grounded && !c.grab.grabbing && toward

	m := MaterialSlippery
	if toward && !l.frictionOff.pending(c.kin.now) {
		m = MaterialGrippy
	}
	l.material = m
	c.body.SetMaterial(m)
}
