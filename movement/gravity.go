package movement

import "github.com/milk9111/traversal/common"

// gravitySolver resolves vertical velocity for every state that has no
// kinematic override.
type gravitySolver struct{}

func (gravitySolver) tick(c *Controller, dt float64) {
	if c.ledge.phase != LedgeNone {
		c.body.SetGravityScale(0)
		c.kin.velocity.X, c.kin.velocity.Y = 0, 0
		return
	}
	if c.grab.grabbing {
		c.body.SetGravityScale(0)
		return
	}

	c.body.SetGravityScale(1)
	c.kin.velocity.Y = fallVelocity(c.cfg, c.kin.velocity.Y, c.kin.grounded, c.input.Move.Y < 0, c.jump.endedJumpEarly, dt)
}

// fallVelocity moves vy toward the fall target without overshooting it.
func fallVelocity(cfg Config, vy float64, grounded, fastFall, endedEarly bool, dt float64) float64 {
	if grounded && vy <= 0 {
		return cfg.GroundingForce
	}

	fallSpeed := cfg.MaxFallSpeed
	if fastFall {
		fallSpeed *= cfg.FastFallMultiplier
	}
	accel := cfg.FallAcceleration
	if endedEarly && vy > 0 {
		accel *= cfg.JumpEndEarlyGravityModifier
	}
	return common.MoveTowards(vy, -fallSpeed, accel*dt)
}
