package movement

import "github.com/jakecoffman/cp"

// LedgePhase is exposed so the animation layer can follow the climb.
type LedgePhase int

const (
	LedgeNone LedgePhase = iota
	LedgeBegin
	LedgeClimbOver
)

func (p LedgePhase) String() string {
	switch p {
	case LedgeBegin:
		return "begin"
	case LedgeClimbOver:
		return "climb_over"
	}
	return "none"
}

type ledgeSequencer struct {
	phase LedgePhase
	side  Side

	detectedLeft  bool
	detectedRight bool

	beginPos cp.Vector
	overPos  cp.Vector

	canGrabLedge         bool
	wallJumpBlockedUntil float64

	snapPending bool
	restore     deadline
	regrab      deadline
}

func (l *ledgeSequencer) rearm(c *Controller) {
	if l.regrab.reached(c.kin.now) {
		l.regrab.disarm()
		l.canGrabLedge = true
	}
}

// hold runs the kinematic phases. It reports true when the rest of the tick
// must be skipped.
func (l *ledgeSequencer) hold(c *Controller) bool {
	switch l.phase {
	case LedgeBegin:
		c.body.SetPosition(l.beginPos)
		c.body.SetGravityScale(0)
		c.kin.velocity = cp.Vector{}
		c.out.apply(c.body, c.kin.velocity)
		return true

	case LedgeClimbOver:
		if l.snapPending {
			l.snapPending = false
			c.body.SetPosition(l.overPos)
			l.resetFlags()
			l.restore.arm(c.kin.now, c.cfg.LedgePhysicsRestoreDelay)
			l.regrab.arm(c.kin.now, c.cfg.LedgeRegrabDelay)
		}
		if !l.restore.reached(c.kin.now) {
			c.kin.velocity = cp.Vector{}
			c.out.apply(c.body, c.kin.velocity)
			return true
		}
		l.restore.disarm()
		c.body.SetKinematic(false)
		l.phase = LedgeNone
	}
	return false
}

// check refreshes ledge detection and starts a climb when grabbing and
// holding up toward a detected ledge. It reports true when a climb started.
func (l *ledgeSequencer) check(c *Controller) bool {
	l.detectedLeft = c.sense.LedgeLeft
	l.detectedRight = c.sense.LedgeRight

	if !c.grab.grabbing {
		if l.detectedLeft || l.detectedRight {
			l.resetFlags()
		}
		return false
	}
	if c.input.Move.Y <= 0 {
		return false
	}
	return l.begin(c)
}

func (l *ledgeSequencer) detected(side Side) bool {
	if side == SideLeft {
		return l.detectedLeft
	}
	return l.detectedRight
}

func (l *ledgeSequencer) begin(c *Controller) bool {
	side := SideOf(c.kin.facing)
	if !l.canGrabLedge || !l.detected(side) {
		return false
	}
	anchor, _ := c.sense.Ledge(side)
	beginOff, overOff := c.cfg.Ledge.For(side)

	l.canGrabLedge = false
	l.side = side
	l.beginPos = anchor.Add(beginOff)
	l.overPos = anchor.Add(overOff)
	l.wallJumpBlockedUntil = c.kin.now + c.cfg.LedgeWallJumpBlock

	c.grab.detach()
	if c.dash.dashing {
		c.dash.cancel(c)
	}

	c.body.SetKinematic(true)
	c.body.SetGravityScale(0)
	c.body.SetPosition(l.beginPos)
	c.kin.velocity = cp.Vector{}
	c.out.apply(c.body, c.kin.velocity)

	l.phase = LedgeBegin
	return true
}

func (l *ledgeSequencer) complete() bool {
	if l.phase != LedgeBegin {
		return false
	}
	l.phase = LedgeClimbOver
	l.snapPending = true
	return true
}

func (l *ledgeSequencer) resetFlags() {
	l.detectedLeft = false
	l.detectedRight = false
}
