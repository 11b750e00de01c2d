package movement

import (
	"math"

	"github.com/jakecoffman/cp"
)

// kinematicState is owned by the controller and changed only inside Update
// and Tick.
type kinematicState struct {
	velocity     cp.Vector
	facing       float64
	grounded     bool
	leftGroundAt float64
	now          float64
}

// Controller is the per-character movement state machine. Update runs once per
// visual frame with the sampled input; Tick runs once per fixed physics step
// and is the only place the body's velocity and position are written.
type Controller struct {
	cfg    Config
	shape  Shape
	sensor EnvironmentSensor
	body   Body

	events    EventQueue
	observers []Observer

	input FrameInput
	kin   kinematicState
	sense SensorResult
	tick  uint64

	jump    jumpSystem
	dash    dashSystem
	grab    wallGrabSystem
	ledge   ledgeSequencer
	gravity gravitySolver
	loco    locomotion
	out     velocityIntegrator
}

type Option func(c *Controller)

// WithObserver registers an observer at construction.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.Subscribe(o)
	}
}

// WithFacing sets the initial facing direction.
func WithFacing(facing float64) Option {
	return func(c *Controller) {
		if facing < 0 {
			c.kin.facing = -1
		} else {
			c.kin.facing = 1
		}
	}
}

// New wires a controller to its tunables, collider shape, collision query and
// body.
func New(cfg Config, shape Shape, query CollisionQuery, body Body, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		shape:  shape,
		sensor: NewEnvironmentSensor(query, shape, cfg.GrounderDistance),
		body:   body,
		kin: kinematicState{
			facing:       1,
			leftGroundAt: math.Inf(-1),
		},
		jump:  newJumpSystem(),
		dash:  dashSystem{canDash: true},
		grab:  wallGrabSystem{canGrab: true},
		ledge: ledgeSequencer{canGrabLedge: true, wallJumpBlockedUntil: math.Inf(-1)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetConfig swaps the tunables between ticks, used by hot reload.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
	c.sensor = NewEnvironmentSensor(c.sensor.query, c.shape, cfg.GrounderDistance)
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) Subscribe(o Observer) {
	if o == nil {
		return
	}
	c.observers = append(c.observers, o)
}

// Update consumes the frame's input. It handles everything that must react at
// frame rate: facing, jump stamps, early release, dash start and wall grab.
func (c *Controller) Update(in FrameInput) {
	c.input = in
	c.loco.face(c)
	c.jump.sample(c)
	c.dash.sample(c)
	c.grab.sample(c)
}

// Tick advances the state machine by one fixed step of dt seconds.
func (c *Controller) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	c.kin.now += dt
	c.tick++
	c.events.flush()

	c.grab.rearm(dt)
	c.ledge.rearm(c)

	if c.ledge.hold(c) {
		c.notify()
		return
	}

	c.sense = c.sensor.Sense(c.body.Position())
	if c.ledge.check(c) {
		c.notify()
		return
	}

	c.resolveContacts()
	c.jump.tick(c)
	c.loco.horizontal(c, dt)
	c.gravity.tick(c, dt)
	c.dash.tick(c, dt)
	c.grab.tick(c, dt)
	c.loco.slide(c)

	c.out.apply(c.body, c.kin.velocity)
	c.notify()
}

// LedgeClimbComplete is the animation collaborator's signal that the climb
// animation finished. It advances Begin to ClimbOver and CanClimb turns false
// at once, but the body is not moved here: Position() keeps reporting the
// begin position until the next Tick snaps it to the over position, one tick
// later. Without this signal the character stays pinned at the begin position.
func (c *Controller) LedgeClimbComplete() bool {
	return c.ledge.complete()
}

func (c *Controller) resolveContacts() {
	s := c.sense

	c.jump.canWallJump = s.AnyWall()
	if c.jump.canWallJump {
		c.jump.wallNormal = s.WallNormal
	}

	if s.Ceiling {
		c.kin.velocity.Y = math.Min(0, c.kin.velocity.Y)
	}

	switch {
	case !c.kin.grounded && s.Ground:
		c.kin.grounded = true
		c.jump.landed()
		c.emit(Event{Kind: EventGroundedChanged, Grounded: true, ImpactSpeed: math.Abs(c.kin.velocity.Y)})
	case c.kin.grounded && !s.Ground:
		c.kin.grounded = false
		c.kin.leftGroundAt = c.kin.now
		c.emit(Event{Kind: EventGroundedChanged, Grounded: false})
	}
}

func (c *Controller) emit(evt Event) {
	evt.Tick = c.tick
	c.events.Push(evt)
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	for _, evt := range c.events.Events() {
		for _, o := range c.observers {
			o.OnMovementEvent(evt)
		}
	}
}

// Events returns the events of the last tick. Every caller sees the same
// list until the next tick starts.
func (c *Controller) Events() []Event {
	return c.events.Events()
}

func (c *Controller) FrameInput() FrameInput { return c.input }
func (c *Controller) Velocity() cp.Vector { return c.kin.velocity }
func (c *Controller) Position() cp.Vector { return c.body.Position() }
func (c *Controller) Facing() float64 { return c.kin.facing }
func (c *Controller) Now() float64 { return c.kin.now }
func (c *Controller) Ticks() uint64 { return c.tick }
func (c *Controller) IsGrounded() bool { return c.kin.grounded }
func (c *Controller) IsDashing() bool { return c.dash.dashing }
func (c *Controller) CanDash() bool { return c.dash.canDash }
func (c *Controller) IsGrabbingWall() bool { return c.grab.grabbing }
func (c *Controller) IsWallSliding() bool { return c.loco.wallSliding }
func (c *Controller) IsSliding() bool { return c.loco.wallSliding || c.loco.grabSliding }
func (c *Controller) IsPushing() bool { return c.loco.pushing }
func (c *Controller) CanClimb() bool { return c.ledge.phase == LedgeBegin }
func (c *Controller) Phase() LedgePhase { return c.ledge.phase }
func (c *Controller) CurrentClimbSpeed() float64 { return c.grab.climbSpeed }
func (c *Controller) Sensors() SensorResult { return c.sense }
func (c *Controller) Material() Material { return c.loco.material }

// Snapshot is a read-only copy of the observable state.
type Snapshot struct {
	Tick        uint64
	Now         float64
	Position    cp.Vector
	Velocity    cp.Vector
	Facing      float64
	Grounded    bool
	Dashing     bool
	CanDash     bool
	Grabbing    bool
	WallSliding bool
	Sliding     bool
	Pushing     bool
	Phase       LedgePhase
	ClimbSpeed  float64
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Tick:        c.tick,
		Now:         c.kin.now,
		Position:    c.body.Position(),
		Velocity:    c.kin.velocity,
		Facing:      c.kin.facing,
		Grounded:    c.kin.grounded,
		Dashing:     c.dash.dashing,
		CanDash:     c.dash.canDash,
		Grabbing:    c.grab.grabbing,
		WallSliding: c.loco.wallSliding,
		Sliding:     c.IsSliding(),
		Pushing:     c.loco.pushing,
		Phase:       c.ledge.phase,
		ClimbSpeed:  c.grab.climbSpeed,
	}
}

// Mode names the dominant movement mode, for animation and traces.
func (s Snapshot) Mode() string {
	switch {
	case s.Phase != LedgeNone:
		return "ledge_climb"
	case s.Dashing:
		return "dash"
	case s.Grabbing && s.ClimbSpeed > 0:
		return "climb"
	case s.Grabbing:
		return "wall_grab"
	case s.WallSliding:
		return "wall_slide"
	case s.Grounded && s.Pushing:
		return "push"
	case s.Grounded && s.Velocity.X != 0:
		return "run"
	case s.Grounded:
		return "idle"
	case s.Velocity.Y > 0:
		return "jump"
	}
	return "fall"
}
