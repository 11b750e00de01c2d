package movement

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// LedgeOffsets are the fixed waypoints of a ledge climb, relative to the
// detected ledge anchor on each side.
type LedgeOffsets struct {
	BeginRight cp.Vector `yaml:"begin_right"`
	OverRight  cp.Vector `yaml:"over_right"`
	BeginLeft  cp.Vector `yaml:"begin_left"`
	OverLeft   cp.Vector `yaml:"over_left"`
}

// For returns the begin and over offsets for side.
func (o LedgeOffsets) For(side Side) (begin, over cp.Vector) {
	if side == SideLeft {
		return o.BeginLeft, o.OverLeft
	}
	return o.BeginRight, o.OverRight
}

// Config holds the movement tunables. The controller never mutates it.
type Config struct {
	SnapInput          bool    `yaml:"snap_input"`
	HorizontalDeadZone float64 `yaml:"horizontal_dead_zone"`
	VerticalDeadZone   float64 `yaml:"vertical_dead_zone"`

	MaxSpeed           float64 `yaml:"max_speed"`
	Acceleration       float64 `yaml:"acceleration"`
	GroundDeceleration float64 `yaml:"ground_deceleration"`
	AirDeceleration    float64 `yaml:"air_deceleration"`
	GroundingForce     float64 `yaml:"grounding_force"`
	GrounderDistance   float64 `yaml:"grounder_distance"`

	JumpPower                   float64 `yaml:"jump_power"`
	MaxFallSpeed                float64 `yaml:"max_fall_speed"`
	FallAcceleration            float64 `yaml:"fall_acceleration"`
	FastFallMultiplier          float64 `yaml:"fast_fall_multiplier"`
	JumpEndEarlyGravityModifier float64 `yaml:"jump_end_early_gravity_modifier"`
	CoyoteTime                  float64 `yaml:"coyote_time"`
	JumpBuffer                  float64 `yaml:"jump_buffer"`
	WallJumpPushForce           float64 `yaml:"wall_jump_push_force"`

	DashSpeed           float64 `yaml:"dash_speed"`
	DashDuration        float64 `yaml:"dash_duration"`
	DashHorizontalBoost float64 `yaml:"dash_horizontal_boost"`
	DashGravityScale    float64 `yaml:"dash_gravity_scale"`

	// ClimbSpeed is used for either direction whose dedicated speed is zero.
	ClimbSpeed         float64 `yaml:"climb_speed"`
	ClimbSpeedUp       float64 `yaml:"climb_speed_up"`
	ClimbSpeedDown     float64 `yaml:"climb_speed_down"`
	ClimbAcceleration  float64 `yaml:"climb_acceleration"`
	ClimbDeceleration  float64 `yaml:"climb_deceleration"`
	GrabSlideThreshold float64 `yaml:"grab_slide_threshold"`

	GrabCooldown       float64 `yaml:"grab_cooldown"`
	ZeroFrictionWindow float64 `yaml:"zero_friction_window"`

	LedgeWallJumpBlock       float64      `yaml:"ledge_wall_jump_block"`
	LedgePhysicsRestoreDelay float64      `yaml:"ledge_physics_restore_delay"`
	LedgeRegrabDelay         float64      `yaml:"ledge_regrab_delay"`
	Ledge                    LedgeOffsets `yaml:"ledge"`
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		SnapInput:          true,
		HorizontalDeadZone: 0.1,
		VerticalDeadZone:   0.3,

		MaxSpeed:           14,
		Acceleration:       120,
		GroundDeceleration: 60,
		AirDeceleration:    30,
		GroundingForce:     -1.5,
		GrounderDistance:   0.05,

		JumpPower:                   36,
		MaxFallSpeed:                40,
		FallAcceleration:            110,
		FastFallMultiplier:          2,
		JumpEndEarlyGravityModifier: 3,
		CoyoteTime:                  0.15,
		JumpBuffer:                  0.2,
		WallJumpPushForce:           10,

		DashSpeed:           20,
		DashDuration:        0.3,
		DashHorizontalBoost: 5,
		DashGravityScale:    0.3,

		ClimbSpeed:         3,
		ClimbSpeedUp:       3,
		ClimbSpeedDown:     3,
		ClimbAcceleration:  12,
		ClimbDeceleration:  8,
		GrabSlideThreshold: 1,

		GrabCooldown:       0.2,
		ZeroFrictionWindow: 0.2,

		LedgeWallJumpBlock:       0.5,
		LedgePhysicsRestoreDelay: 0.2,
		LedgeRegrabDelay:         0.2,
		Ledge: LedgeOffsets{
			BeginRight: cp.Vector{X: -0.45, Y: -0.6},
			OverRight:  cp.Vector{X: 0.6, Y: 0.9},
			BeginLeft:  cp.Vector{X: 0.45, Y: -0.6},
			OverLeft:   cp.Vector{X: -0.6, Y: 0.9},
		},
	}
}

func (c Config) climbUp() float64 {
	if c.ClimbSpeedUp > 0 {
		return c.ClimbSpeedUp
	}
	return c.ClimbSpeed
}

func (c Config) climbDown() float64 {
	if c.ClimbSpeedDown > 0 {
		return c.ClimbSpeedDown
	}
	return c.ClimbSpeed
}

// Validate reports every violated invariant. Loaders call it; the controller
// assumes a valid config.
func (c Config) Validate() error {
	var errs []error

	durations := []struct {
		name  string
		value float64
	}{
		{"coyote_time", c.CoyoteTime},
		{"jump_buffer", c.JumpBuffer},
		{"dash_duration", c.DashDuration},
		{"grab_cooldown", c.GrabCooldown},
		{"zero_friction_window", c.ZeroFrictionWindow},
		{"ledge_wall_jump_block", c.LedgeWallJumpBlock},
		{"ledge_physics_restore_delay", c.LedgePhysicsRestoreDelay},
		{"ledge_regrab_delay", c.LedgeRegrabDelay},
	}
	for _, d := range durations {
		if d.value < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", d.name, d.value))
		}
	}
	if c.DashDuration == 0 {
		errs = append(errs, errors.New("dash_duration must be > 0"))
	}

	if c.HorizontalDeadZone <= 0 || c.HorizontalDeadZone >= 1 {
		errs = append(errs, fmt.Errorf("horizontal_dead_zone must be in (0,1), got %v", c.HorizontalDeadZone))
	}
	if c.VerticalDeadZone <= 0 || c.VerticalDeadZone >= 1 {
		errs = append(errs, fmt.Errorf("vertical_dead_zone must be in (0,1), got %v", c.VerticalDeadZone))
	}

	if c.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("max_speed must be > 0, got %v", c.MaxSpeed))
	}
	if c.MaxFallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("max_fall_speed must be > 0, got %v", c.MaxFallSpeed))
	}
	if c.FastFallMultiplier < 1 {
		errs = append(errs, fmt.Errorf("fast_fall_multiplier must be >= 1, got %v", c.FastFallMultiplier))
	}
	if c.GrounderDistance < 0 {
		errs = append(errs, fmt.Errorf("grounder_distance must be >= 0, got %v", c.GrounderDistance))
	}
	if c.climbUp() < 0 || c.climbDown() < 0 {
		errs = append(errs, errors.New("climb speeds must be >= 0"))
	}

	return errors.Join(errs...)
}
