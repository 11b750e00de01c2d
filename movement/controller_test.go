package movement

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestOneBodyWritePerTick(t *testing.T) {
	climbUp := FrameInput{GrabHeld: true, Move: cp.Vector{Y: 1}}

	cases := []struct {
		name      string
		setup     func(t *testing.T) *rig
		in        FrameInput
		positions int
		phase     LedgePhase
	}{
		{
			name: "run",
			setup: func(t *testing.T) *rig {
				r := newRig(t)
				r.ground(t)
				return r
			},
			in: FrameInput{Move: cp.Vector{X: 1}},
		},
		{
			name: "dash_start",
			setup: func(t *testing.T) *rig {
				r := newRig(t)
				r.ground(t)
				return r
			},
			in: FrameInput{DashDown: true},
		},
		{
			name: "dashing",
			setup: func(t *testing.T) *rig {
				r := newRig(t)
				r.ground(t)
				r.step(FrameInput{DashDown: true})
				if !r.c.IsDashing() {
					t.Fatalf("expected a dash")
				}
				return r
			},
		},
		{
			name: "grab_attach",
			setup: func(t *testing.T) *rig {
				r := newRig(t)
				r.q.wallRight, r.q.aboveRight = true, true
				return r
			},
			in: FrameInput{GrabDown: true, GrabHeld: true},
		},
		{
			name:  "grab_climb",
			setup: grabRig,
			in:    climbUp,
		},
		{
			name: "ledge_begin",
			setup: func(t *testing.T) *rig {
				r := grabRig(t)
				r.q.ledgeRight = true
				return r
			},
			in:        climbUp,
			positions: 1,
			phase:     LedgeBegin,
		},
		{
			name: "ledge_hold",
			setup: func(t *testing.T) *rig {
				return startClimb(t, ledgeCases[0])
			},
			in:        climbUp,
			positions: 1,
			phase:     LedgeBegin,
		},
		{
			name: "climb_over_snap",
			setup: func(t *testing.T) *rig {
				r := startClimb(t, ledgeCases[0])
				r.c.LedgeClimbComplete()
				return r
			},
			positions: 1,
			phase:     LedgeClimbOver,
		},
		{
			name: "climb_over_hold",
			setup: func(t *testing.T) *rig {
				r := startClimb(t, ledgeCases[0])
				r.c.LedgeClimbComplete()
				r.step(FrameInput{})
				return r
			},
			phase: LedgeClimbOver,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := c.setup(t)
			velocities, positions := r.body.velocityWrites, r.body.positionWrites

			r.step(c.in)

			if got := r.body.velocityWrites - velocities; got != 1 {
				t.Fatalf("velocity writes = %d, want 1", got)
			}
			if got := r.body.positionWrites - positions; got != c.positions {
				t.Fatalf("position writes = %d, want %d", got, c.positions)
			}
			if r.c.Phase() != c.phase {
				t.Fatalf("phase = %v, want %v", r.c.Phase(), c.phase)
			}
		})
	}
}
