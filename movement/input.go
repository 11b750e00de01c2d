package movement

import (
	"math"

	"github.com/jakecoffman/cp"
)

// RawInput is the level state of the devices at the moment of sampling.
type RawInput struct {
	Move cp.Vector
	Jump bool
	Dash bool
	Grab bool
}

// InputSource supplies raw device state once per visual frame.
type InputSource interface {
	Read() RawInput
}

// InputFunc adapts a function to InputSource.
type InputFunc func() RawInput

func (f InputFunc) Read() RawInput {
	return f()
}

// FrameInput is the per-frame input snapshot read by the controller.
// The *Down fields are true only on the frame the action goes from released
// to pressed.
type FrameInput struct {
	Move     cp.Vector
	JumpDown bool
	JumpHeld bool
	DashDown bool
	GrabDown bool
	GrabHeld bool
}

// InputSampler turns raw input into FrameInput: dead-zone snapping plus edge
// detection against the previous sample.
type InputSampler struct {
	src  InputSource
	cfg  Config
	prev RawInput
}

func NewInputSampler(src InputSource, cfg Config) *InputSampler {
	return &InputSampler{src: src, cfg: cfg}
}

// SetConfig swaps the tunables used for snapping.
func (s *InputSampler) SetConfig(cfg Config) {
	s.cfg = cfg
}

// Sample must be called exactly once per visual frame.
func (s *InputSampler) Sample() FrameInput {
	var raw RawInput
	if s.src != nil {
		raw = s.src.Read()
	}

	move := raw.Move
	if s.cfg.SnapInput {
		move.X = SnapAxis(move.X, s.cfg.HorizontalDeadZone)
		move.Y = SnapAxis(move.Y, s.cfg.VerticalDeadZone)
	}

	in := FrameInput{
		Move:     move,
		JumpDown: raw.Jump && !s.prev.Jump,
		JumpHeld: raw.Jump,
		DashDown: raw.Dash && !s.prev.Dash,
		GrabDown: raw.Grab && !s.prev.Grab,
		GrabHeld: raw.Grab,
	}
	s.prev = raw
	return in
}

// SnapAxis quantizes v to {-1, 0, 1}; magnitudes under deadZone become 0.
func SnapAxis(v, deadZone float64) float64 {
	if math.Abs(v) < deadZone {
		return 0
	}
	if v > 0 {
		return 1
	}
	return -1
}
