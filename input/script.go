// Package input provides scripted movement input: tengo scripts drive the
// character for replays and headless runs.
package input

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/movement"
	"github.com/milk9111/traversal/prefabs"
)

// scriptDispatch is appended to every input script. The script must define
// read(frame, state) returning a map with any of move_x, move_y, jump, dash,
// grab and done.
const scriptDispatch = `
__out := read(__frame, __state)
`

const scriptTimeout = 100 * time.Millisecond

// Script is an input source driven by a tengo script, called once per Read.
// After a runtime error it returns neutral input and keeps the error for Err.
type Script struct {
	name     string
	compiled *tengo.Compiled

	frame int64
	state map[string]interface{}
	done  bool
	err   error
}

var _ movement.InputSource = (*Script)(nil)

// LoadScript compiles a script from prefabs/scripts.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("input: load %s: %w", name, err)
	}
	return NewScript(name, src)
}

func NewScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), scriptDispatch...))
	_ = script.Add("__frame", 0)
	_ = script.Add("__state", map[string]interface{}{})
	script.SetImports(stdlib.GetModuleMap("math", "text", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled, state: map[string]interface{}{}}, nil
}

func (s *Script) Name() string { return s.name }

// Frame is the number of frames read so far.
func (s *Script) Frame() int64 { return s.frame }

// Done reports that the script asked to stop.
func (s *Script) Done() bool { return s.done }

func (s *Script) Err() error { return s.err }

// Observe hands the character state to the next Read.
func (s *Script) Observe(snap movement.Snapshot) {
	s.state = map[string]interface{}{
		"x":           snap.Position.X,
		"y":           snap.Position.Y,
		"vx":          snap.Velocity.X,
		"vy":          snap.Velocity.Y,
		"facing":      snap.Facing,
		"grounded":    snap.Grounded,
		"dashing":     snap.Dashing,
		"can_dash":    snap.CanDash,
		"grabbing":    snap.Grabbing,
		"sliding":     snap.Sliding,
		"ledge_phase": snap.Phase.String(),
		"mode":        snap.Mode(),
	}
}

func (s *Script) Read() movement.RawInput {
	frame := s.frame
	s.frame++
	if s.err != nil || s.done {
		return movement.RawInput{}
	}

	out, err := s.run(frame)
	if err != nil {
		s.err = fmt.Errorf("input: run %s: frame %d: %w", s.name, frame, err)
		return movement.RawInput{}
	}

	s.done = asBool(out["done"])
	return movement.RawInput{
		Move: cp.Vector{X: asFloat(out["move_x"]), Y: asFloat(out["move_y"])},
		Jump: asBool(out["jump"]),
		Dash: asBool(out["dash"]),
		Grab: asBool(out["grab"]),
	}
}

func (s *Script) run(frame int64) (map[string]interface{}, error) {
	if err := s.compiled.Set("__frame", frame); err != nil {
		return nil, err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return nil, err
	}

	v := s.compiled.Get("__out")
	out, ok := tengo.ToInterface(v.Object()).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("read must return a map, got %s", v.ValueType())
	}
	return out, nil
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func asBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case float64:
		return b != 0
	}
	return false
}
