package input

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/movement"
	"github.com/milk9111/traversal/prefabs"
)

func mustScript(t *testing.T, src string) *Script {
	t.Helper()
	s, err := NewScript("test", []byte(src))
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	return s
}

func TestScriptRead(t *testing.T) {
	s := mustScript(t, `
read := func(frame, state) {
	return {move_x: frame < 2 ? 1 : -0.5, move_y: 1, jump: frame == 1, dash: 1, grab: false}
}
`)

	want := []movement.RawInput{
		{Move: cp.Vector{X: 1, Y: 1}, Dash: true},
		{Move: cp.Vector{X: 1, Y: 1}, Jump: true, Dash: true},
		{Move: cp.Vector{X: -0.5, Y: 1}, Dash: true},
	}
	for i, w := range want {
		if got := s.Read(); got != w {
			t.Fatalf("frame %d: got %+v, want %+v", i, got, w)
		}
	}
	if s.Frame() != 3 || s.Err() != nil || s.Done() {
		t.Fatalf("frame=%d err=%v done=%v", s.Frame(), s.Err(), s.Done())
	}
}

func TestScriptWithSampler(t *testing.T) {
	s := mustScript(t, `
read := func(frame, state) {
	return {move_x: 0.05, jump: frame >= 1 && frame <= 3}
}
`)
	sampler := movement.NewInputSampler(s, movement.DefaultConfig())

	jumpDown := []bool{false, true, false, false, false}
	for i, want := range jumpDown {
		in := sampler.Sample()
		if in.JumpDown != want {
			t.Fatalf("frame %d: JumpDown = %v, want %v", i, in.JumpDown, want)
		}
		if in.Move.X != 0 {
			t.Fatalf("frame %d: small stick input should snap to 0, got %v", i, in.Move.X)
		}
	}
}

func TestScriptObserve(t *testing.T) {
	s := mustScript(t, `
read := func(frame, state) {
	return {move_x: state.grounded ? 1 : 0, grab: state.mode == "wall_slide"}
}
`)
	if got := s.Read(); got.Move.X != 0 {
		t.Fatalf("no state yet, move_x = %v", got.Move.X)
	}

	s.Observe(movement.Snapshot{Grounded: true})
	if got := s.Read(); got.Move.X != 1 || got.Grab {
		t.Fatalf("grounded: %+v", got)
	}

	s.Observe(movement.Snapshot{WallSliding: true, Velocity: cp.Vector{Y: -1}})
	if got := s.Read(); !got.Grab {
		t.Fatalf("wall slide mode should grab: %+v", got)
	}
}

func TestScriptDone(t *testing.T) {
	s := mustScript(t, `
read := func(frame, state) {
	return {move_x: 1, done: frame >= 2}
}
`)
	s.Read()
	s.Read()
	if s.Done() {
		t.Fatalf("done too early")
	}
	if got := s.Read(); got.Move.X != 1 || !s.Done() {
		t.Fatalf("frame 2 should still report input and set done: %+v done=%v", got, s.Done())
	}
	if got := s.Read(); got != (movement.RawInput{}) {
		t.Fatalf("after done input must be neutral, got %+v", got)
	}
}

func TestScriptErrors(t *testing.T) {
	t.Run("compile", func(t *testing.T) {
		_, err := NewScript("broken", []byte(`read := func(frame, state) { return {`))
		if err == nil || !strings.Contains(err.Error(), "input: compile broken") {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("missing_read", func(t *testing.T) {
		if _, err := NewScript("empty", []byte(`x := 1`)); err == nil {
			t.Fatalf("a script without read should not compile")
		}
	})

	t.Run("runtime", func(t *testing.T) {
		s := mustScript(t, `
read := func(frame, state) {
	if frame == 1 { return 1 / 0 }
	return {jump: true}
}
`)
		if got := s.Read(); !got.Jump {
			t.Fatalf("frame 0 should run")
		}
		if got := s.Read(); got != (movement.RawInput{}) {
			t.Fatalf("failing frame should give neutral input, got %+v", got)
		}
		if s.Err() == nil || !strings.Contains(s.Err().Error(), "frame 1") {
			t.Fatalf("Err = %v", s.Err())
		}
		if got := s.Read(); got != (movement.RawInput{}) {
			t.Fatalf("script must stay stopped, got %+v", got)
		}
	})

	t.Run("not_a_map", func(t *testing.T) {
		s := mustScript(t, `read := func(frame, state) { return 3 }`)
		s.Read()
		if s.Err() == nil || !strings.Contains(s.Err().Error(), "must return a map") {
			t.Fatalf("Err = %v", s.Err())
		}
	})
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	names := prefabs.ScriptNames()
	if len(names) == 0 {
		t.Fatalf("no embedded scripts")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScript(name)
			if err != nil {
				t.Fatalf("LoadScript: %v", err)
			}
			s.Observe(movement.Snapshot{Grounded: true})
			for i := 0; i < 30; i++ {
				s.Read()
			}
			if s.Err() != nil {
				t.Fatalf("script failed: %v", s.Err())
			}
		})
	}
}
