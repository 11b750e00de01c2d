package system

import (
	"fmt"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/ecs/entity"
	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/movement"
	"github.com/milk9111/traversal/physics/grid"
	"github.com/tanema/gween/ease"
)

// eventRecorder collects the event types visible to systems after it.
type eventRecorder struct {
	types []string
}

func (r *eventRecorder) Update(w *ecs.World) {
	for _, evt := range w.Events().Events() {
		r.types = append(r.types, evt.Type)
	}
}

func (r *eventRecorder) saw(kind string) bool {
	for _, t := range r.types {
		if t == kind {
			return true
		}
	}
	return false
}

func floorLevel(t *testing.T) *levels.Level {
	t.Helper()
	const w, h = 8, 5
	tiles := make([]int, w*h)
	for x := 0; x < w; x++ {
		tiles[(h-1)*w+x] = 1
	}
	lvl, err := levels.New("floor", w, h, tiles, 3, 3)
	if err != nil {
		t.Fatalf("levels.New: %v", err)
	}
	return lvl
}

func playerWorld(t *testing.T, frameDt float64, src movement.InputSource) (*ecs.World, ecs.Entity, *MovementSystem, *eventRecorder) {
	t.Helper()
	lvl := floorLevel(t)
	phys := grid.NewWorld(lvl)

	w := ecs.NewWorld()
	e, err := entity.NewPlayer(w, entity.BuildContext{Physics: phys, Source: src, Spawn: lvl.SpawnFeet(), ViewWidth: 320, ViewHeight: 180})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	mvSys := NewMovementSystem(phys, frameDt)
	rec := &eventRecorder{}
	w.AddSystem(NewInputSystem())
	w.AddSystem(mvSys)
	w.AddSystem(NewPhysicsSystem())
	w.AddSystem(NewAnimationSystem(frameDt))
	w.AddSystem(rec)
	return w, e, mvSys, rec
}

func neutral() movement.InputSource {
	return movement.InputFunc(func() movement.RawInput { return movement.RawInput{} })
}

func TestMovementSystemFixedStep(t *testing.T) {
	cases := []struct {
		name      string
		frameDt   float64
		updates   int
		wantTicks uint64
	}{
		{"one_tick_per_frame", common.FixedStep, 3, 3},
		{"half_frames", common.FixedStep / 2, 10, 5},
		{"long_frames_are_capped", common.FixedStep * 10, 2, 2 * maxTicksPerFrame},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _, mvSys, _ := playerWorld(t, c.frameDt, neutral())
			for i := 0; i < c.updates; i++ {
				w.Update()
			}
			if got := mvSys.Ticks(); got != c.wantTicks {
				t.Fatalf("ticks = %d, want %d", got, c.wantTicks)
			}
		})
	}
}

func TestPlayerSettlesOnFloor(t *testing.T) {
	w, e, _, rec := playerWorld(t, common.FixedStep, neutral())
	for i := 0; i < 20; i++ {
		w.Update()
	}

	mv, _ := ecs.Get(w, e, component.MoverComponent.Kind())
	if !mv.Controller.IsGrounded() {
		t.Fatalf("player should be grounded")
	}
	if !rec.saw(movement.EventGroundedChanged.String()) {
		t.Fatalf("grounded change not forwarded, saw %v", rec.types)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if math.Abs(tr.Y-1.9) > 1e-3 {
		t.Fatalf("transform y = %v, want 1.9", tr.Y)
	}
	if tr.Facing != 1 {
		t.Fatalf("facing = %v", tr.Facing)
	}
	if got := w.Events().Events(); len(got) != 0 {
		t.Fatalf("events must not outlive the frame: %v", got)
	}
}

func TestInputObservedByScriptSource(t *testing.T) {
	src := &observingSource{}
	w, _, _, _ := playerWorld(t, common.FixedStep, src)
	w.Update()
	w.Update()
	if src.seen != 2 || src.last.Tick != 2 {
		t.Fatalf("observed %d snapshots, last tick %d", src.seen, src.last.Tick)
	}
}

type observingSource struct {
	seen int
	last movement.Snapshot
}

func (s *observingSource) Read() movement.RawInput { return movement.RawInput{} }

func (s *observingSource) Observe(snap movement.Snapshot) {
	s.seen++
	s.last = snap
}

// wallBody and wallQuery put the character against a right-hand wall with a
// ledge in reach.
type wallBody struct {
	pos       cp.Vector
	vel       cp.Vector
	kinematic bool
}

func (b *wallBody) Position() cp.Vector           { return b.pos }
func (b *wallBody) SetPosition(p cp.Vector)       { b.pos = p }
func (b *wallBody) Velocity() cp.Vector           { return b.vel }
func (b *wallBody) SetVelocity(v cp.Vector)       { b.vel = v }
func (b *wallBody) SetGravityScale(float64)       {}
func (b *wallBody) SetKinematic(k bool)           { b.kinematic = k }
func (b *wallBody) SetMaterial(movement.Material) {}

type wallQuery struct{}

func (wallQuery) Ground(cp.BB, float64) bool  { return true }
func (wallQuery) Ceiling(cp.BB, float64) bool { return false }
func (wallQuery) Wall(side movement.Side, _ cp.BB, _ float64) (cp.Vector, bool) {
	return cp.Vector{X: -1}, side == movement.SideRight
}
func (wallQuery) WallAbove(cp.BB) bool { return true }
func (wallQuery) Ledge(origin cp.Vector, _ float64, anchor cp.Vector, _ float64) bool {
	return anchor.X > origin.X
}

func TestAnimationCompletesLedgeClimb(t *testing.T) {
	const frameDt = common.FixedStep

	body := &wallBody{}
	ctrl := movement.New(movement.DefaultConfig(), movement.DefaultShape(), wallQuery{}, body)

	frame := 0
	src := movement.InputFunc(func() movement.RawInput {
		frame++
		if frame == 1 {
			return movement.RawInput{Grab: true}
		}
		return movement.RawInput{Grab: true, Move: cp.Vector{Y: 1}}
	})

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Controller: ctrl, Shape: movement.DefaultShape()}))
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Source: src, Sampler: movement.NewInputSampler(src, ctrl.Config())}))
	anim := &component.ClimbAnimation{Duration: 0.1, Ease: ease.Linear}
	mustAdd(t, ecs.Add(w, e, component.ClimbAnimationComponent.Kind(), anim))

	rec := &eventRecorder{}
	w.AddSystem(NewInputSystem())
	w.AddSystem(NewMovementSystem(nil, frameDt))
	w.AddSystem(NewAnimationSystem(frameDt))
	w.AddSystem(rec)

	w.Update()
	w.Update()
	if ctrl.Phase() != movement.LedgeBegin {
		t.Fatalf("phase = %v, want begin", ctrl.Phase())
	}
	if anim.Tween == nil || anim.Progress <= 0 || anim.Progress >= 1 {
		t.Fatalf("animation should be running, progress %v", anim.Progress)
	}
	if anim.State != "ledge_climb" {
		t.Fatalf("state = %q", anim.State)
	}

	begin, over := ctrl.Config().Ledge.For(movement.SideRight)
	delta := anim.To.Sub(anim.From)
	if want := over.Sub(begin); delta.Distance(want) > 1e-9 {
		t.Fatalf("climb delta = %v, want %v", delta, want)
	}
	dx, dy := ClimbOffset(anim)
	if dx <= 0 || dx >= delta.X || dy <= 0 {
		t.Fatalf("mid-climb offset = %v, %v", dx, dy)
	}

	for i := 0; i < 20 && ctrl.Phase() == movement.LedgeBegin; i++ {
		w.Update()
	}
	if !rec.saw(EventClimbComplete) {
		t.Fatalf("climb never completed, saw %v", rec.types)
	}
	if ctrl.Phase() == movement.LedgeBegin {
		t.Fatalf("controller still pinned")
	}
	if dx, dy := ClimbOffset(anim); dx != 0 || dy != 0 {
		t.Fatalf("no offset once the animation ended, got %v, %v", dx, dy)
	}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestCameraFollow(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	view := common.NewView(64, 64)
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 5, Y: 5}))
	mustAdd(t, ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Follow: 0.5, View: view}))

	fallback := common.NewView(1, 1)
	cs := NewCameraSystem(cp.BB{L: 0, B: 0, R: 10, T: 10})
	cs.Update(w)

	got := CurrentView(w, fallback)
	if math.Abs(got.Camera.X-2.5) > 1e-6 || math.Abs(got.Camera.Y-2.5) > 1e-6 {
		t.Fatalf("camera = %v, want halfway to the target", got.Camera)
	}

	if v := CurrentView(ecs.NewWorld(), fallback); v != fallback {
		t.Fatalf("empty world should return the fallback view")
	}
}

func TestDebugToggleAndEventLog(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.DebugOverlayComponent.Kind(), &component.DebugOverlay{}))

	var lines []string
	l := NewEventLogSystem()
	l.logf = func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }

	w.Events().Push(ecs.Event{Type: "jumped", Entity: e, Data: movement.Event{Kind: movement.EventJumped, Tick: 3}})
	l.Update(w)
	if len(lines) != 0 {
		t.Fatalf("logged with the overlay off: %v", lines)
	}

	if !ToggleDebug(w) {
		t.Fatalf("toggle should turn the overlay on")
	}
	w.Events().Push(ecs.Event{Type: "grounded_changed", Entity: e, Data: movement.Event{Kind: movement.EventGroundedChanged, Grounded: true, ImpactSpeed: 4}})
	l.Update(w)
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if want := "movement: grounded_changed entity=1v0 tick=0 grounded=true impact=4.00"; lines[1] != want {
		t.Fatalf("line = %q, want %q", lines[1], want)
	}

	if ToggleDebug(w) {
		t.Fatalf("second toggle should turn the overlay off")
	}
}
