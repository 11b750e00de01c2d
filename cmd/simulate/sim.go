package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/ecs/entity"
	"github.com/milk9111/traversal/ecs/system"
	"github.com/milk9111/traversal/input"
	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/movement"
	"github.com/milk9111/traversal/settings"
)

var (
	tickStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	modeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#b4befe")).Padding(0, 1)
)

type simulation struct {
	level   string
	backend string
	ticks   int
	every   int

	world    *ecs.World
	movement *system.MovementSystem
	player   ecs.Entity
	script   *input.Script
}

// Result is what a run ends with.
type Result struct {
	Level   string
	Backend string
	Script  string
	Ticks   uint64
	Final   movement.Snapshot
	Events  map[string]int
	Done    bool
	Err     error
}

func newSimulation(s settings.Settings, scriptName string) (*simulation, error) {
	lvl, err := levels.Open(s.Level)
	if err != nil {
		return nil, err
	}
	phys, err := newBackend(s.Sim.Backend, lvl)
	if err != nil {
		return nil, err
	}
	script, err := input.LoadScript(scriptName)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	player, err := entity.NewPlayer(w, entity.BuildContext{
		Physics:    phys,
		Source:     script,
		Spawn:      lvl.SpawnFeet(),
		Tunables:   s.Tunables,
		ViewWidth:  common.BaseWidth,
		ViewHeight: common.BaseHeight,
	})
	if err != nil {
		return nil, err
	}

	// One frame is one tick, so the trace lines up with controller ticks.
	mv := system.NewMovementSystem(phys, common.FixedStep)
	w.AddSystem(system.NewInputSystem())
	w.AddSystem(mv)
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(system.NewAnimationSystem(common.FixedStep))

	return &simulation{
		level:    lvl.Name,
		backend:  s.Sim.Backend,
		ticks:    s.Sim.Ticks,
		every:    s.Sim.Every,
		world:    w,
		movement: mv,
		player:   player,
		script:   script,
	}, nil
}

func (s *simulation) snapshot() movement.Snapshot {
	mv, ok := ecs.Get(s.world, s.player, component.MoverComponent.Kind())
	if !ok || mv.Controller == nil {
		return movement.Snapshot{}
	}
	return mv.Controller.Snapshot()
}

// Run steps the world until the tick limit or until the script finishes or
// fails. A state line goes to out every s.every ticks and with each event.
func (s *simulation) Run(out io.Writer) Result {
	tr := &tracer{out: out, every: s.every, sim: s, counts: map[string]int{}}
	s.world.AddSystem(tr)

	res := Result{Level: s.level, Backend: s.backend, Script: s.script.Name()}
	for i := 0; i < s.ticks; i++ {
		s.world.Update()
		if s.script.Err() != nil || s.script.Done() {
			break
		}
	}
	res.Ticks = s.movement.Ticks()
	res.Final = s.snapshot()
	res.Events = tr.counts
	res.Done = s.script.Done()
	res.Err = s.script.Err()
	return res
}

// tracer runs last so it sees the frame's events before they are dropped.
type tracer struct {
	out    io.Writer
	every  int
	sim    *simulation
	counts map[string]int
	frame  int
}

func (t *tracer) Update(w *ecs.World) {
	snap := t.sim.snapshot()
	evts := w.Events().Events()
	for _, evt := range evts {
		t.counts[evt.Type]++
		fmt.Fprintf(t.out, "%s %s %s\n", tickStyle.Render(fmt.Sprintf("%6d", snap.Tick)), eventStyle.Render(evt.Type), describeEvent(evt))
	}
	if len(evts) > 0 || (t.every > 0 && t.frame%t.every == 0) {
		fmt.Fprintln(t.out, stateLine(snap))
	}
	t.frame++
}

func describeEvent(evt ecs.Event) string {
	data, ok := evt.Data.(movement.Event)
	if !ok || data.Kind != movement.EventGroundedChanged {
		return ""
	}
	return fmt.Sprintf("grounded=%t impact=%.2f", data.Grounded, data.ImpactSpeed)
}

func stateLine(snap movement.Snapshot) string {
	return fmt.Sprintf("%s %-10s pos=(%6.2f,%6.2f) vel=(%6.2f,%6.2f) grounded=%-5t dash=%-5t ledge=%s",
		tickStyle.Render(fmt.Sprintf("%6d", snap.Tick)),
		modeStyle.Render(snap.Mode()),
		snap.Position.X, snap.Position.Y,
		snap.Velocity.X, snap.Velocity.Y,
		snap.Grounded, snap.CanDash, snap.Phase)
}

// Summary renders the result as a bordered block.
func (r Result) Summary() string {
	var b strings.Builder
	status := okStyle.Render("ok")
	switch {
	case r.Err != nil:
		status = errStyle.Render("script error: " + r.Err.Error())
	case r.Done:
		status = okStyle.Render("script done")
	}
	fmt.Fprintf(&b, "level:   %s\nbackend: %s\nscript:  %s\nticks:   %d\nstatus:  %s\n", r.Level, r.Backend, r.Script, r.Ticks, status)
	fmt.Fprintf(&b, "final:   %s at (%.2f, %.2f)", r.Final.Mode(), r.Final.Position.X, r.Final.Position.Y)

	names := make([]string, 0, len(r.Events))
	for name := range r.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n%-9s%d", name+":", r.Events[name])
	}
	return boxStyle.Render(b.String())
}
