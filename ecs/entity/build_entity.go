package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/movement"
	"github.com/milk9111/traversal/physics"
	"github.com/milk9111/traversal/prefabs"
	"github.com/tanema/gween/ease"
)

// BuildContext carries what a prefab needs from outside its file.
type BuildContext struct {
	PrefabPath string

	Physics physics.Backend
	Source  movement.InputSource
	// Spawn is where the character's feet start.
	Spawn cp.Vector
	// Tunables overrides the mover's tunables file when set.
	Tunables string
	Debug    bool

	ViewWidth  float64
	ViewHeight float64

	shape movement.Shape
	body  movement.Body
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player":          addPlayer,
	"transform":       addTransform,
	"physics_body":    addPhysicsBody,
	"mover":           addMover,
	"input":           addInput,
	"climb_animation": addClimbAnimation,
	"box_render":      addBoxRender,
	"camera":          addCamera,
	"debug_overlay":   addDebugOverlay,
}

// The mover needs the body, and the input sampler needs the mover's tunables.
var componentBuildOrder = []string{
	"player",
	"transform",
	"physics_body",
	"mover",
	"input",
	"climb_animation",
	"box_render",
	"camera",
	"debug_overlay",
}

var easings = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"inQuad":    ease.InQuad,
	"outQuad":   ease.OutQuad,
	"inOutQuad": ease.InOutQuad,
	"outCubic":  ease.OutCubic,
	"outSine":   ease.OutSine,
	"outBack":   ease.OutBack,
}

func BuildEntity(w *ecs.World, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if ctx == nil {
		return 0, fmt.Errorf("build entity: context is nil")
	}
	prefabPath := ctx.PrefabPath

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

func addPlayer(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, _ any, ctx *BuildContext) error {
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: ctx.Spawn.X, Y: ctx.Spawn.Y, Facing: 1})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	if ctx.Physics == nil {
		return errors.New("no physics backend")
	}
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	movementSpec, err := prefabs.LoadMovementSpec(spec.Shape)
	if err != nil {
		return err
	}

	ctx.shape = movementSpec.Shape
	ctx.body = ctx.Physics.Character(ctx.shape, ctx.Spawn)
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: ctx.body, Size: ctx.shape.Size})
}

func addMover(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	if ctx.body == nil {
		return errors.New("mover needs a physics_body")
	}
	spec, err := prefabs.DecodeComponentSpec[prefabs.MoverComponentSpec](raw)
	if err != nil {
		return err
	}
	tunables := spec.Tunables
	if ctx.Tunables != "" {
		tunables = ctx.Tunables
	}
	movementSpec, err := prefabs.LoadMovementSpec(tunables)
	if err != nil {
		return err
	}

	ctrl := movement.New(movementSpec.Tunables, ctx.shape, ctx.Physics.Collisions(), ctx.body, movement.WithFacing(spec.Facing))
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos := ctx.body.Position()
		t.X, t.Y, t.Facing = pos.X, pos.Y, ctrl.Facing()
	}
	return ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Controller: ctrl, Shape: ctx.shape, Tunables: tunables})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, ctx *BuildContext) error {
	if ctx.Source == nil {
		return errors.New("no input source")
	}
	cfg := movement.DefaultConfig()
	if mv, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok {
		cfg = mv.Controller.Config()
	}
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{
		Source:  ctx.Source,
		Sampler: movement.NewInputSampler(ctx.Source, cfg),
	})
}

func addClimbAnimation(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ClimbAnimationComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Duration < 0 {
		return fmt.Errorf("duration must be >= 0, got %v", spec.Duration)
	}
	anim := &component.ClimbAnimation{Duration: spec.Duration, Ease: ease.OutQuad}
	if spec.Ease != "" {
		fn, ok := easings[spec.Ease]
		if !ok {
			return fmt.Errorf("unknown ease %q (have %v)", spec.Ease, easingNames())
		}
		anim.Ease = fn
	}
	return ecs.Add(w, e, component.ClimbAnimationComponent.Kind(), anim)
}

func addBoxRender(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BoxRenderComponentSpec](raw)
	if err != nil {
		return err
	}
	box := &component.BoxRender{}
	if spec.Color != nil {
		box.Color = spec.Color.Color
	}
	if spec.GrabColor != nil {
		box.GrabColor = spec.GrabColor.Color
	}
	if spec.DashColor != nil {
		box.DashColor = spec.DashColor.Color
	}
	if spec.ClimbColor != nil {
		box.ClimbColor = spec.ClimbColor.Color
	}
	return ecs.Add(w, e, component.BoxRenderComponent.Kind(), box)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return err
	}
	follow := spec.Follow
	if follow <= 0 || follow > 1 {
		follow = 1
	}
	view := common.NewView(ctx.ViewWidth, ctx.ViewHeight)
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		view.Camera = cp.Vector{X: t.X, Y: t.Y}
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Follow: follow, View: view})
}

func addDebugOverlay(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DebugOverlayComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.DebugOverlayComponent.Kind(), &component.DebugOverlay{Enabled: spec.Enabled || ctx.Debug})
}

func easingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
