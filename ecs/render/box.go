package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/component"
	"github.com/milk9111/traversal/ecs/system"
	"github.com/milk9111/traversal/movement"
	"golang.org/x/image/colornames"
)

var (
	tileColor      = colornames.Slategray
	sensorColor     = colornames.Yellow
	sensorHitColor  = colornames.Red
	ledgeColor     = colornames.Cyan
	ledgeHitColor  = colornames.Lime
	facingColor    = colornames.White
	defaultBoxFill = colornames.Orange
)

// BoxRenderer draws the level and every box-rendered entity. With a debug
// overlay enabled it also draws the sensor boxes, the physics shapes and a
// state readout.
type BoxRenderer struct {
	tiles     []cp.BB
	debugDraw func(screen *ebiten.Image, view common.View)
}

// NewBoxRenderer draws tiles as the static level. debugDraw may be nil.
func NewBoxRenderer(tiles []cp.BB, debugDraw func(screen *ebiten.Image, view common.View)) *BoxRenderer {
	return &BoxRenderer{tiles: tiles, debugDraw: debugDraw}
}

func (r *BoxRenderer) Update(w *ecs.World) {}

func (r *BoxRenderer) Draw(w *ecs.World, screen *ebiten.Image, view common.View) {
	if r == nil || w == nil {
		return
	}

	for _, bb := range r.tiles {
		fillBB(screen, view, bb, tileColor)
	}

	ecs.ForEach3(w, component.PhysicsBodyComponent.Kind(), component.BoxRenderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, box *component.BoxRender, t *component.Transform) {
		pos := cp.Vector{X: t.X, Y: t.Y}
		if anim, ok := ecs.Get(w, e, component.ClimbAnimationComponent.Kind()); ok {
			dx, dy := system.ClimbOffset(anim)
			pos = pos.Add(cp.Vector{X: dx, Y: dy})
		}
		bb := cp.NewBBForExtents(pos, pb.Size.X/2, pb.Size.Y/2)

		mode := ""
		if mv, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok && mv.Controller != nil {
			mode = mv.Controller.Snapshot().Mode()
		}
		fillBB(screen, view, bb, boxColor(box, mode))

		eye := cp.Vector{X: pos.X + t.Facing*pb.Size.X/2, Y: pos.Y + pb.Size.Y/4}
		x1, y1 := view.ToScreen(cp.Vector{X: pos.X, Y: eye.Y})
		x2, y2 := view.ToScreen(eye)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 2, facingColor, false)
	})

	if !system.DebugEnabled(w) {
		return
	}
	if r.debugDraw != nil {
		r.debugDraw(screen, view)
	}
	ecs.ForEach(w, component.MoverComponent.Kind(), func(_ ecs.Entity, mv *component.Mover) {
		if mv.Controller != nil {
			drawSensors(screen, view, mv.Controller, mv.Shape)
		}
	})
}

func boxColor(box *component.BoxRender, mode string) color.Color {
	pick := func(c color.Color) color.Color {
		if c != nil {
			return c
		}
		if box.Color != nil {
			return box.Color
		}
		return defaultBoxFill
	}
	switch mode {
	case "wall_grab", "climb":
		return pick(box.GrabColor)
	case "dash":
		return pick(box.DashColor)
	case "ledge_climb":
		return pick(box.ClimbColor)
	}
	return pick(nil)
}

func drawSensors(screen *ebiten.Image, view common.View, ctrl *movement.Controller, shape movement.Shape) {
	pos := ctrl.Position()
	sense := ctrl.Sensors()

	strokeBB(screen, view, shape.Bounds(pos), hitColor(sense.Ground || sense.Ceiling, sensorColor, sensorHitColor))
	for _, side := range []movement.Side{movement.SideLeft, movement.SideRight} {
		strokeBB(screen, view, shape.WallAboveBox(pos, side), hitColor(sense.WallAbove(side), sensorColor, sensorHitColor))

		_, ledge := sense.Ledge(side)
		anchor := shape.LedgeAnchor(pos, side)
		cx, cy := view.ToScreen(anchor)
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(shape.LedgeRadius*view.Scale), 1, hitColor(ledge, ledgeColor, ledgeHitColor), false)

		if sense.Wall(side) {
			edge := cp.Vector{X: pos.X + float64(side)*shape.Size.X/2, Y: pos.Y}
			x1, y1 := view.ToScreen(edge)
			x2, y2 := view.ToScreen(edge.Add(sense.WallNormal.Mult(0.5)))
			vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, sensorHitColor, false)
		}
	}

	snap := ctrl.Snapshot()
	text := fmt.Sprintf("mode: %s\nvel: %.2f, %.2f\ngrounded: %t  can dash: %t\nsliding: %t  pushing: %t\nledge: %s  tick: %d",
		snap.Mode(), snap.Velocity.X, snap.Velocity.Y, snap.Grounded, snap.CanDash, snap.Sliding, snap.Pushing, snap.Phase, snap.Tick)
	ebitenutil.DebugPrintAt(screen, text, 10, 24)
}

func hitColor(hit bool, miss, got color.Color) color.Color {
	if hit {
		return got
	}
	return miss
}

func fillBB(screen *ebiten.Image, view common.View, bb cp.BB, c color.Color) {
	x, y, w, h := view.RectToScreen(bb)
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

func strokeBB(screen *ebiten.Image, view common.View, bb cp.BB, c color.Color) {
	x, y, w, h := view.RectToScreen(bb)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, c, false)
}
