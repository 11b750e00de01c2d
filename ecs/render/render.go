// Package render draws the ECS world with ebiten. It is the only part of the
// world that links ebiten, so the simulator can run the same systems headless.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
)

// Drawer is a system that also draws each frame.
type Drawer interface {
	Draw(w *ecs.World, screen *ebiten.Image, view common.View)
}

// Draw calls every Drawer in the world's system order.
func Draw(w *ecs.World, screen *ebiten.Image, view common.View) {
	if w == nil || screen == nil {
		return
	}
	for _, s := range w.Systems() {
		if d, ok := s.(Drawer); ok {
			d.Draw(w, screen, view)
		}
	}
}
