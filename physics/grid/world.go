// Package grid is a second physics backend built on a resolv spatial hash. It
// has no rigid-body solver: the character moves by its velocity and stops flush
// against solid tiles. The simulator uses it to check that movement behaves the
// same without Chipmunk underneath.
package grid

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/levels"
	"github.com/solarlune/resolv"
)

const (
	tagSolid     = "solid"
	tagCharacter = "character"
	tagCursor    = "cursor"

	cellSize = 16
	// maxStepPixels keeps a single sweep inside one cell so fast falls can't
	// skip a one-tile floor.
	maxStepPixels = cellSize / 2
)

// World is a resolv space in y-down pixels mirroring a y-up level.
type World struct {
	level *levels.Level
	space *resolv.Space

	scale  float64
	height float64

	solids    map[*resolv.Object]cp.BB
	cursor    *resolv.Object
	character *Body
}

func NewWorld(level *levels.Level) *World {
	scale := float64(common.PixelsPerUnit)
	w := &World{
		level:  level,
		scale:  scale,
		height: float64(level.Height),
		solids: make(map[*resolv.Object]cp.BB),
	}
	w.space = resolv.NewSpace(int(float64(level.Width)*scale), int(float64(level.Height)*scale), cellSize, cellSize)

	for _, bb := range level.Rects() {
		x, y, ww, hh := w.toPixels(bb)
		obj := resolv.NewObject(x, y, ww, hh, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, ww, hh))
		w.space.Add(obj)
		w.solids[obj] = bb
	}

	w.cursor = resolv.NewObject(0, 0, 1, 1, tagCursor)
	w.space.Add(w.cursor)
	return w
}

func (w *World) Level() *levels.Level {
	return w.level
}

func (w *World) SolidCount() int {
	return len(w.solids)
}

// Query returns the collision query view of this world.
func (w *World) Query() *Query {
	return &Query{world: w}
}

// Step moves the character by its velocity, resolving against solid tiles one
// axis at a time.
func (w *World) Step(dt float64) {
	if w == nil || w.character == nil || dt <= 0 {
		return
	}
	w.character.step(dt)
}

func (w *World) toPixels(bb cp.BB) (x, y, width, height float64) {
	return bb.L * w.scale, (w.height - bb.T) * w.scale, (bb.R - bb.L) * w.scale, (bb.T - bb.B) * w.scale
}

func (w *World) fromPixels(x, y, width, height float64) cp.BB {
	return cp.BB{
		L: x / w.scale,
		B: w.height - (y+height)/w.scale,
		R: (x + width) / w.scale,
		T: w.height - y/w.scale,
	}
}

// outside reports whether bb reaches past the level edges, which count as
// solid.
func (w *World) outside(bb cp.BB) bool {
	b := w.level.Bounds()
	return bb.L < b.L || bb.B < b.B || bb.R > b.R || bb.T > b.T
}

// solidIn runs match on every solid tile sharing a cell with bb. The resolv
// check narrows the candidates; match decides the exact test.
func (w *World) solidIn(bb cp.BB, match func(solid cp.BB) bool) bool {
	x, y, width, height := w.toPixels(bb)
	// resolv ends an object's cell range one pixel short of its far edge, so a
	// flat or sub-pixel box would cover no cell at all.
	w.cursor.X, w.cursor.Y = x, y
	w.cursor.W, w.cursor.H = width+1, height+1
	w.cursor.Update()

	check := w.cursor.Check(0, 0, tagSolid)
	if check == nil {
		return false
	}
	for _, obj := range check.ObjectsByTags(tagSolid) {
		solid, ok := w.solids[obj]
		if ok && match(solid) {
			return true
		}
	}
	return false
}

func (w *World) overlaps(bb cp.BB) bool {
	if w.outside(bb) {
		return true
	}
	return w.solidIn(bb, func(solid cp.BB) bool {
		return solid.Intersects(bb)
	})
}
