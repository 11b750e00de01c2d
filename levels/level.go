package levels

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// ErrNoSpawn is returned when a level has no player spawn.
var ErrNoSpawn = errors.New("level: no spawn")

// EntitySpawn is the entity type marking the player spawn tile.
const EntitySpawn = "spawn"

// Level is a tile map. Layers are flat row-major arrays of Width*Height
// values; row 0 is the top row. Any non-zero value on a physics layer is solid.
type Level struct {
	Name      string      `json:"name,omitempty"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`

	solid []bool
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Entity is placed in tile coordinates.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Parse decodes a JSON level.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	if err := lvl.build(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// New builds a level from a single solid layer.
func New(name string, width, height int, tiles []int, spawnX, spawnY int) (*Level, error) {
	lvl := &Level{
		Name:      name,
		Width:     width,
		Height:    height,
		Layers:    [][]int{tiles},
		LayerMeta: []LayerMeta{{Physics: true}},
		Entities:  []Entity{{Type: EntitySpawn, X: spawnX, Y: spawnY}},
	}
	if err := lvl.build(); err != nil {
		return nil, err
	}
	return lvl, nil
}

func (l *Level) build() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level: invalid dimensions %dx%d", l.Width, l.Height)
	}
	if len(l.Layers) == 0 {
		return errors.New("level: no layers")
	}

	// Without metadata the first layer is the collision layer.
	if len(l.LayerMeta) == 0 {
		l.LayerMeta = []LayerMeta{{Physics: true}}
	}

	l.solid = make([]bool, l.Width*l.Height)
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("level: layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
		if i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics {
			continue
		}
		for idx, v := range layer {
			if v != 0 {
				l.solid[idx] = true
			}
		}
	}

	if _, ok := l.spawnTile(); !ok {
		return ErrNoSpawn
	}
	return nil
}

// Solid reports whether the tile at column x, row y (row 0 at the top) is
// solid. Tiles outside the map are not solid.
func (l *Level) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	return l.solid[y*l.Width+x]
}

// Bounds is the level extent in world units.
func (l *Level) Bounds() cp.BB {
	return cp.BB{L: 0, B: 0, R: float64(l.Width), T: float64(l.Height)}
}

// TileBB returns the world box of the tile at column x, row y.
func (l *Level) TileBB(x, y int) cp.BB {
	b := float64(l.Height - 1 - y)
	return cp.BB{L: float64(x), B: b, R: float64(x + 1), T: b + 1}
}

func (l *Level) spawnTile() (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == EntitySpawn {
			return e, true
		}
	}
	return Entity{}, false
}

// SpawnFeet is the world point at the bottom centre of the spawn tile.
func (l *Level) SpawnFeet() cp.Vector {
	e, _ := l.spawnTile()
	bb := l.TileBB(e.X, e.Y)
	return cp.Vector{X: (bb.L + bb.R) / 2, Y: bb.B}
}

// Rects merges contiguous solid tiles into as few world boxes as possible,
// expanding each rectangle greedily to the right and then downward.
func (l *Level) Rects() []cp.BB {
	var out []cp.BB
	processed := make([]bool, l.Width*l.Height)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := y*l.Width + x
			if processed[idx] {
				continue
			}
			if !l.solid[idx] {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < l.Width {
				idx2 := y*l.Width + (x + w)
				if processed[idx2] || !l.solid[idx2] {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*l.Width + xi
					if processed[idx2] || !l.solid[idx2] {
						break heightLoop
					}
				}
				h++
			}

			top := l.TileBB(x, y)
			bottom := l.TileBB(x, y+h-1)
			out = append(out, cp.BB{L: top.L, B: bottom.B, R: top.L + float64(w), T: top.T})

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}
		}
	}
	return out
}
