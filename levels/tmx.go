package levels

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	tmxSolidLayer  = "solid"
	tmxSpawnGroup  = "spawn"
	tmxSpawnObject = "player"
)

// LoadTMX reads a Tiled map. Tiles on the "solid" layer collide; the first
// object in the "spawn" group (or the one named "player") is the spawn.
func LoadTMX(fsys fs.FS, path string) (*Level, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("level: load TMX %s: %w", path, err)
	}

	tiles := make([]int, m.Width*m.Height)
	found := false
	for _, layer := range m.Layers {
		if layer.Name != tmxSolidLayer {
			continue
		}
		found = true
		for i, t := range layer.Tiles {
			if i >= len(tiles) {
				break
			}
			if !t.IsNil() {
				tiles[i] = 1
			}
		}
		break
	}
	if !found {
		return nil, fmt.Errorf("level: %s: no %q layer", path, tmxSolidLayer)
	}

	spawnX, spawnY := -1, -1
	for _, og := range m.ObjectGroups {
		if og.Name != tmxSpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			if spawnX >= 0 && o.Name != tmxSpawnObject {
				continue
			}
			spawnX = int(o.X) / m.TileWidth
			spawnY = int(o.Y) / m.TileHeight
			if o.Name == tmxSpawnObject {
				break
			}
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	lvl := &Level{
		Name:      name,
		Width:     m.Width,
		Height:    m.Height,
		Layers:    [][]int{tiles},
		LayerMeta: []LayerMeta{{Physics: true}},
	}
	if spawnX >= 0 {
		lvl.Entities = []Entity{{Type: EntitySpawn, X: spawnX, Y: spawnY}}
	}
	if err := lvl.build(); err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return lvl, nil
}
