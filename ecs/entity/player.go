package entity

import (
	"fmt"

	"github.com/milk9111/traversal/ecs"
)

const PlayerPrefab = "player.yaml"

// NewPlayer builds the player prefab with its feet at ctx.Spawn.
func NewPlayer(w *ecs.World, ctx BuildContext) (ecs.Entity, error) {
	if ctx.PrefabPath == "" {
		ctx.PrefabPath = PlayerPrefab
	}
	e, err := BuildEntity(w, &ctx)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}
