// Command simulate runs the movement controller headless against a level and
// an input script, printing a trace of the character's state.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/physics"
	"github.com/milk9111/traversal/physics/grid"
	"github.com/milk9111/traversal/settings"
)

func main() {
	configPath := flag.String("config", "", "settings file (default ./traversal.yaml when present)")
	script := flag.String("script", "walk_jump.tengo", "input script in prefabs/scripts, or a path")
	levelName := flag.String("level", "", "level name in levels/, or a path to a .json or .tmx file")
	ticks := flag.Int("ticks", 0, "ticks to run (0 uses the settings value)")
	backend := flag.String("backend", "", "physics backend: cp or grid")
	every := flag.Int("every", 0, "print a state line every N ticks")
	tunables := flag.String("tunables", "", "movement tunables file")
	flag.Parse()

	s, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["level"] {
		s.Level = *levelName
	}
	if set["ticks"] {
		s.Sim.Ticks = *ticks
	}
	if set["backend"] {
		s.Sim.Backend = *backend
	}
	if set["every"] {
		s.Sim.Every = *every
	}
	if set["tunables"] {
		s.Tunables = *tunables
	}
	if err := s.Validate(); err != nil {
		log.Fatal(err)
	}

	sim, err := newSimulation(s, *script)
	if err != nil {
		log.Fatal(err)
	}
	res := sim.Run(os.Stdout)
	fmt.Fprintln(os.Stdout, res.Summary())
	if res.Err != nil {
		os.Exit(1)
	}
}

// newBackend picks the physics backend by name.
func newBackend(name string, lvl *levels.Level) (physics.Backend, error) {
	switch name {
	case "", "cp":
		return physics.NewWorld(lvl), nil
	case "grid":
		return grid.NewWorld(lvl), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
