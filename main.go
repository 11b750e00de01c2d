package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/traversal/settings"
)

func main() {
	configPath := flag.String("config", "", "settings file (default ./traversal.yaml when present)")
	levelName := flag.String("level", "", "level name in levels/, or a path to a .json or .tmx file")
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	tunables := flag.String("tunables", "", "movement tunables file (default prefabs/movement.yaml)")
	script := flag.String("script", "", "drive the player from a tengo input script instead of the keyboard")
	flag.Parse()

	s, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	store, err := settings.OpenStore("traversal")
	if err != nil {
		log.Printf("session state disabled: %v", err)
	}
	state, err := store.Load()
	if err != nil {
		log.Printf("session state: %v", err)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["level"] && state.LastLevel != "" {
		s.Level = state.LastLevel
	}
	if set["level"] {
		s.Level = *levelName
	}
	if set["debug"] {
		s.Debug = *debug
	}
	if set["tunables"] {
		s.Tunables = *tunables
	}
	if set["script"] {
		s.Script = *script
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)

	game, err := NewGame(s, store)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
