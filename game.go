package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/traversal/common"
	"github.com/milk9111/traversal/ecs"
	"github.com/milk9111/traversal/ecs/entity"
	"github.com/milk9111/traversal/ecs/render"
	"github.com/milk9111/traversal/ecs/system"
	"github.com/milk9111/traversal/input"
	"github.com/milk9111/traversal/input/keyboard"
	"github.com/milk9111/traversal/levels"
	"github.com/milk9111/traversal/movement"
	"github.com/milk9111/traversal/physics"
	"github.com/milk9111/traversal/prefabs"
	"github.com/milk9111/traversal/settings"
)

var backgroundColor = color.NRGBA{R: 0x1b, G: 0x1d, B: 0x24, A: 0xff}

type Game struct {
	frames int

	paused bool
	quit   bool

	width, height int

	settings settings.Settings
	store    *settings.Store

	world    *ecs.World
	movement *system.MovementSystem
	player   ecs.Entity
	source   movement.InputSource
	fallback common.View

	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(s settings.Settings, store *settings.Store) (*Game, error) {
	g := &Game{
		settings: s,
		store:    store,
		width:    common.BaseWidth,
		height:   common.BaseHeight,
		fallback: common.NewView(common.BaseWidth, common.BaseHeight),
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if s.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "levels")
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// reset rebuilds the level, physics and player from the current settings.
// The previous world is kept when any step fails.
func (g *Game) reset() error {
	lvl, err := levels.Open(g.settings.Level)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	phys := physics.NewWorld(lvl)

	var source movement.InputSource = keyboard.New()
	if g.settings.Script != "" {
		script, err := input.LoadScript(g.settings.Script)
		if err != nil {
			return fmt.Errorf("game: %w", err)
		}
		source = script
	}

	debug := g.settings.Debug
	if g.world != nil {
		// keep the overlay state across resets
		debug = system.DebugEnabled(g.world)
	}

	w := ecs.NewWorld()
	player, err := entity.NewPlayer(w, entity.BuildContext{
		Physics:    phys,
		Source:     source,
		Spawn:      lvl.SpawnFeet(),
		Tunables:   g.settings.Tunables,
		Debug:      debug,
		ViewWidth:  float64(g.width),
		ViewHeight: float64(g.height),
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	mv := system.NewMovementSystem(phys, 1.0/float64(ebiten.TPS()))
	w.AddSystem(system.NewInputSystem())
	w.AddSystem(mv)
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(system.NewAnimationSystem(1.0 / float64(ebiten.TPS())))
	w.AddSystem(system.NewCameraSystem(lvl.Bounds()))
	w.AddSystem(system.NewEventLogSystem())
	w.AddSystem(render.NewBoxRenderer(lvl.Rects(), render.SpaceDebugDraw(phys.Space())))

	g.world = w
	g.movement = mv
	g.player = player
	g.source = source
	return nil
}

func (g *Game) toggleDebug() bool {
	on := system.ToggleDebug(g.world)
	g.settings.Debug = on
	return on
}

func (g *Game) reloadTunables() error {
	if err := entity.ReloadTunables(g.world); err != nil {
		log.Printf("reload tunables: %v", err)
		return err
	}
	log.Printf("tunables reloaded")
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			switch {
			case prefabs.IsSpecFile(path):
				_ = g.reloadTunables()
			case prefabs.IsScriptFile(path), prefabs.IsLevelFile(path):
				if err := g.reset(); err != nil {
					log.Printf("reload %s: %v", path, err)
					continue
				}
				log.Printf("reloaded after change to %s", path)
			}
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.toggleDebug()
	}

	if g.paused {
		g.pauseUI.Update()
	} else {
		g.world.Update()
		if script, ok := g.source.(*input.Script); ok && script.Err() != nil {
			log.Printf("input script stopped: %v", script.Err())
			g.source = nil
		}
	}

	if g.quit {
		return g.shutdown()
	}
	return nil
}

// shutdown remembers the session and stops the watcher before ending the run loop.
func (g *Game) shutdown() error {
	st := settings.State{
		LastLevel: g.settings.Level,
		Debug:     g.settings.Debug,
		Tunables:  g.settings.Tunables,
	}
	var errs []error
	if err := g.store.Save(st); err != nil {
		errs = append(errs, err)
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		log.Printf("shutdown: %v", err)
	}
	return ebiten.Termination
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	render.Draw(g.world, screen, system.CurrentView(g.world, g.fallback))

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Ticks: %d", g.frames, ebiten.ActualFPS(), g.movement.Ticks()))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
