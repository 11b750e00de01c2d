// Package keyboard is the playground's live input source. It is kept apart
// from package input so headless tools never link ebiten.
package keyboard

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traversal/movement"
)

const stickDeadzone = 0.2

// Bindings lists the keys for each action. Any key in a list triggers it.
type Bindings struct {
	Left, Right, Up, Down []ebiten.Key
	Jump, Dash, Grab      []ebiten.Key
}

func DefaultBindings() Bindings {
	return Bindings{
		Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Up:    []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Down:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Jump:  []ebiten.Key{ebiten.KeySpace},
		Dash:  []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyK},
		Grab:  []ebiten.Key{ebiten.KeyJ, ebiten.KeyControlLeft},
	}
}

// Source reads the keyboard and the first standard gamepad. It reports level
// state only; edges come from movement.InputSampler.
type Source struct {
	Bindings Bindings
}

var _ movement.InputSource = (*Source)(nil)

func New() *Source {
	return &Source{Bindings: DefaultBindings()}
}

func (k *Source) Read() movement.RawInput {
	b := k.Bindings

	var move cp.Vector
	if anyPressed(b.Left) {
		move.X -= 1
	}
	if anyPressed(b.Right) {
		move.X += 1
	}
	if anyPressed(b.Up) {
		move.Y += 1
	}
	if anyPressed(b.Down) {
		move.Y -= 1
	}

	raw := movement.RawInput{
		Jump: anyPressed(b.Jump),
		Dash: anyPressed(b.Dash),
		Grab: anyPressed(b.Grab),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(lx) > stickDeadzone {
			move.X = lx
		}
		// stick y points down
		if math.Abs(ly) > stickDeadzone {
			move.Y = -ly
		}

		raw.Jump = raw.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.Dash = raw.Dash || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
		raw.Grab = raw.Grab ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight) ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	raw.Move = move
	return raw
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
