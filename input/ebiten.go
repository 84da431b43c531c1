// Package input samples the keyboard and standard gamepads into kernel
// input samples. It is the only package besides main that touches ebiten.
package input

import (
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// Binding maps one logical button to physical keys and pad buttons.
type Binding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

type axisBinding struct {
	Negative, Positive []ebiten.Key
}

// AnalogDeadzone is the stick travel ignored around center.
var AnalogDeadzone = 0.25

var Bindings = map[cfg.ButtonID]Binding{
	cfg.ButtonInteract: {
		Keys:                   []ebiten.Key{ebiten.KeyZ, ebiten.KeyEnter, ebiten.KeyE},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
	},
	cfg.ButtonAttack: {
		Keys:                   []ebiten.Key{ebiten.KeyX, ebiten.KeySpace},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft},
	},
	cfg.ButtonCancel: {
		Keys:                   []ebiten.Key{ebiten.KeyEscape, ebiten.KeyBackspace},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight},
	},
}

var (
	horizontal = axisBinding{
		Negative: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
		Positive: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
	}
	vertical = axisBinding{
		Negative: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
		Positive: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
	}
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Sample polls the devices once. Keyboard and pad buttons are merged; the
// first stick outside the deadzone overrides keyboard movement.
func Sample() components.InputSample {
	var s components.InputSample
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for id, b := range Bindings {
		if id <= cfg.ButtonNone || id >= cfg.ButtonCount {
			continue
		}
		for _, key := range b.Keys {
			if ebiten.IsKeyPressed(key) {
				s.Buttons[id] = true
			}
		}
		for _, gp := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gp) {
				continue
			}
			for _, btn := range b.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gp, btn) {
					s.Buttons[id] = true
				}
			}
		}
	}

	s.MoveX = axis(horizontal)
	s.MoveY = axis(vertical)

	for _, gp := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gp) {
			continue
		}
		x := ebiten.StandardGamepadAxisValue(gp, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(gp, ebiten.StandardGamepadAxisLeftStickVertical)
		if x*x+y*y > AnalogDeadzone*AnalogDeadzone {
			s.MoveX, s.MoveY = x, y
			break
		}
	}
	return s
}

func axis(b axisBinding) float64 {
	var v float64
	if anyPressed(b.Negative) {
		v--
	}
	if anyPressed(b.Positive) {
		v++
	}
	return v
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
