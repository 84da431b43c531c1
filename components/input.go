package components

import (
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/yohamta/donburi"
)

// InputSample is one frame of raw device state.
type InputSample struct {
	MoveX, MoveY float64
	Buttons      [cfg.ButtonCount]bool
}

// InputData stores the current and previous frame's pressed state.
// JustPressed is computed on demand by comparing frames.
type InputData struct {
	MoveX, MoveY float64
	Current      [cfg.ButtonCount]bool
	Previous     [cfg.ButtonCount]bool
}

// Apply shifts Current into Previous and records s.
func (d *InputData) Apply(s InputSample) {
	d.Previous = d.Current
	d.Current = s.Buttons
	d.MoveX, d.MoveY = s.MoveX, s.MoveY
}

func (d *InputData) Pressed(b cfg.ButtonID) bool {
	return b >= 0 && b < cfg.ButtonCount && d.Current[b]
}

func (d *InputData) JustPressed(b cfg.ButtonID) bool {
	return d.Pressed(b) && !d.Previous[b]
}

var Input = donburi.NewComponentType[InputData]()
