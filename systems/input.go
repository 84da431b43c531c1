package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/yohamta/donburi"
)

// UpdateInputDetect latches button edges for onPress rules. Any input-tagged
// entity pressing the button this frame counts.
func UpdateInputDetect(w donburi.World) {
	var inputs []*components.InputData
	components.Input.Each(w, func(e *donburi.Entry) {
		inputs = append(inputs, components.Input.Get(e))
	})

	components.InputDetect.Each(w, func(e *donburi.Entry) {
		detect := components.InputDetect.Get(e)
		detect.JustPressed = false
		for _, in := range inputs {
			if in.JustPressed(detect.Button) {
				detect.JustPressed = true
				break
			}
		}
	})
}

// UpdatePlayerIntent turns raw movement input into movement intent.
func UpdatePlayerIntent(w donburi.World) {
	components.Input.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Movement) {
			return
		}
		in := components.Input.Get(e)
		m := components.Movement.Get(e)
		dir := geom.V(in.MoveX, in.MoveY)
		if dir.LenSq() > 1 {
			dir = dir.Normalize()
		}
		m.DirX, m.DirY = dir.X, dir.Y
	})
}

// ApplyInput feeds one raw sample to every input-tagged entity.
func ApplyInput(w donburi.World, s components.InputSample) {
	components.Input.Each(w, func(e *donburi.Entry) {
		components.Input.Get(e).Apply(s)
	})
}
