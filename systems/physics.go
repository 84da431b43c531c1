package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/yohamta/donburi"
)

// UpdateControl converts movement intent into velocity. AI entities steer by
// AIState.MoveDir at their configured speed; everything else by Movement.
func UpdateControl(w donburi.World) {
	components.Velocity.Each(w, func(e *donburi.Entry) {
		vel := components.Velocity.Get(e)

		switch {
		case e.HasComponent(components.AIState) && e.HasComponent(components.AIConfig):
			dir := components.AIState.Get(e).MoveDir.Normalize()
			speed := components.AIConfig.Get(e).Speed
			vel.X, vel.Y = dir.X*speed, dir.Y*speed
		case e.HasComponent(components.Movement):
			m := components.Movement.Get(e)
			vel.X, vel.Y = m.DirX*m.Speed, m.DirY*m.Speed
		}
	})
}

// UpdatePhysics integrates velocity for root entities. Children follow their
// parent in SyncTransforms instead.
func UpdatePhysics(w donburi.World) {
	components.Velocity.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(components.Parent) || !e.HasComponent(components.Transform) {
			return
		}
		if e.HasComponent(components.Collider) && components.Collider.Get(e).IsStatic {
			return
		}

		t := components.Transform.Get(e)
		vel := components.Velocity.Get(e)
		t.PrevX, t.PrevY = t.X, t.Y
		t.X += vel.X
		t.Y += vel.Y
	})
}
