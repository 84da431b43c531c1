package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/yohamta/donburi"
)

// UpdateBounds clamps non-static root bodies into the scene's map bounds.
func UpdateBounds(w donburi.World) {
	g := components.GetGlobal(w)
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return
	}

	var outside []*donburi.Entry
	components.Collider.Each(w, func(e *donburi.Entry) {
		if components.Collider.Get(e).IsStatic || e.HasComponent(components.Parent) {
			return
		}
		if !e.HasComponent(components.Transform) {
			return
		}
		t := components.Transform.Get(e)
		if t.X < 0 || t.Y < 0 || t.X > g.Width || t.Y > g.Height {
			outside = append(outside, e)
		}
	})

	for _, e := range outside {
		t := components.Transform.Get(e)
		clamped := geom.V(geom.Clamp(t.X, 0, g.Width), geom.Clamp(t.Y, 0, g.Height))
		translate(w, e, clamped.Sub(t.Pos()))
	}
}
