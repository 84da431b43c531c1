package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/yohamta/donburi"
)

// UpdateLifetimes counts down Lifetime components and destroys expired entities.
func UpdateLifetimes(w donburi.World) {
	var toDestroy []donburi.Entity

	components.Lifetime.Each(w, func(e *donburi.Entry) {
		lt := components.Lifetime.Get(e)
		lt.Frames--
		if lt.Frames <= 0 {
			toDestroy = append(toDestroy, e.Entity())
		}
	})

	DestroyAll(w, toDestroy)
}
