package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/yohamta/donburi"
)

// UpdateHitDetection queues one damage event per target newly inside a
// hitter's DetectArea. A target staying inside is not hit again.
func UpdateHitDetection(w donburi.World) {
	g := components.GetGlobal(w)
	if g == nil || g.Damage == nil {
		return
	}

	store.Each(w, func(e *donburi.Entry) {
		hit := components.Hitter.Get(e)
		area := components.DetectArea.Get(e)

		owner := hit.Owner
		if owner == donburi.Null {
			owner = e.Entity()
		}
		for _, t := range area.Results {
			if containsEntity(hit.Contacts, t) {
				continue
			}
			target, ok := store.Entry(w, t)
			if !ok || !target.HasComponent(components.Health) {
				continue
			}
			g.Damage.Push(events.DamageEvent{Source: owner, Target: t, Amount: hit.Damage})
		}
		hit.Contacts = append(hit.Contacts[:0], area.Results...)
	}, components.Hitter, components.DetectArea)
}

func containsEntity(es []donburi.Entity, e donburi.Entity) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}
