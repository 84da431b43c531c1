package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// UpdateCombat drains the damage queue and applies one health write per
// target. Defeated non-player entities are destroyed.
func UpdateCombat(w donburi.World) {
	g := components.GetGlobal(w)
	if g == nil || g.Damage == nil {
		return
	}

	evs := g.Damage.Drain()
	if n := g.Damage.TakeDropped(); n > 0 {
		logger.For("combat").WithFields(logrus.Fields{
			"dropped": n,
			"total":   g.Damage.Dropped(),
		}).Warn("Damage queue full, events dropped")
	}

	var defeated []donburi.Entity
	for _, tot := range events.Aggregate(evs) {
		target, ok := store.Entry(w, tot.Target)
		if !ok || !target.HasComponent(components.Health) {
			continue
		}

		hp := components.Health.Get(target)
		hp.Current -= tot.Amount
		if hp.Current < 0 {
			hp.Current = 0
		}
		if hp.Current > hp.Max {
			hp.Current = hp.Max
		}

		if hp.Current == 0 && !target.HasComponent(tags.Player) {
			defeated = append(defeated, tot.Target)
		}
	}

	DestroyAll(w, defeated)
}
