package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

type detectable struct {
	entity donburi.Entity
	body   geom.Body
	labels *components.DetectableData
}

// UpdateDetection rebuilds every DetectArea's Results from the Detectables
// overlapping it this tick. Detection never displaces anything.
func UpdateDetection(w donburi.World) {
	var candidates []detectable
	store.Each(w, func(e *donburi.Entry) {
		candidates = append(candidates, detectable{
			entity: e.Entity(),
			body:   placedOrPoint(e),
			labels: components.Detectable.Get(e),
		})
	}, components.Detectable, components.Transform)

	store.Each(w, func(e *donburi.Entry) {
		area := components.DetectArea.Get(e)
		area.Results = nil

		if area.Targets == nil {
			logger.For("detection").WithFields(logrus.Fields{"entity": e.Entity()}).
				Debug("DetectArea has no targets, defaulting to none")
			area.Targets = []string{}
		}
		if len(area.Targets) == 0 || !e.HasComponent(components.Shape) {
			return
		}

		body := components.PlacedShape(e)
		owner := RootOf(w, e).Entity()
		for _, c := range candidates {
			if c.entity == e.Entity() || c.entity == owner {
				continue
			}
			if !c.labels.HasAny(area.Targets) || c.labels.HasAny(area.Exclude) {
				continue
			}
			if !geom.Broadphase(body, c.body, 0) || !geom.Overlaps(body, c.body) {
				continue
			}
			area.Results = append(area.Results, c.entity)
		}
	}, components.DetectArea, components.Transform)
}

func placedOrPoint(e *donburi.Entry) geom.Body {
	if e.HasComponent(components.Shape) {
		return components.PlacedShape(e)
	}
	return geom.Point().Place(components.Transform.Get(e).Pos(), 0)
}
