package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// AddProxy creates the broadphase proxy for a collider and adds it to the
// scene's space. The proxy's Data is the entity handle.
func AddProxy(w donburi.World, e *donburi.Entry) *resolv.Object {
	x, y, width, height := proxyRect(e)

	resolvTags := []string{tags.ResolvCollider}
	if collider := components.Collider.Get(e); collider.IsStatic {
		resolvTags = append(resolvTags, tags.ResolvSolid)
	} else if collider.IsTrigger {
		resolvTags = append(resolvTags, tags.ResolvTrigger)
	}

	obj := resolv.NewObject(x, y, width, height, resolvTags...)
	obj.Data = e.Entity() // Link for O(1) lookup
	store.AddComponent(e, components.Object, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(w); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
	return obj
}

// UpdateObjects moves every proxy to its body's current bounds.
func UpdateObjects(w donburi.World) {
	components.Object.Each(w, func(e *donburi.Entry) {
		syncProxy(e)
	})
}

func syncProxy(e *donburi.Entry) {
	obj := components.Object.Get(e)
	if obj.Object == nil || !e.HasComponent(components.Shape) {
		return
	}
	obj.X, obj.Y, obj.W, obj.H = proxyRect(e)
	obj.Update()
}

// proxyRect is the body's bounds grown by the broadphase margin, never
// smaller than one pixel so points still occupy a cell.
func proxyRect(e *donburi.Entry) (x, y, w, h float64) {
	min, max := components.PlacedShape(e).Bounds()
	m := geom.V(cfg.Physics.BroadphaseMargin, cfg.Physics.BroadphaseMargin)
	min, max = min.Sub(m), max.Add(m)
	w, h = max.X-min.X, max.Y-min.Y
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return min.X, min.Y, w, h
}

// EntityOf returns the entity behind a proxy.
func EntityOf(obj *resolv.Object) (donburi.Entity, bool) {
	e, ok := obj.Data.(donburi.Entity)
	return e, ok
}
