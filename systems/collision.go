package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/yohamta/donburi"
)

// UpdateCollisions separates overlapping colliders. Candidates come from the
// resolv grid, are filtered by bounding radius and resolved by MTV. The pass
// repeats cfg.Physics.CollisionIterations times.
func UpdateCollisions(w donburi.World) {
	var stats components.CollisionStats

	components.Collider.Each(w, func(e *donburi.Entry) {
		components.Collider.Get(e).Contacts = nil
	})

	for i := 0; i < cfg.Physics.CollisionIterations; i++ {
		UpdateObjects(w)
		resolvePass(w, &stats, i == 0)
	}
	UpdateObjects(w)

	if g := components.GetGlobal(w); g != nil {
		g.Collisions = stats
	}
}

func resolvePass(w donburi.World, stats *components.CollisionStats, recordTriggers bool) {
	store.Each(w, func(a *donburi.Entry) {
		obj := components.Object.Get(a)
		if obj.Object == nil {
			return
		}
		check := obj.Check(0, 0, tags.ResolvCollider)
		if check == nil {
			return
		}
		for _, other := range check.Objects {
			id, ok := EntityOf(other)
			// Each unordered pair is handled once, from its lower handle.
			if !ok || id <= a.Entity() {
				continue
			}
			b, ok := store.Entry(w, id)
			if !ok || !b.HasComponent(components.Collider) || !b.HasComponent(components.Shape) {
				continue
			}
			resolvePair(w, a, b, stats, recordTriggers)
		}
	}, components.Collider, components.Shape, components.Object, components.Transform)
}

func resolvePair(w donburi.World, a, b *donburi.Entry, stats *components.CollisionStats, recordTriggers bool) {
	ca, cb := components.Collider.Get(a), components.Collider.Get(b)
	if ca.IsStatic && cb.IsStatic {
		stats.StaticSkipped++
		return
	}

	ba, bb := components.PlacedShape(a), components.PlacedShape(b)
	if !geom.Broadphase(ba, bb, cfg.Physics.BroadphaseMargin) {
		return
	}
	stats.PairsTested++

	if ca.IsTrigger || cb.IsTrigger {
		if recordTriggers && geom.Overlaps(ba, bb) {
			ca.Contacts = append(ca.Contacts, b.Entity())
			cb.Contacts = append(cb.Contacts, a.Entity())
			stats.Triggers++
		}
		return
	}

	mtv, ok := geom.Collide(ba, bb)
	if !ok {
		return
	}
	stats.Resolutions++

	switch {
	case ca.IsStatic:
		translate(w, b, mtv)
	case cb.IsStatic:
		translate(w, a, mtv.Neg())
	default:
		half := mtv.Scale(0.5)
		translate(w, a, half.Neg())
		translate(w, b, half)
	}
}

// translate moves the entity's whole tree by d, starting from its root, and
// refreshes the moved proxies.
func translate(w donburi.World, e *donburi.Entry, d geom.Vec) {
	root := RootOf(w, e)
	visited := make(map[donburi.Entity]bool)

	var move func(n *donburi.Entry)
	move = func(n *donburi.Entry) {
		if visited[n.Entity()] {
			return
		}
		visited[n.Entity()] = true
		if n.HasComponent(components.Transform) {
			t := components.Transform.Get(n)
			t.X += d.X
			t.Y += d.Y
		}
		if n.HasComponent(components.Object) {
			syncProxy(n)
		}
		if n.HasComponent(components.Children) {
			for _, c := range components.Children.Get(n).Entities {
				if child, ok := store.Entry(w, c); ok {
					move(child)
				}
			}
		}
	}
	move(root)
}
