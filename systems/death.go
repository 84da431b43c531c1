package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/yohamta/donburi"
)

// Destroy removes e and its whole subtree. Each entity is unlinked from its
// parent and dropped from the broadphase grid before it leaves the world.
func Destroy(w donburi.World, e donburi.Entity) {
	visited := make(map[donburi.Entity]bool)
	destroy(w, e, visited)
}

func destroy(w donburi.World, e donburi.Entity, visited map[donburi.Entity]bool) {
	entry, ok := store.Entry(w, e)
	if !ok || visited[e] {
		return
	}
	visited[e] = true

	if entry.HasComponent(components.Children) {
		children := append([]donburi.Entity(nil), components.Children.Get(entry).Entities...)
		for _, c := range children {
			destroy(w, c, visited)
		}
	}
	Detach(w, entry)
	removeProxy(w, entry)
	store.Remove(w, e)
}

// DestroyAll removes every entity in es, collected before removal.
func DestroyAll(w donburi.World, es []donburi.Entity) {
	for _, e := range es {
		Destroy(w, e)
	}
}

func removeProxy(w donburi.World, e *donburi.Entry) {
	if !e.HasComponent(components.Object) {
		return
	}
	obj := components.Object.Get(e)
	if obj.Object == nil {
		return
	}
	if spaceEntry, ok := components.Space.First(w); ok {
		if space := components.Space.Get(spaceEntry); space.Space != nil {
			space.Remove(obj.Object)
		}
	}
	obj.Object = nil
}
