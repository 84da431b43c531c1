package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/yohamta/donburi"
)

// maxFamilyDepth bounds parent-chain walks on corrupted hierarchies.
const maxFamilyDepth = 32

// ParentOf returns the entity's parent if it has a live one.
func ParentOf(w donburi.World, e *donburi.Entry) (*donburi.Entry, bool) {
	if !e.HasComponent(components.Parent) {
		return nil, false
	}
	return store.Entry(w, components.Parent.Get(e).Entity)
}

// SensorOf returns the child attached in the sensor role.
func SensorOf(w donburi.World, e *donburi.Entry) (*donburi.Entry, bool) {
	if !e.HasComponent(components.Children) {
		return nil, false
	}
	return store.Entry(w, components.Children.Get(e).Sensor)
}

// BodyChildOf returns the child attached in the body role.
func BodyChildOf(w donburi.World, e *donburi.Entry) (*donburi.Entry, bool) {
	if !e.HasComponent(components.Children) {
		return nil, false
	}
	return store.Entry(w, components.Children.Get(e).Body)
}

// RootOf walks up to the entity with no parent.
func RootOf(w donburi.World, e *donburi.Entry) *donburi.Entry {
	for i := 0; i < maxFamilyDepth; i++ {
		p, ok := ParentOf(w, e)
		if !ok {
			return e
		}
		e = p
	}
	return e
}

// FamilyLookup finds c in the fixed order: self, sensor child, body child, parent.
func FamilyLookup[T any](w donburi.World, e *donburi.Entry, c *donburi.ComponentType[T]) (*donburi.Entry, *T) {
	if e.HasComponent(c) {
		return e, c.Get(e)
	}
	if s, ok := SensorOf(w, e); ok && s.HasComponent(c) {
		return s, c.Get(s)
	}
	if b, ok := BodyChildOf(w, e); ok && b.HasComponent(c) {
		return b, c.Get(b)
	}
	if p, ok := ParentOf(w, e); ok && p.HasComponent(c) {
		return p, c.Get(p)
	}
	return nil, nil
}

// AncestorWith finds c on the entity or the nearest ancestor holding it.
func AncestorWith(w donburi.World, e *donburi.Entry, c donburi.IComponentType) (*donburi.Entry, bool) {
	for i := 0; i < maxFamilyDepth; i++ {
		if e.HasComponent(c) {
			return e, true
		}
		p, ok := ParentOf(w, e)
		if !ok {
			return nil, false
		}
		e = p
	}
	return nil, false
}
