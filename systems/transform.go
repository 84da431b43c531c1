package systems

import (
	"errors"

	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

var ErrHierarchyCycle = errors.New("attach would create a hierarchy cycle")

// Attach makes child a child of parent in role, placed at local relative to
// the parent. An existing parent edge is replaced.
func Attach(w donburi.World, parent, child *donburi.Entry, role components.Role, local components.LocalTransformData) error {
	for a, i := parent, 0; a != nil && i < maxFamilyDepth; i++ {
		if a.Entity() == child.Entity() {
			return ErrHierarchyCycle
		}
		p, ok := ParentOf(w, a)
		if !ok {
			break
		}
		a = p
	}

	if child.HasComponent(components.Parent) {
		Detach(w, child)
	}

	store.AddComponent(child, components.Parent, components.ParentData{Entity: parent.Entity(), Role: role})
	store.AddComponent(child, components.LocalTransform, local)
	if !child.HasComponent(components.Transform) {
		child.AddComponent(components.Transform)
	}

	if !parent.HasComponent(components.Children) {
		parent.AddComponent(components.Children)
	}
	children := components.Children.Get(parent)
	children.Entities = append(children.Entities, child.Entity())
	switch role {
	case components.RoleSensor:
		children.Sensor = child.Entity()
	case components.RoleBody:
		children.Body = child.Entity()
	}

	// Place the child immediately so it is valid before the next sync.
	syncChild(parent, child)
	t := components.Transform.Get(child)
	t.PrevX, t.PrevY = t.X, t.Y
	return nil
}

// Detach removes child's parent edge. Its world transform is left as is.
func Detach(w donburi.World, child *donburi.Entry) {
	if !child.HasComponent(components.Parent) {
		return
	}
	if parent, ok := ParentOf(w, child); ok && parent.HasComponent(components.Children) {
		unlinkChild(components.Children.Get(parent), child.Entity())
	}
	child.RemoveComponent(components.Parent)
}

func unlinkChild(children *components.ChildrenData, e donburi.Entity) {
	for i, c := range children.Entities {
		if c == e {
			children.Entities = append(children.Entities[:i], children.Entities[i+1:]...)
			break
		}
	}
	if children.Sensor == e {
		children.Sensor = donburi.Null
	}
	if children.Body == e {
		children.Body = donburi.Null
	}
}

// SyncTransforms recomputes every child's world transform from its parent,
// depth-first from the roots so a grandchild always follows its parent.
func SyncTransforms(w donburi.World) {
	visited := make(map[donburi.Entity]bool)

	var walk func(parent *donburi.Entry)
	walk = func(parent *donburi.Entry) {
		visited[parent.Entity()] = true
		for _, c := range components.Children.Get(parent).Entities {
			child, ok := store.Entry(w, c)
			if !ok || visited[c] {
				continue
			}
			syncChild(parent, child)
			if child.HasComponent(components.Children) {
				walk(child)
			} else {
				visited[c] = true
			}
		}
	}

	store.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Parent) {
			walk(e)
		}
	}, components.Children)

	// Anything parented but unreached is either orphaned or on a cycle.
	store.Each(w, func(e *donburi.Entry) {
		if visited[e.Entity()] {
			return
		}
		log := logger.For("transform").WithFields(logrus.Fields{"entity": e.Entity()})
		if _, ok := ParentOf(w, e); !ok {
			log.Warn("Orphaned child detached")
			e.RemoveComponent(components.Parent)
			return
		}
		log.Warn("Hierarchy cycle, transform not synced")
	}, components.Parent)
}

func syncChild(parent, child *donburi.Entry) {
	pt := components.Transform.Get(parent)
	local := components.LocalTransform.Get(child)
	ct := components.Transform.Get(child)

	offset := geom.V(local.X, local.Y).Rotate(pt.Rotation)
	ct.PrevX, ct.PrevY = ct.X, ct.Y
	ct.X = pt.X + offset.X
	ct.Y = pt.Y + offset.Y
	ct.Rotation = pt.Rotation + local.Rotation
}

// PlaceRoot moves the tree containing e so its root sits at pos. The root's
// previous position is reset along with it.
func PlaceRoot(w donburi.World, e *donburi.Entry, pos geom.Vec) {
	root := RootOf(w, e)
	if !root.HasComponent(components.Transform) {
		return
	}
	t := components.Transform.Get(root)
	translate(w, root, pos.Sub(t.Pos()))
	t.PrevX, t.PrevY = t.X, t.Y
}
