// Package store wraps donburi with the handful of entity operations the
// simulation needs: create, destroy, attach/detach components and
// snapshot queries that tolerate mutation while iterating.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

var (
	queriesMu sync.Mutex
	queries   = map[string]*query.Query{}
)

// Add creates an entity carrying cs and returns its entry.
func Add(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(cs...))
}

// Remove destroys e. It returns false if e was already gone.
func Remove(w donburi.World, e donburi.Entity) bool {
	if e == donburi.Null || !w.Valid(e) {
		return false
	}
	w.Remove(e)
	return true
}

// Entry resolves a handle, reporting false for stale or null handles.
func Entry(w donburi.World, e donburi.Entity) (*donburi.Entry, bool) {
	if e == donburi.Null || !w.Valid(e) {
		return nil, false
	}
	return w.Entry(e), true
}

// AddComponent attaches c with value, or overwrites it if already present.
func AddComponent[T any](entry *donburi.Entry, c *donburi.ComponentType[T], value T) {
	if entry.HasComponent(c) {
		c.SetValue(entry, value)
		return
	}
	donburi.Add(entry, c, &value)
}

// RemoveComponent detaches c if present.
func RemoveComponent(entry *donburi.Entry, c donburi.IComponentType) {
	if entry.HasComponent(c) {
		entry.RemoveComponent(c)
	}
}

// With returns a snapshot of every entity carrying all of cs.
func With(w donburi.World, cs ...donburi.IComponentType) []donburi.Entity {
	var out []donburi.Entity
	queryFor(cs).Each(w, func(e *donburi.Entry) {
		out = append(out, e.Entity())
	})
	return out
}

// Each calls fn for every entity carrying all of cs. The match set is taken
// before the first call: entities created by fn are not visited, and entities
// removed (or stripped of a component) by fn are skipped.
func Each(w donburi.World, fn func(*donburi.Entry), cs ...donburi.IComponentType) {
	for _, e := range With(w, cs...) {
		if !w.Valid(e) {
			continue
		}
		entry := w.Entry(e)
		if !hasAll(entry, cs) {
			continue
		}
		fn(entry)
	}
}

// Count returns how many entities have every component in cs.
func Count(w donburi.World, cs ...donburi.IComponentType) int {
	return queryFor(cs).Count(w)
}

func hasAll(entry *donburi.Entry, cs []donburi.IComponentType) bool {
	for _, c := range cs {
		if !entry.HasComponent(c) {
			return false
		}
	}
	return true
}

// queryFor returns the cached query for a component signature.
func queryFor(cs []donburi.IComponentType) *query.Query {
	key := signature(cs)

	queriesMu.Lock()
	defer queriesMu.Unlock()
	if q, ok := queries[key]; ok {
		return q
	}
	q := query.NewQuery(filter.Contains(cs...))
	queries[key] = q
	return q
}

func signature(cs []donburi.IComponentType) string {
	ids := make([]int, len(cs))
	for i, c := range cs {
		ids[i] = int(c.Id())
	}
	sort.Ints(ids)

	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprint(&b, id)
	}
	return b.String()
}
