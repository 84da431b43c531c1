package factory

import (
	"github.com/dream-sky2020/divinebloom/archetypes"
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/yohamta/donburi"
)

type SpawnConfig struct {
	Base `yaml:",inline"`
}

func DefaultSpawnConfig() SpawnConfig { return SpawnConfig{} }

// CreateSpawn marks a named position teleports can arrive at.
func CreateSpawn(w donburi.World, c SpawnConfig) (*donburi.Entry, error) {
	if err := check(TypeSpawn, c); err != nil {
		return nil, err
	}
	if c.Name == "" {
		return fail(TypeSpawn, errMissingName)
	}

	spawn := archetypes.SpawnPoint.Spawn(w)
	components.Identity.SetValue(spawn, c.identity(TypeSpawn))
	components.Transform.SetValue(spawn, c.transform())
	components.SpawnPoint.SetValue(spawn, components.SpawnPointData{Name: c.Name})
	return spawn, nil
}

func SerializeSpawn(e *donburi.Entry) SpawnConfig {
	return SpawnConfig{Base: baseOf(e)}
}

// FindSpawn returns the spawn point called name.
func FindSpawn(w donburi.World, name string) (*donburi.Entry, bool) {
	var found *donburi.Entry
	components.SpawnPoint.Each(w, func(e *donburi.Entry) {
		if found == nil && components.SpawnPoint.Get(e).Name == name {
			found = e
		}
	})
	return found, found != nil
}
