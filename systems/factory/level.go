package factory

import (
	"math"
	"math/rand"

	"github.com/dream-sky2020/divinebloom/archetypes"
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/scenedata"
	"github.com/yohamta/donburi"
)

// CreateLevel creates the scene singleton and its collision space. It must
// run before any collider is created.
func CreateLevel(w donburi.World, sc scenedata.SceneConfig, seed int64) *donburi.Entry {
	global := archetypes.Global.Spawn(w)
	components.Global.SetValue(global, components.GlobalData{
		Damage:    events.NewDamageQueue(cfg.Damage.QueueCapacity),
		SceneName: sc.Name,
		Width:     sc.Width,
		Height:    sc.Height,
		Rand:      rand.New(rand.NewSource(seed)),
	})

	cell := cfg.Physics.GridCellSize
	CreateSpace(w, int(math.Ceil(sc.Width)), int(math.Ceil(sc.Height)), cell, cell)
	return global
}

// LoadScene builds a whole scene into an empty world.
func LoadScene(w donburi.World, s *scenedata.Scene, seed int64) int {
	CreateLevel(w, s.Header.Config, seed)
	return Build(w, s)
}

// SaveScene snapshots the world into a scene file.
func SaveScene(w donburi.World) *scenedata.Scene {
	s := &scenedata.Scene{Header: scenedata.Header{Version: scenedata.Version}}
	if g := components.GetGlobal(w); g != nil {
		s.Header.Config = scenedata.SceneConfig{Name: g.SceneName, Width: g.Width, Height: g.Height}
	}
	s.Entities = SerializeWorld(w)
	return s
}
