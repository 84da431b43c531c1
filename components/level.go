package components

import (
	"math/rand"

	"github.com/dream-sky2020/divinebloom/events"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

// CollisionStats counts the work of the last collision pass.
type CollisionStats struct {
	PairsTested   int // narrowphase calls
	Resolutions   int // pairs displaced
	StaticSkipped int // static-static pairs rejected before the narrowphase
	Triggers      int // trigger overlaps recorded
}

// GlobalData is the per-scene singleton: queues, bounds, tick counter and rng.
type GlobalData struct {
	Actions  events.ActionQueue
	Damage   *events.DamageQueue
	Commands events.CommandQueue

	SceneName     string
	Width, Height float64 // bodies are clamped to [0, Width] x [0, Height]

	Tick       uint64
	Rand       *rand.Rand
	Collisions CollisionStats

	// PendingResults holds battle results for enemies not live in this scene.
	PendingResults map[uuid.UUID]BattleResult
}

var Global = donburi.NewComponentType[GlobalData]()

// GetGlobal returns the scene singleton, or nil if the world has none.
func GetGlobal(w donburi.World) *GlobalData {
	if e, ok := Global.First(w); ok {
		return Global.Get(e)
	}
	return nil
}
