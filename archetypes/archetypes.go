package archetypes

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Transform,
		components.Velocity,
		components.Movement,
		components.Shape,
		components.Collider,
		components.Object,
		components.Health,
		components.Input,
		components.Detectable,
		components.Identity,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Transform,
		components.Velocity,
		components.Shape,
		components.Collider,
		components.Object,
		components.Health,
		components.AIConfig,
		components.AIState,
		components.AISensory,
		components.Detectable,
		components.BattleAction,
		components.Identity,
	)
	Sensor = newArchetype(
		tags.Sensor,
		components.Transform,
		components.LocalTransform,
		components.Shape,
		components.DetectArea,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Transform,
		components.Shape,
		components.Collider,
		components.Object,
		components.Identity,
	)
	Portal = newArchetype(
		tags.Portal,
		components.Transform,
		components.Shape,
		components.DetectArea,
		components.Trigger,
		components.TeleportAction,
		components.Identity,
	)
	NPC = newArchetype(
		tags.NPC,
		components.Transform,
		components.Shape,
		components.Collider,
		components.Object,
		components.DialogueAction,
		components.Identity,
	)
	Hazard = newArchetype(
		tags.Hazard,
		components.Transform,
		components.Shape,
		components.DetectArea,
		components.Hitter,
		components.Identity,
	)
	Zone = newArchetype(
		tags.Zone,
		components.Transform,
		components.Shape,
		components.DetectArea,
		components.Trigger,
		components.Identity,
	)
	SpawnPoint = newArchetype(
		components.Transform,
		components.SpawnPoint,
		components.Identity,
	)
	Global = newArchetype(
		components.Global,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	return store.Add(w, append(all, cs...)...)
}
