package systems

import (
	"math/rand"
	"testing"

	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

func newWorld(t *testing.T) donburi.World {
	t.Helper()
	w := donburi.NewWorld()
	g := store.Add(w, components.Global)
	components.Global.SetValue(g, components.GlobalData{
		Damage: events.NewDamageQueue(64),
		Width:  1000,
		Height: 1000,
		Rand:   rand.New(rand.NewSource(7)),
	})
	sp := store.Add(w, components.Space)
	components.Space.SetValue(sp, components.SpaceData{Space: resolv.NewSpace(1000, 1000, 16, 16)})
	return w
}

func global(w donburi.World) *components.GlobalData {
	return components.GetGlobal(w)
}

func addBody(w donburi.World, x, y float64, shape geom.Shape, static bool) *donburi.Entry {
	e := store.Add(w, components.Transform, components.Velocity, components.Shape, components.Collider)
	components.Transform.SetValue(e, components.TransformData{X: x, Y: y, PrevX: x, PrevY: y})
	components.Shape.SetValue(e, shape)
	components.Collider.SetValue(e, components.ColliderData{IsStatic: static})
	AddProxy(w, e)
	return e
}

func addDetectable(w donburi.World, x, y float64, labels ...string) *donburi.Entry {
	e := store.Add(w, components.Transform, components.Detectable)
	components.Transform.SetValue(e, components.TransformData{X: x, Y: y})
	components.Detectable.SetValue(e, components.DetectableData{Labels: labels})
	return e
}

func addArea(w donburi.World, x, y float64, shape geom.Shape, targets ...string) *donburi.Entry {
	e := store.Add(w, components.Transform, components.Shape, components.DetectArea)
	components.Transform.SetValue(e, components.TransformData{X: x, Y: y})
	components.Shape.SetValue(e, shape)
	components.DetectArea.SetValue(e, components.DetectAreaData{Targets: targets})
	return e
}

func addTrigger(e *donburi.Entry, tr components.TriggerData) {
	store.AddComponent(e, components.Trigger, tr)
	store.AddComponent(e, components.DialogueAction, components.DialogueActionData{ScriptID: "test"})
}

func moveTo(e *donburi.Entry, x, y float64) {
	t := components.Transform.Get(e)
	t.X, t.Y = x, y
}

func testAIConfig() components.AIConfigData {
	return components.AIConfigData{
		VisionRadius:   100,
		VisionAngle:    90,
		VisionType:     components.VisionCircle,
		Speed:          1,
		DetectedState:  cfg.StateChase,
		SuspicionTime:  0.5,
		ExitMultiplier: 1.5,
		StunDuration:   5,
		WanderInterval: 30,
	}
}

func addAI(w donburi.World, x, y float64, conf components.AIConfigData) *donburi.Entry {
	e := store.Add(w,
		tags.Enemy,
		components.Transform,
		components.Velocity,
		components.AIConfig,
		components.AIState,
		components.AISensory,
		components.Identity,
	)
	components.Transform.SetValue(e, components.TransformData{X: x, Y: y})
	components.AIConfig.SetValue(e, conf)
	components.AIState.SetValue(e, components.AIStateData{FSM: NewAIMachine(), Facing: geom.V(1, 0)})
	components.Identity.SetValue(e, components.IdentityData{UUID: uuid.New(), Kind: "enemy"})
	return e
}

func addPlayer(w donburi.World, x, y float64) *donburi.Entry {
	e := store.Add(w, tags.Player, components.Transform, components.Input, components.Movement, components.Detectable)
	components.Transform.SetValue(e, components.TransformData{X: x, Y: y})
	components.Detectable.SetValue(e, components.DetectableData{Labels: []string{tags.LabelPlayer}})
	return e
}

func run(w donburi.World, fns ...func(donburi.World)) {
	for _, fn := range fns {
		fn(w)
	}
}

func aiState(e *donburi.Entry) string {
	return components.AIState.Get(e).FSM.Current()
}
