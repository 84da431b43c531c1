package systems

import (
	"testing"

	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func rules(types ...components.RuleType) []components.Rule {
	out := make([]components.Rule, len(types))
	for i, typ := range types {
		out[i] = components.Rule{Type: typ}
	}
	return out
}

func dialogueTrigger(rs ...components.RuleType) components.TriggerData {
	return components.TriggerData{Rules: rules(rs...), Actions: []events.ActionKind{events.ActionDialogue}}
}

// step runs one detection tick and returns the actions it queued.
func step(w donburi.World) []events.ActionRequest {
	run(w, UpdateInputDetect, UpdateDetection, UpdateTriggers)
	return global(w).Actions.Drain()
}

func TestDetectionMatchesLabels(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 100, 100, geom.Box(40, 40), "player")
	components.DetectArea.Get(area).Exclude = []string{"ghost"}

	player := addDetectable(w, 100, 100, "player")
	addDetectable(w, 100, 100, "enemy")
	addDetectable(w, 105, 100, "player", "ghost")
	addDetectable(w, 300, 300, "player")

	UpdateDetection(w)

	assert.Equal(t, []donburi.Entity{player.Entity()}, components.DetectArea.Get(area).Results)
}

func TestDetectionSkipsOwner(t *testing.T) {
	w := newWorld(t)
	enemy := addDetectable(w, 100, 100, "enemy")
	sensor := addArea(w, 0, 0, geom.Circle(20), "enemy")
	require.NoError(t, Attach(w, enemy, sensor, components.RoleSensor, components.LocalTransformData{}))
	other := addDetectable(w, 110, 100, "enemy")

	UpdateDetection(w)

	assert.Equal(t, []donburi.Entity{other.Entity()}, components.DetectArea.Get(sensor).Results)
}

func TestDetectionPatchesMissingTargets(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 100, 100, geom.Box(40, 40))
	addDetectable(w, 100, 100, "player")

	UpdateDetection(w)

	d := components.DetectArea.Get(area)
	assert.NotNil(t, d.Targets)
	assert.Empty(t, d.Results)
}

// A 40x40 area with point B moving out, in, in, out, in.
func TestBoxEnterExitSequence(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 0, 0, geom.Box(40, 40), "player")
	addTrigger(area, dialogueTrigger(components.RuleOnEnter))
	exits := addArea(w, 0, 0, geom.Box(40, 40), "player")
	addTrigger(exits, dialogueTrigger(components.RuleOnExit))
	b := addDetectable(w, 100, 0, "player")

	sources := func(rs []events.ActionRequest) (enter, exit int) {
		for _, r := range rs {
			switch r.Source {
			case area.Entity():
				enter++
			case exits.Entity():
				exit++
			}
		}
		return enter, exit
	}

	positions := []float64{100, 0, 10, 100, 19}
	want := [][2]int{{0, 0}, {1, 0}, {0, 0}, {0, 1}, {1, 0}}
	for i, x := range positions {
		moveTo(b, x, 0)
		enter, exit := sources(step(w))
		assert.Equal(t, want[i], [2]int{enter, exit}, "tick %d at x=%v", i, x)
	}
}

func TestOnEnterFiresOnceOverLongOverlap(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 0, 0, geom.Circle(10), "player")
	addTrigger(area, dialogueTrigger(components.RuleOnEnter))
	addDetectable(w, 0, 0, "player")

	fired := 0
	for i := 0; i < 30; i++ {
		fired += len(step(w))
	}
	assert.Equal(t, 1, fired)
}

func TestOnStayFiresEveryTick(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 0, 0, geom.Circle(10), "player")
	addTrigger(area, dialogueTrigger(components.RuleOnStay))
	target := addDetectable(w, 0, 0, "player")

	for i := 0; i < 12; i++ {
		rs := step(w)
		require.Len(t, rs, 1)
		assert.Equal(t, target.Entity(), rs[0].Target)
		assert.Equal(t, area.Entity(), rs[0].Source)
		assert.Equal(t, events.ActionDialogue, rs[0].Kind)
	}
}

func TestCooldownAndOneShot(t *testing.T) {
	w := newWorld(t)
	cooled := addArea(w, 0, 0, geom.Circle(10), "player")
	tr := dialogueTrigger(components.RuleOnStay)
	tr.Cooldown = 3
	addTrigger(cooled, tr)

	once := addArea(w, 0, 0, geom.Circle(10), "player")
	tr = dialogueTrigger(components.RuleOnStay)
	tr.OneShot = true
	addTrigger(once, tr)

	addDetectable(w, 0, 0, "player")

	counts := map[donburi.Entity]int{}
	for i := 0; i < 8; i++ {
		for _, r := range step(w) {
			counts[r.Source]++
		}
	}
	assert.Equal(t, 2, counts[cooled.Entity()])
	assert.Equal(t, 1, counts[once.Entity()])
	assert.True(t, components.Trigger.Get(once).Fired)
}

func TestTriggerRequestsOnePerResult(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 0, 0, geom.Circle(10), "player")
	addTrigger(area, dialogueTrigger(components.RuleOnEnter))
	a := addDetectable(w, 1, 0, "player")
	b := addDetectable(w, -1, 0, "player")

	rs := step(w)
	require.Len(t, rs, 2)
	assert.ElementsMatch(t, []donburi.Entity{a.Entity(), b.Entity()}, []donburi.Entity{rs[0].Target, rs[1].Target})
}

func TestPressRules(t *testing.T) {
	w := newWorld(t)
	player := addPlayer(w, 100, 0)

	anywhere := store.Add(w, components.Transform, components.InputDetect)
	components.InputDetect.SetValue(anywhere, components.InputDetectData{Button: cfg.ButtonInteract})
	addTrigger(anywhere, dialogueTrigger(components.RuleOnPress))

	inside := addArea(w, 0, 0, geom.Circle(10), "player")
	store.AddComponent(inside, components.InputDetect, components.InputDetectData{Button: cfg.ButtonInteract})
	addTrigger(inside, components.TriggerData{
		Rules:   []components.Rule{{Type: components.RuleOnPress, RequireInside: true}},
		Actions: []events.ActionKind{events.ActionDialogue},
	})

	press := func(down bool) {
		var s components.InputSample
		s.Buttons[cfg.ButtonInteract] = down
		ApplyInput(w, s)
	}

	// Outside: only the unconstrained rule fires, with no target.
	press(true)
	rs := step(w)
	require.Len(t, rs, 1)
	assert.Equal(t, anywhere.Entity(), rs[0].Source)
	assert.Equal(t, donburi.Null, rs[0].Target)

	// Held is not pressed.
	moveTo(player, 0, 0)
	press(true)
	assert.Empty(t, step(w))

	press(false)
	assert.Empty(t, step(w))
	press(true)
	rs = step(w)
	assert.Len(t, rs, 2)
}

func TestNotStunnedCondition(t *testing.T) {
	w := newWorld(t)
	enemy := addAI(w, 0, 0, testAIConfig())
	store.AddComponent(enemy, components.BattleAction, components.BattleActionData{EncounterID: "slimes"})
	sensor := addArea(w, 0, 0, geom.Circle(10), "player")
	store.AddComponent(sensor, components.Trigger, components.TriggerData{
		Rules:   []components.Rule{{Type: components.RuleOnStay, Condition: components.ConditionNotStunned}},
		Actions: []events.ActionKind{events.ActionBattle},
	})
	require.NoError(t, Attach(w, enemy, sensor, components.RoleSensor, components.LocalTransformData{}))
	addDetectable(w, 0, 0, "player")

	rs := step(w)
	require.Len(t, rs, 1)
	assert.Equal(t, enemy.Entity(), rs[0].Source, "config is read from the holder ancestor")

	components.AIState.Get(enemy).FSM.SetState(cfg.StateStunned)
	assert.Empty(t, step(w))
}

func TestTargetIsPlayerCondition(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 0, 0, geom.Circle(10), "player")
	addTrigger(area, components.TriggerData{
		Rules:   []components.Rule{{Type: components.RuleOnStay, Condition: components.ConditionTargetIsPlayer}},
		Actions: []events.ActionKind{events.ActionDialogue},
	})
	decoy := addDetectable(w, 0, 0, "player")

	assert.Empty(t, step(w))

	decoy.AddComponent(tags.Player)
	assert.Len(t, step(w), 1)
}

func TestMissingHolderSkipsAction(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 0, 0, geom.Circle(10), "player")
	store.AddComponent(area, components.Trigger, components.TriggerData{
		Rules:   rules(components.RuleOnStay),
		Actions: []events.ActionKind{events.ActionTeleport, events.ActionDialogue},
	})
	addDetectable(w, 0, 0, "player")

	assert.Empty(t, step(w))

	store.AddComponent(area, components.DialogueAction, components.DialogueActionData{ScriptID: "x"})
	rs := step(w)
	require.Len(t, rs, 1)
	assert.Equal(t, events.ActionDialogue, rs[0].Kind)
}

func TestInactiveTriggerIsIgnored(t *testing.T) {
	w := newWorld(t)
	area := addArea(w, 0, 0, geom.Circle(10), "player")
	tr := dialogueTrigger(components.RuleOnStay)
	tr.Inactive = true
	addTrigger(area, tr)
	addDetectable(w, 0, 0, "player")

	assert.Empty(t, step(w))
}
