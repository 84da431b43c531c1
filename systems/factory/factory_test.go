package factory

import (
	"errors"
	"testing"

	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/shared/scenedata"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/systems"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func newLevel(t *testing.T) donburi.World {
	t.Helper()
	w := donburi.NewWorld()
	CreateLevel(w, scenedata.SceneConfig{Name: "test", Width: 320, Height: 200}, 1)
	return w
}

func record(typ string, c map[string]any) scenedata.EntityRecord {
	return scenedata.EntityRecord{Type: typ, Config: c}
}

func TestCreatePlayerUsesDefaults(t *testing.T) {
	w := newLevel(t)

	player, err := Create(w, record(TypePlayer, map[string]any{"x": 10, "y": 20, "speed": 3}))
	require.NoError(t, err)

	tr := components.Transform.Get(player)
	assert.Equal(t, 10.0, tr.X)
	assert.Equal(t, 20.0, tr.PrevY)
	assert.Equal(t, 3.0, components.Movement.Get(player).Speed)
	assert.Equal(t, geom.Circle(cfg.Player.Radius), *components.Shape.Get(player))
	assert.Equal(t, components.HealthData{Current: cfg.Player.Health, Max: cfg.Player.Health}, *components.Health.Get(player))
	assert.Equal(t, TypePlayer, components.Identity.Get(player).Kind)

	obj := components.Object.Get(player).Object
	require.NotNil(t, obj)
	assert.NotNil(t, obj.Space)
	e, ok := systems.EntityOf(obj)
	assert.True(t, ok)
	assert.Equal(t, player.Entity(), e)
}

func TestCreateEnemyAttachesBattleSensor(t *testing.T) {
	w := newLevel(t)

	enemy, err := Create(w, record(TypeEnemy, map[string]any{"x": 50, "y": 60, "encounter": "slimes"}))
	require.NoError(t, err)

	assert.Equal(t, cfg.StateWander, components.AIState.Get(enemy).FSM.Current())
	assert.Equal(t, "slimes", components.BattleAction.Get(enemy).EncounterID)

	sensor, ok := systems.SensorOf(w, enemy)
	require.True(t, ok)
	assert.Equal(t, []string{"player"}, components.DetectArea.Get(sensor).Targets)
	tr := components.Trigger.Get(sensor)
	assert.Equal(t, []components.Rule{{Type: components.RuleOnEnter, Condition: components.ConditionNotStunned}}, tr.Rules)
	assert.Equal(t, []events.ActionKind{events.ActionBattle}, tr.Actions)

	pos := components.Transform.Get(sensor).Pos()
	assert.Equal(t, geom.V(50, 60), pos)
}

func TestCreateEnemyTakesParkedResult(t *testing.T) {
	w := newLevel(t)
	id := uuid.New()

	assert.False(t, systems.InjectBattleResult(w, id, components.ResultFled))

	enemy, err := Create(w, record(TypeEnemy, map[string]any{"id": id.String()}))
	require.NoError(t, err)
	assert.Equal(t, id, components.Identity.Get(enemy).UUID)
	assert.Equal(t, components.ResultFled, components.AISensory.Get(enemy).PendingResult)
	assert.Empty(t, components.GetGlobal(w).PendingResults)
}

func TestStunnedEnemySurvivesSave(t *testing.T) {
	w := newLevel(t)
	enemy, err := Create(w, record(TypeEnemy, map[string]any{"x": 50, "y": 60, "stunDuration": 40}))
	require.NoError(t, err)
	id := components.Identity.Get(enemy).UUID

	require.True(t, systems.InjectBattleResult(w, id, components.ResultFled))
	systems.UpdateAI(w)
	st := components.AIState.Get(enemy)
	require.Equal(t, cfg.StateStunned, st.FSM.Current())
	st.Timer = 12
	st.Suspicion = 0.5
	require.True(t, systems.InjectBattleResult(w, id, components.ResultWin))

	r, ok := Serialize(enemy)
	require.True(t, ok)
	assert.Equal(t, cfg.StateStunned, r.Config["state"])
	assert.Equal(t, "win", r.Config["pendingResult"])

	again, err := Create(newLevel(t), r)
	require.NoError(t, err)
	restored := components.AIState.Get(again)
	assert.Equal(t, cfg.StateStunned, restored.FSM.Current())
	assert.Equal(t, 12, restored.Timer)
	assert.InDelta(t, 0.5, restored.Suspicion, 1e-9)
	assert.Equal(t, components.ResultWin, components.AISensory.Get(again).PendingResult)
}

func TestCreateNPCWiresPressRule(t *testing.T) {
	w := newLevel(t)

	npc, err := Create(w, record(TypeNPC, map[string]any{"x": 40, "y": 40, "script": "intro"}))
	require.NoError(t, err)
	assert.True(t, components.Collider.Get(npc).IsStatic)

	sensor, ok := systems.SensorOf(w, npc)
	require.True(t, ok)
	assert.Equal(t, cfg.ButtonInteract, components.InputDetect.Get(sensor).Button)
	assert.Equal(t, []components.Rule{{Type: components.RuleOnPress, RequireInside: true}}, components.Trigger.Get(sensor).Rules)
}

func TestCreateZone(t *testing.T) {
	w := newLevel(t)

	zone, err := Create(w, record(TypeZone, map[string]any{
		"w": 32, "h": 32,
		"targets": []any{"player"},
		"rules":   []any{map[string]any{"type": "onPress"}, map[string]any{"type": "onExit", "condition": "targetIsPlayer"}},
		"actions": []any{"DIALOGUE"},
		"script":  "sign",
	}))
	require.NoError(t, err)

	tr := components.Trigger.Get(zone)
	assert.Equal(t, []components.Rule{
		{Type: components.RuleOnPress},
		{Type: components.RuleOnExit, Condition: components.ConditionTargetIsPlayer},
	}, tr.Rules)
	assert.True(t, zone.HasComponent(components.InputDetect))
	assert.True(t, zone.HasComponent(components.DialogueAction))
	assert.False(t, zone.HasComponent(components.TeleportAction))
}

func TestCreateRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		r    scenedata.EntityRecord
	}{
		{"unknown type", record("dragon", nil)},
		{"portal without map", record(TypePortal, map[string]any{"x": 1})},
		{"box without size", record(TypeWall, map[string]any{"w": 0})},
		{"bad shape", record(TypeWall, map[string]any{"shape": "star"})},
		{"bad vision type", record(TypeEnemy, map[string]any{"visionType": "square"})},
		{"bad action", record(TypeZone, map[string]any{"targets": []any{"player"}, "actions": []any{"EXPLODE"}})},
		{"zone without targets", record(TypeZone, nil)},
		{"spawn without name", record(TypeSpawn, map[string]any{"x": 1})},
		{"bad button", record(TypeNPC, map[string]any{"script": "a", "button": "jump"})},
		{"bad id", record(TypePlayer, map[string]any{"id": "not-a-uuid"})},
		{"hp above health", record(TypePlayer, map[string]any{"health": 10, "hp": 11})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newLevel(t)
			e, err := Create(w, tt.r)
			assert.Error(t, err)
			assert.Nil(t, e)
			assert.Zero(t, store.Count(w, components.Transform))
		})
	}
}

func TestCreateUnknownTypeIsSentinel(t *testing.T) {
	_, err := Create(newLevel(t), record("dragon", nil))
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	w := newLevel(t)
	records := []scenedata.EntityRecord{
		record(TypePlayer, map[string]any{"x": 10, "y": 10}),
		record(TypeEnemy, map[string]any{"x": 100, "y": 80, "visionType": "cone", "lineOfSight": true}),
		record(TypeWall, map[string]any{"x": 160, "y": 190, "w": 320, "h": 20}),
		record(TypeWall, map[string]any{"x": 60, "y": 60, "shape": "obb", "w": 10, "h": 40, "rotation": 0.5}),
		record(TypePortal, map[string]any{"x": 300, "y": 40, "map": "cave", "entry": "west"}),
		record(TypeNPC, map[string]any{"x": 200, "y": 50, "script": "intro"}),
		record(TypeHazard, map[string]any{"x": 20, "y": 150, "damage": 5, "lifetime": 30}),
		record(TypeZone, map[string]any{"targets": []any{"player"}, "rules": []any{map[string]any{"type": "onStay"}}}),
		record(TypeSpawn, map[string]any{"name": "west", "x": 300, "y": 60}),
	}
	for _, r := range records {
		_, err := Create(w, r)
		require.NoError(t, err, r.Type)
	}

	saved := SaveScene(w)
	require.NoError(t, saved.Validate())
	assert.Len(t, saved.Entities, len(records))

	w2 := donburi.NewWorld()
	assert.Equal(t, len(records), LoadScene(w2, saved, 1))
	assert.ElementsMatch(t, saved.Entities, SaveScene(w2).Entities)
	assert.Equal(t, "test", components.GetGlobal(w2).SceneName)
}

func TestSpentOneShotSurvivesSave(t *testing.T) {
	w := newLevel(t)
	zone, err := Create(w, record(TypeZone, map[string]any{
		"targets": []any{"player"},
		"rules":   []any{map[string]any{"type": "onEnter"}},
		"oneShot": true,
	}))
	require.NoError(t, err)
	components.Trigger.Get(zone).Fired = true

	r, ok := Serialize(zone)
	require.True(t, ok)
	assert.Equal(t, true, r.Config["spent"])

	again, err := Create(newLevel(t), r)
	require.NoError(t, err)
	assert.True(t, components.Trigger.Get(again).Fired)
}

func TestFindSpawn(t *testing.T) {
	w := newLevel(t)
	_, err := Create(w, record(TypeSpawn, map[string]any{"name": "west", "x": 5, "y": 6}))
	require.NoError(t, err)

	e, ok := FindSpawn(w, "west")
	require.True(t, ok)
	assert.Equal(t, 5.0, components.Transform.Get(e).X)

	_, ok = FindSpawn(w, "east")
	assert.False(t, ok)
}
