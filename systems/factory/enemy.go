package factory

import (
	"fmt"

	"github.com/dream-sky2020/divinebloom/archetypes"
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/systems"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/yohamta/donburi"
)

type EnemyConfig struct {
	Base               `yaml:",inline"`
	Radius             float64 `yaml:"radius" validate:"gt=0"`
	SensorRadius       float64 `yaml:"sensorRadius" validate:"gt=0"`
	Health             int     `yaml:"health" validate:"gt=0"`
	HP                 int     `yaml:"hp,omitempty" validate:"gte=0,ltefield=Health"`
	Encounter          string  `yaml:"encounter,omitempty"`
	VisionRadius       float64 `yaml:"visionRadius" validate:"gt=0"`
	VisionAngle        float64 `yaml:"visionAngle" validate:"gt=0,lte=360"`
	VisionType         string  `yaml:"visionType" validate:"oneof=circle cone hybrid"`
	ProximityRadius    float64 `yaml:"proximityRadius" validate:"gte=0"`
	RequireLineOfSight bool    `yaml:"lineOfSight,omitempty"`
	Speed              float64 `yaml:"speed" validate:"gte=0"`
	DetectedState      string  `yaml:"detectedState" validate:"oneof=chase flee"`
	SuspicionTime      float64 `yaml:"suspicionTime" validate:"gt=0"`
	ExitMultiplier     float64 `yaml:"exitMultiplier" validate:"gte=1"`
	StunDuration       int     `yaml:"stunDuration" validate:"gte=0"`
	WanderInterval     int     `yaml:"wanderInterval" validate:"gt=0"`

	// Live AI state, written by saves.
	State         string  `yaml:"state,omitempty" validate:"omitempty,oneof=wander chase flee stunned"`
	Timer         int     `yaml:"timer,omitempty" validate:"gte=0"`
	Suspicion     float64 `yaml:"suspicion,omitempty" validate:"gte=0,lte=1"`
	PendingResult string  `yaml:"pendingResult,omitempty" validate:"omitempty,oneof=win fled"`
}

func DefaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		Radius:          cfg.Enemy.Radius,
		SensorRadius:    cfg.Enemy.SensorRadius,
		Health:          cfg.Enemy.Health,
		VisionRadius:    cfg.Enemy.VisionRadius,
		VisionAngle:     cfg.Enemy.VisionAngle,
		VisionType:      cfg.Enemy.VisionType,
		ProximityRadius: cfg.Enemy.ProximityRadius,
		Speed:           cfg.Enemy.Speed,
		DetectedState:   cfg.Enemy.DetectedState,
		SuspicionTime:   cfg.Enemy.SuspicionTime,
		ExitMultiplier:  cfg.Perception.DefaultExitMultiplier,
		StunDuration:    cfg.Enemy.StunDuration,
		WanderInterval:  cfg.Enemy.WanderInterval,
	}
}

var visionTypes = map[string]components.VisionType{
	"circle": components.VisionCircle,
	"cone":   components.VisionCone,
	"hybrid": components.VisionHybrid,
}

var battleResults = map[string]components.BattleResult{
	"win":  components.ResultWin,
	"fled": components.ResultFled,
}

// CreateEnemy builds an AI body with a battle sensor child. A battle result
// parked for the enemy's id is applied on creation and takes precedence over
// one carried in the record.
func CreateEnemy(w donburi.World, c EnemyConfig) (*donburi.Entry, error) {
	if err := check(TypeEnemy, c); err != nil {
		return nil, err
	}

	enemy := archetypes.Enemy.Spawn(w)
	id := c.identity(TypeEnemy)
	components.Identity.SetValue(enemy, id)
	components.Transform.SetValue(enemy, c.transform())
	components.Shape.SetValue(enemy, geom.Circle(c.Radius))
	components.Detectable.SetValue(enemy, components.DetectableData{
		Labels: []string{tags.LabelEnemy, tags.LabelDamageable},
	})
	components.BattleAction.SetValue(enemy, components.BattleActionData{EncounterID: c.Encounter})

	hp := c.HP
	if hp == 0 {
		hp = c.Health
	}
	components.Health.SetValue(enemy, components.HealthData{Current: hp, Max: c.Health})

	components.AIConfig.SetValue(enemy, components.AIConfigData{
		VisionRadius:       c.VisionRadius,
		VisionAngle:        c.VisionAngle,
		VisionType:         visionTypes[c.VisionType],
		ProximityRadius:    c.ProximityRadius,
		RequireLineOfSight: c.RequireLineOfSight,
		Speed:              c.Speed,
		DetectedState:      c.DetectedState,
		SuspicionTime:      c.SuspicionTime,
		ExitMultiplier:     c.ExitMultiplier,
		StunDuration:       c.StunDuration,
		WanderInterval:     c.WanderInterval,
	})
	components.AIState.SetValue(enemy, components.AIStateData{
		FSM:    systems.NewAIMachine(),
		Facing: geom.V(1, 0),
	})
	pending := systems.TakePendingResult(w, id.UUID)
	if pending == components.ResultNone {
		pending = battleResults[c.PendingResult]
	}
	components.AISensory.SetValue(enemy, components.AISensoryData{PendingResult: pending})
	if c.State != "" {
		systems.RestoreAIState(enemy, c.State, c.Timer, c.Suspicion)
	}
	addCollider(w, enemy, false)

	sensor := archetypes.Sensor.Spawn(w, components.Trigger)
	components.Shape.SetValue(sensor, geom.Circle(c.SensorRadius))
	components.DetectArea.SetValue(sensor, components.DetectAreaData{Targets: []string{tags.LabelPlayer}})
	components.Trigger.SetValue(sensor, components.TriggerData{
		Rules:   []components.Rule{{Type: components.RuleOnEnter, Condition: components.ConditionNotStunned}},
		Actions: []events.ActionKind{events.ActionBattle},
	})
	if err := systems.Attach(w, enemy, sensor, components.RoleSensor, components.LocalTransformData{}); err != nil {
		systems.Destroy(w, sensor.Entity())
		systems.Destroy(w, enemy.Entity())
		return fail(TypeEnemy, fmt.Errorf("attach sensor: %w", err))
	}
	return enemy, nil
}

func SerializeEnemy(e *donburi.Entry) EnemyConfig {
	h := components.Health.Get(e)
	ai := components.AIConfig.Get(e)
	st := components.AIState.Get(e)
	c := EnemyConfig{
		Base:               baseOf(e),
		Radius:             components.Shape.Get(e).Radius,
		Health:             h.Max,
		HP:                 h.Current,
		Encounter:          components.BattleAction.Get(e).EncounterID,
		VisionRadius:       ai.VisionRadius,
		VisionAngle:        ai.VisionAngle,
		ProximityRadius:    ai.ProximityRadius,
		RequireLineOfSight: ai.RequireLineOfSight,
		Speed:              ai.Speed,
		DetectedState:      ai.DetectedState,
		SuspicionTime:      ai.SuspicionTime,
		ExitMultiplier:     ai.ExitMultiplier,
		StunDuration:       ai.StunDuration,
		WanderInterval:     ai.WanderInterval,
		Timer:              max(st.Timer, 0),
		Suspicion:          st.Suspicion,
	}
	if st.FSM != nil {
		c.State = st.FSM.Current()
	}
	for name, v := range visionTypes {
		if v == ai.VisionType {
			c.VisionType = name
		}
	}
	pending := components.AISensory.Get(e).PendingResult
	for name, v := range battleResults {
		if v == pending {
			c.PendingResult = name
		}
	}
	if sensor, ok := systems.SensorOf(e.World, e); ok {
		c.SensorRadius = components.Shape.Get(sensor).Radius
	}
	return c
}
