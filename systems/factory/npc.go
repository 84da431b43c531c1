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

type NPCConfig struct {
	Base         `yaml:",inline"`
	ShapeConfig  `yaml:",inline"`
	Script       string  `yaml:"script" validate:"required"`
	SensorRadius float64 `yaml:"sensorRadius" validate:"gt=0"`
	Button       string  `yaml:"button,omitempty" validate:"omitempty,oneof=interact attack cancel"`
}

func DefaultNPCConfig() NPCConfig {
	return NPCConfig{
		ShapeConfig:  ShapeConfig{Shape: "aabb", W: 16, H: 16},
		SensorRadius: 24,
	}
}

// CreateNPC builds a static body with a talk sensor child that requests
// dialogue when the player presses the button while inside.
func CreateNPC(w donburi.World, c NPCConfig) (*donburi.Entry, error) {
	if err := check(TypeNPC, c); err != nil {
		return nil, err
	}
	shape, err := c.build()
	if err != nil {
		return fail(TypeNPC, err)
	}
	button, err := cfg.ParseButton(c.Button)
	if err != nil {
		return fail(TypeNPC, err)
	}

	npc := archetypes.NPC.Spawn(w)
	components.Identity.SetValue(npc, c.identity(TypeNPC))
	components.Transform.SetValue(npc, c.transform())
	components.Shape.SetValue(npc, shape)
	components.DialogueAction.SetValue(npc, components.DialogueActionData{ScriptID: c.Script})
	addCollider(w, npc, true)

	sensor := archetypes.Sensor.Spawn(w, components.Trigger, components.InputDetect)
	components.Shape.SetValue(sensor, geom.Circle(c.SensorRadius))
	components.DetectArea.SetValue(sensor, components.DetectAreaData{Targets: []string{tags.LabelPlayer}})
	components.InputDetect.SetValue(sensor, components.InputDetectData{Button: button})
	components.Trigger.SetValue(sensor, components.TriggerData{
		Rules:   []components.Rule{{Type: components.RuleOnPress, RequireInside: true}},
		Actions: []events.ActionKind{events.ActionDialogue},
	})
	if err := systems.Attach(w, npc, sensor, components.RoleSensor, components.LocalTransformData{}); err != nil {
		systems.Destroy(w, sensor.Entity())
		systems.Destroy(w, npc.Entity())
		return fail(TypeNPC, fmt.Errorf("attach sensor: %w", err))
	}
	return npc, nil
}

func SerializeNPC(e *donburi.Entry) NPCConfig {
	c := NPCConfig{
		Base:        baseOf(e),
		ShapeConfig: shapeConfigOf(*components.Shape.Get(e)),
		Script:      components.DialogueAction.Get(e).ScriptID,
	}
	if sensor, ok := systems.SensorOf(e.World, e); ok {
		c.SensorRadius = components.Shape.Get(sensor).Radius
		c.Button = components.InputDetect.Get(sensor).Button.String()
	}
	return c
}
