package factory

import (
	"github.com/dream-sky2020/divinebloom/archetypes"
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/yohamta/donburi"
)

// ZoneConfig is a fully authored trigger area. Action configs are optional
// and attached only when set.
type ZoneConfig struct {
	Base          `yaml:",inline"`
	ShapeConfig   `yaml:",inline"`
	TriggerConfig `yaml:",inline"`
	Encounter     string `yaml:"encounter,omitempty"`
	Script        string `yaml:"script,omitempty"`
	Map           string `yaml:"map,omitempty"`
	Entry         string `yaml:"entry,omitempty"`
	Button        string `yaml:"button,omitempty" validate:"omitempty,oneof=interact attack cancel"`
}

func DefaultZoneConfig() ZoneConfig {
	return ZoneConfig{ShapeConfig: ShapeConfig{Shape: "aabb", W: 16, H: 16}}
}

func CreateZone(w donburi.World, c ZoneConfig) (*donburi.Entry, error) {
	if err := check(TypeZone, c); err != nil {
		return nil, err
	}
	shape, err := c.ShapeConfig.build()
	if err != nil {
		return fail(TypeZone, err)
	}
	area, tr, err := c.TriggerConfig.build()
	if err != nil {
		return fail(TypeZone, err)
	}
	if tr.Cooldown == 0 {
		tr.Cooldown = cfg.Trigger.DefaultCooldown
	}
	button, err := cfg.ParseButton(c.Button)
	if err != nil {
		return fail(TypeZone, err)
	}

	zone := archetypes.Zone.Spawn(w)
	components.Identity.SetValue(zone, c.identity(TypeZone))
	components.Transform.SetValue(zone, c.transform())
	components.Shape.SetValue(zone, shape)
	components.DetectArea.SetValue(zone, area)
	components.Trigger.SetValue(zone, tr)

	for _, r := range tr.Rules {
		if r.Type == components.RuleOnPress {
			store.AddComponent(zone, components.InputDetect, components.InputDetectData{Button: button})
			break
		}
	}
	if c.Encounter != "" {
		store.AddComponent(zone, components.BattleAction, components.BattleActionData{EncounterID: c.Encounter})
	}
	if c.Script != "" {
		store.AddComponent(zone, components.DialogueAction, components.DialogueActionData{ScriptID: c.Script})
	}
	if c.Map != "" {
		store.AddComponent(zone, components.TeleportAction, components.TeleportActionData{MapID: c.Map, EntryID: c.Entry})
	}
	return zone, nil
}

func SerializeZone(e *donburi.Entry) ZoneConfig {
	c := ZoneConfig{
		Base:          baseOf(e),
		ShapeConfig:   shapeConfigOf(*components.Shape.Get(e)),
		TriggerConfig: triggerConfigOf(e),
	}
	if e.HasComponent(components.InputDetect) {
		c.Button = components.InputDetect.Get(e).Button.String()
	}
	if e.HasComponent(components.BattleAction) {
		c.Encounter = components.BattleAction.Get(e).EncounterID
	}
	if e.HasComponent(components.DialogueAction) {
		c.Script = components.DialogueAction.Get(e).ScriptID
	}
	if e.HasComponent(components.TeleportAction) {
		tp := components.TeleportAction.Get(e)
		c.Map, c.Entry = tp.MapID, tp.EntryID
	}
	return c
}
