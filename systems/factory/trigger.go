package factory

import (
	"fmt"

	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/yohamta/donburi"
)

type RuleConfig struct {
	Type          string `yaml:"type" validate:"oneof=onEnter onExit onStay onPress"`
	RequireInside bool   `yaml:"requireInside,omitempty"`
	Condition     string `yaml:"condition,omitempty" validate:"omitempty,oneof=none notStunned targetIsPlayer"`
}

// TriggerConfig is the detector half shared by portals and zones.
type TriggerConfig struct {
	Targets  []string     `yaml:"targets" validate:"required,min=1"`
	Exclude  []string     `yaml:"exclude,omitempty"`
	Rules    []RuleConfig `yaml:"rules,omitempty" validate:"dive"`
	Actions  []string     `yaml:"actions,omitempty" validate:"dive,oneof=BATTLE DIALOGUE TELEPORT"`
	Cooldown int          `yaml:"cooldown,omitempty" validate:"gte=0"`
	OneShot  bool         `yaml:"oneShot,omitempty"`
	Spent    bool         `yaml:"spent,omitempty"` // a one-shot that already fired
}

var (
	ruleTypes = map[string]components.RuleType{
		"onEnter": components.RuleOnEnter,
		"onExit":  components.RuleOnExit,
		"onStay":  components.RuleOnStay,
		"onPress": components.RuleOnPress,
	}
	conditions = map[string]components.Condition{
		"":               components.ConditionNone,
		"none":           components.ConditionNone,
		"notStunned":     components.ConditionNotStunned,
		"targetIsPlayer": components.ConditionTargetIsPlayer,
	}
)

func (c TriggerConfig) build() (components.DetectAreaData, components.TriggerData, error) {
	area := components.DetectAreaData{
		Targets: append([]string(nil), c.Targets...),
		Exclude: append([]string(nil), c.Exclude...),
	}
	tr := components.TriggerData{Cooldown: c.Cooldown, OneShot: c.OneShot, Fired: c.OneShot && c.Spent}
	for _, r := range c.Rules {
		tr.Rules = append(tr.Rules, components.Rule{
			Type:          ruleTypes[r.Type],
			RequireInside: r.RequireInside,
			Condition:     conditions[r.Condition],
		})
	}
	for _, a := range c.Actions {
		kind, err := events.ParseActionKind(a)
		if err != nil {
			return area, tr, fmt.Errorf("action %q: %w", a, err)
		}
		tr.Actions = append(tr.Actions, kind)
	}
	return area, tr, nil
}

func triggerConfigOf(e *donburi.Entry) TriggerConfig {
	area := components.DetectArea.Get(e)
	tr := components.Trigger.Get(e)
	c := TriggerConfig{
		Targets:  append([]string(nil), area.Targets...),
		Exclude:  append([]string(nil), area.Exclude...),
		Cooldown: tr.Cooldown,
		OneShot:  tr.OneShot,
		Spent:    tr.OneShot && tr.Fired,
	}
	for _, r := range tr.Rules {
		rc := RuleConfig{RequireInside: r.RequireInside}
		for name, t := range ruleTypes {
			if t == r.Type {
				rc.Type = name
			}
		}
		for name, cond := range conditions {
			if cond == r.Condition && name != "" && name != "none" {
				rc.Condition = name
			}
		}
		c.Rules = append(c.Rules, rc)
	}
	for _, a := range tr.Actions {
		c.Actions = append(c.Actions, a.String())
	}
	return c
}
