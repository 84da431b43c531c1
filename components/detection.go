package components

import (
	"github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/yohamta/donburi"
)

// DetectAreaData turns the entity's shape into a detector. Results is
// rebuilt every tick from Detectables whose labels intersect Targets and
// not Exclude.
type DetectAreaData struct {
	Targets []string
	Exclude []string
	Results []donburi.Entity
}

func (d *DetectAreaData) Has(e donburi.Entity) bool {
	for _, r := range d.Results {
		if r == e {
			return true
		}
	}
	return false
}

// DetectableData advertises labels detectors can match on.
type DetectableData struct {
	Labels []string
}

func (d *DetectableData) HasAny(labels []string) bool {
	for _, want := range labels {
		for _, l := range d.Labels {
			if l == want {
				return true
			}
		}
	}
	return false
}

// InputDetectData reports a button edge to onPress rules.
type InputDetectData struct {
	Button      config.ButtonID
	JustPressed bool
}

type RuleType uint8

const (
	RuleOnEnter RuleType = iota
	RuleOnExit
	RuleOnStay
	RuleOnPress
)

type Condition uint8

const (
	ConditionNone Condition = iota
	ConditionNotStunned
	ConditionTargetIsPlayer
)

type Rule struct {
	Type          RuleType
	RequireInside bool // onPress only
	Condition     Condition
}

// TriggerData evaluates rules against the entity's family DetectArea and
// InputDetect. WasInside is last evaluated tick's inside signal.
type TriggerData struct {
	Rules         []Rule
	Actions       []events.ActionKind
	Cooldown      int
	CooldownTimer int
	OneShot       bool
	Fired         bool
	Inactive      bool
	WasInside     bool
}

var DetectArea = donburi.NewComponentType[DetectAreaData]()
var Detectable = donburi.NewComponentType[DetectableData]()
var InputDetect = donburi.NewComponentType[InputDetectData]()
var Trigger = donburi.NewComponentType[TriggerData]()
