package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// ActionHolders maps each action kind to the component carrying its config.
var ActionHolders = [events.ActionKindCount]donburi.IComponentType{
	events.ActionBattle:   components.BattleAction,
	events.ActionDialogue: components.DialogueAction,
	events.ActionTeleport: components.TeleportAction,
}

// UpdateTriggers evaluates every trigger against this tick's detection and
// input results and queues the requested actions.
func UpdateTriggers(w donburi.World) {
	g := components.GetGlobal(w)
	if g == nil {
		return
	}
	store.Each(w, func(e *donburi.Entry) {
		evaluateTrigger(w, g, e)
	}, components.Trigger)
}

func evaluateTrigger(w donburi.World, g *components.GlobalData, e *donburi.Entry) {
	tr := components.Trigger.Get(e)
	if tr.Inactive || tr.Fired {
		return
	}

	_, area := FamilyLookup(w, e, components.DetectArea)
	var results []donburi.Entity
	if area != nil {
		results = area.Results
	}
	inside := len(results) > 0

	// Cooling down: keep the edge state current, evaluate nothing.
	if tr.CooldownTimer > 0 {
		tr.CooldownTimer--
		tr.WasInside = inside
		return
	}

	pressed := false
	if _, in := FamilyLookup(w, e, components.InputDetect); in != nil {
		pressed = in.JustPressed
	}

	for _, rule := range tr.Rules {
		if !ruleMatches(rule, tr.WasInside, inside, pressed) {
			continue
		}
		if !conditionHolds(w, e, rule.Condition, results) {
			continue
		}
		fireTrigger(w, g, e, tr, results)
		break
	}
	tr.WasInside = inside
}

func ruleMatches(rule components.Rule, wasInside, inside, pressed bool) bool {
	switch rule.Type {
	case components.RuleOnEnter:
		return !wasInside && inside
	case components.RuleOnExit:
		return wasInside && !inside
	case components.RuleOnStay:
		return inside
	case components.RuleOnPress:
		return pressed && (!rule.RequireInside || inside)
	}
	return false
}

func conditionHolds(w donburi.World, e *donburi.Entry, c components.Condition, results []donburi.Entity) bool {
	switch c {
	case components.ConditionNotStunned:
		holder, ok := AncestorWith(w, e, components.AIState)
		if !ok {
			return true
		}
		machine := components.AIState.Get(holder).FSM
		return machine == nil || machine.Current() != cfg.StateStunned
	case components.ConditionTargetIsPlayer:
		for _, r := range results {
			if target, ok := store.Entry(w, r); ok && target.HasComponent(tags.Player) {
				return true
			}
		}
		return false
	}
	return true
}

func fireTrigger(w donburi.World, g *components.GlobalData, e *donburi.Entry, tr *components.TriggerData, results []donburi.Entity) {
	targets := results
	if len(targets) == 0 {
		targets = []donburi.Entity{donburi.Null}
	}

	for _, kind := range tr.Actions {
		if kind >= events.ActionKindCount {
			continue
		}
		holder, ok := AncestorWith(w, e, ActionHolders[kind])
		if !ok {
			logger.For("trigger").WithFields(logrus.Fields{
				"entity": e.Entity(),
				"action": kind.String(),
			}).Warn("No action config holder, skipping action")
			continue
		}
		for _, t := range targets {
			g.Actions.Push(events.ActionRequest{Source: holder.Entity(), Kind: kind, Target: t})
		}
	}

	tr.CooldownTimer = tr.Cooldown
	if tr.OneShot {
		tr.Fired = true
	}
}
