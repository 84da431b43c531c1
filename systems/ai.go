package systems

import (
	"context"
	"errors"

	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

var aiEvents = fsm.Events{
	{Name: cfg.EventDetectChase, Src: []string{cfg.StateWander}, Dst: cfg.StateChase},
	{Name: cfg.EventDetectFlee, Src: []string{cfg.StateWander}, Dst: cfg.StateFlee},
	{Name: cfg.EventLose, Src: []string{cfg.StateChase, cfg.StateFlee}, Dst: cfg.StateWander},
	{Name: cfg.EventStun, Src: []string{cfg.StateWander, cfg.StateChase, cfg.StateFlee, cfg.StateStunned}, Dst: cfg.StateStunned},
	{Name: cfg.EventRecover, Src: []string{cfg.StateStunned}, Dst: cfg.StateWander},
}

// NewAIMachine builds the decision machine, starting in wander. Transitions
// must pass the entity's entry as the first event argument.
func NewAIMachine() *fsm.FSM {
	return fsm.NewFSM(cfg.StateWander, aiEvents, fsm.Callbacks{
		"enter_state": func(_ context.Context, ev *fsm.Event) {
			if len(ev.Args) == 0 {
				return
			}
			if e, ok := ev.Args[0].(*donburi.Entry); ok {
				enterAIState(e, ev.Dst)
			}
		},
	})
}

// UpdateAI runs the decision step: pending battle results first, then the
// current state's update, which may request one transition.
func UpdateAI(w donburi.World) {
	g := components.GetGlobal(w)
	var defeated []donburi.Entity

	store.Each(w, func(e *donburi.Entry) {
		st := components.AIState.Get(e)
		sense := components.AISensory.Get(e)
		if st.FSM == nil {
			logger.For("ai").WithFields(logrus.Fields{"entity": e.Entity()}).Warn("AI without state machine, skipping")
			return
		}

		switch sense.PendingResult {
		case components.ResultWin:
			sense.PendingResult = components.ResultNone
			defeated = append(defeated, e.Entity())
			return
		case components.ResultFled:
			sense.PendingResult = components.ResultNone
			transitionAI(e, cfg.EventStun)
			return
		}

		c := aiContext{
			entry: e,
			conf:  components.AIConfig.Get(e),
			st:    st,
			sense: sense,
		}
		if g != nil {
			c.rng = g.Rand
		}

		var ev string
		switch st.FSM.Current() {
		case cfg.StateWander:
			ev = updateWander(c)
		case cfg.StateChase:
			ev = updateChase(c)
		case cfg.StateFlee:
			ev = updateFlee(c)
		case cfg.StateStunned:
			ev = updateStunned(c)
		}
		if ev != "" {
			transitionAI(e, ev)
		}
	}, components.AIConfig, components.AIState, components.AISensory)

	DestroyAll(w, defeated)
}

// transitionAI fires ev on the entity's machine. Stunning an already stunned
// entity restarts the stun.
func transitionAI(e *donburi.Entry, ev string) {
	st := components.AIState.Get(e)
	from := st.FSM.Current()
	err := st.FSM.Event(context.Background(), ev, e)

	var noTransition fsm.NoTransitionError
	switch {
	case err == nil:
	case errors.As(err, &noTransition):
		enterAIState(e, st.FSM.Current())
	default:
		logger.For("ai").WithFields(logrus.Fields{
			"entity": e.Entity(),
			"state":  from,
			"event":  ev,
		}).WithError(err).Warn("Rejected AI transition")
	}
}

// RestoreAIState puts a freshly built AI back into a saved state. The state's
// entry effects run first, then the saved countdown and suspicion replace
// theirs.
func RestoreAIState(e *donburi.Entry, state string, timer int, suspicion float64) {
	st := components.AIState.Get(e)
	st.FSM.SetState(state)
	enterAIState(e, state)
	st.Timer = timer
	st.Suspicion = suspicion
}

// InjectBattleResult delivers a battle outcome to the enemy with the given
// id. When no such enemy is live the result is parked on the scene and
// applied when an enemy with that id is created. It reports whether a live
// enemy was marked.
func InjectBattleResult(w donburi.World, id uuid.UUID, result components.BattleResult) bool {
	marked := false
	store.Each(w, func(e *donburi.Entry) {
		if marked || components.Identity.Get(e).UUID != id {
			return
		}
		components.AISensory.Get(e).PendingResult = result
		marked = true
	}, components.Identity, components.AISensory)
	if marked {
		return true
	}

	if g := components.GetGlobal(w); g != nil {
		if g.PendingResults == nil {
			g.PendingResults = make(map[uuid.UUID]components.BattleResult)
		}
		g.PendingResults[id] = result
	}
	return false
}

// TakePendingResult removes and returns a parked result for id.
func TakePendingResult(w donburi.World, id uuid.UUID) components.BattleResult {
	g := components.GetGlobal(w)
	if g == nil {
		return components.ResultNone
	}
	r, ok := g.PendingResults[id]
	if !ok {
		return components.ResultNone
	}
	delete(g.PendingResults, id)
	return r
}
