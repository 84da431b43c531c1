package systems

import (
	"math"
	"math/rand"

	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/yohamta/donburi"
)

type aiContext struct {
	entry *donburi.Entry
	conf  *components.AIConfigData
	st    *components.AIStateData
	sense *components.AISensoryData
	rng   *rand.Rand
}

func enterAIState(e *donburi.Entry, state string) {
	st := components.AIState.Get(e)
	switch state {
	case cfg.StateWander:
		st.Timer = 0
		st.Suspicion = 0
		st.Tint = 0
	case cfg.StateChase, cfg.StateFlee:
		st.Tint = 1
	case cfg.StateStunned:
		st.Timer = components.AIConfig.Get(e).StunDuration
		st.MoveDir = geom.Vec{}
	}
}

func updateWander(c aiContext) string {
	if c.st.Suspicion >= 1.0 {
		if c.conf.DetectedState == cfg.StateFlee {
			return cfg.EventDetectFlee
		}
		return cfg.EventDetectChase
	}

	c.st.Timer--
	if c.st.Timer <= 0 {
		c.st.MoveDir = randomDirection(c.rng)
		if !c.st.MoveDir.IsZero() {
			c.st.Facing = c.st.MoveDir
		}
		c.st.Timer = c.conf.WanderInterval
	}
	return ""
}

func updateChase(c aiContext) string {
	if lost(c) {
		return cfg.EventLose
	}
	c.st.MoveDir = geom.Direction(c.pos(), c.target())
	c.st.Facing = c.st.MoveDir
	return ""
}

func updateFlee(c aiContext) string {
	if lost(c) {
		return cfg.EventLose
	}
	away := geom.Direction(c.target(), c.pos())
	c.st.MoveDir = away
	c.st.Facing = away.Neg()
	return ""
}

func updateStunned(c aiContext) string {
	c.st.MoveDir = geom.Vec{}
	c.st.Timer--
	if c.st.Timer <= 0 {
		return cfg.EventRecover
	}
	return ""
}

// lost reports the target gone or beyond VisionRadius * ExitMultiplier.
func lost(c aiContext) bool {
	if !c.sense.HasTarget {
		return true
	}
	exit := c.conf.VisionRadius * c.conf.ExitMultiplier
	return c.sense.DistanceSq > exit*exit
}

// randomDirection returns a unit vector, or zero one time in four to idle.
func randomDirection(rng *rand.Rand) geom.Vec {
	if rng == nil {
		return geom.Vec{}
	}
	if rng.Intn(4) == 0 {
		return geom.Vec{}
	}
	angle := rng.Float64() * 2 * math.Pi
	return geom.V(math.Cos(angle), math.Sin(angle))
}

func (c aiContext) pos() geom.Vec {
	return components.Transform.Get(c.entry).Pos()
}

func (c aiContext) target() geom.Vec {
	return geom.V(c.sense.TargetX, c.sense.TargetY)
}
