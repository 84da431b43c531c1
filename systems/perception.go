package systems

import (
	"math"
	"math/rand"

	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

type perceptionTarget struct {
	ok  bool
	pos geom.Vec
}

// UpdatePerception refreshes each AI's view of the player. Sight checks are
// throttled: near targets are re-checked often, far ones rarely. Suspicion
// grows on visible checks and decays on every tick the target is not visible.
func UpdatePerception(w donburi.World) {
	g := components.GetGlobal(w)
	var rng *rand.Rand
	if g != nil {
		rng = g.Rand
	}

	var target perceptionTarget
	if player, ok := tags.Player.First(w); ok && player.HasComponent(components.Transform) {
		target = perceptionTarget{ok: true, pos: components.Transform.Get(player).Pos()}
	}

	var blockers []geom.Body
	blockersReady := false
	sightBlockers := func() []geom.Body {
		if !blockersReady {
			blockers = staticBlockers(w)
			blockersReady = true
		}
		return blockers
	}

	store.Each(w, func(e *donburi.Entry) {
		conf := components.AIConfig.Get(e)
		st := components.AIState.Get(e)
		sense := components.AISensory.Get(e)
		pos := components.Transform.Get(e).Pos()

		st.FramesSinceCheck++
		st.RecheckTimer--

		sense.HasTarget = target.ok
		if target.ok {
			sense.DistanceSq = pos.DistSq(target.pos)
			sense.TargetX, sense.TargetY = target.pos.X, target.pos.Y
		}

		if st.RecheckTimer <= 0 {
			sense.Visible = target.ok && canSee(conf, st, pos, target.pos, sightBlockers)
			if sense.Visible && conf.SuspicionTime > 0 {
				elapsed := float64(st.FramesSinceCheck) / float64(cfg.Simulation.TickRate)
				st.Suspicion += elapsed / conf.SuspicionTime
			}
			st.FramesSinceCheck = 0
			st.RecheckTimer = recheckInterval(sense.DistanceSq, target.ok, rng)
		}
		if !sense.Visible {
			st.Suspicion -= cfg.Perception.SuspicionDecayRate / float64(cfg.Simulation.TickRate)
		}
		st.Suspicion = geom.Clamp(st.Suspicion, 0, 1)
	}, components.AIConfig, components.AIState, components.AISensory, components.Transform)
}

// canSee runs the vision test: a coarse radius gate, then the vision shape,
// then the optional line of sight.
func canSee(conf *components.AIConfigData, st *components.AIStateData, pos, target geom.Vec, blockers func() []geom.Body) bool {
	distSq := pos.DistSq(target)
	if distSq > conf.VisionRadius*conf.VisionRadius {
		return false
	}

	var seen bool
	switch conf.VisionType {
	case components.VisionCircle:
		seen = true
	case components.VisionCone:
		seen = inCone(conf, st, pos, target)
	case components.VisionHybrid:
		seen = distSq <= conf.ProximityRadius*conf.ProximityRadius || inCone(conf, st, pos, target)
	}
	if !seen || !conf.RequireLineOfSight {
		return seen
	}

	sight := geom.Segment(pos, target)
	for _, b := range blockers() {
		if geom.Broadphase(sight, b, 0) && geom.Overlaps(sight, b) {
			return false
		}
	}
	return true
}

func inCone(conf *components.AIConfigData, st *components.AIStateData, pos, target geom.Vec) bool {
	facing := st.Facing
	if facing.IsZero() {
		facing = st.MoveDir
	}
	if facing.IsZero() {
		facing = geom.V(1, 0)
	}
	dir := target.Sub(pos)
	if dir.IsZero() {
		return true
	}
	half := conf.VisionAngle / 2 * math.Pi / 180
	return facing.Normalize().Dot(dir.Normalize()) >= math.Cos(half)
}

// recheckInterval eases from the minimum interval at distance zero up to the
// maximum at cfg.Perception.FarDistance, then applies rng jitter.
func recheckInterval(distSq float64, hasTarget bool, rng *rand.Rand) int {
	p := cfg.Perception
	frames := float64(p.MaxRecheckFrames)
	if hasTarget {
		d := math.Min(math.Sqrt(distSq), p.FarDistance)
		frames = float64(ease.InQuad(
			float32(d),
			float32(p.MinRecheckFrames),
			float32(p.MaxRecheckFrames-p.MinRecheckFrames),
			float32(p.FarDistance),
		))
	}
	if rng != nil && p.Jitter > 0 {
		frames *= 1 + p.Jitter*(2*rng.Float64()-1)
	}
	if n := int(math.Round(frames)); n > 1 {
		return n
	}
	return 1
}

func staticBlockers(w donburi.World) []geom.Body {
	var out []geom.Body
	store.Each(w, func(e *donburi.Entry) {
		c := components.Collider.Get(e)
		if c.IsStatic && !c.IsTrigger {
			out = append(out, components.PlacedShape(e))
		}
	}, components.Collider, components.Shape, components.Transform)
	return out
}
