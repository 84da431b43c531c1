package scenes

import (
	"io/fs"
	"sync/atomic"

	"github.com/dream-sky2020/divinebloom/actions"
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/systems"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// System is one step of a phase.
type System func(w donburi.World)

// Phase is a named, ordered group of systems.
type Phase struct {
	Name    string
	Systems []System
}

// Options configures a WorldScene.
type Options struct {
	// Source resolves map ids to scene descriptions (YAML or TMX).
	Source fs.FS
	// Saves backs SAVE_SCENE and LoadSlot. Nil disables both.
	Saves systems.SaveStore
	// Handlers receives BATTLE and DIALOGUE requests. TELEPORT is always
	// handled by the scene.
	Handlers actions.Handlers
	// Input is sampled once at the start of every tick. Nil means no input.
	Input func() components.InputSample
	// Seed seeds each loaded scene's random source.
	Seed int64
}

// WorldScene runs the simulation kernel over one world at a time. The world
// is replaced wholesale when a transition completes.
type WorldScene struct {
	opts       Options
	world      donburi.World
	phases     []Phase
	dispatcher *actions.Dispatcher

	transitioning atomic.Bool
	results       chan transitionResult

	log *logrus.Entry
}

func NewWorldScene(opts Options) *WorldScene {
	if opts.Seed == 0 {
		opts.Seed = cfg.Simulation.Seed
	}
	ws := &WorldScene{
		opts:       opts,
		world:      donburi.NewWorld(),
		dispatcher: actions.NewDispatcher(opts.Handlers),
		results:    make(chan transitionResult, 1),
		log:        logger.For("scene"),
	}
	ws.dispatcher.Handle(events.ActionTeleport, ws.teleport)
	ws.phases = ws.buildPhases()
	return ws
}

func (ws *WorldScene) buildPhases() []Phase {
	return []Phase{
		{Name: "sense", Systems: []System{
			systems.UpdateInputDetect,
			systems.UpdateDetection,
			systems.UpdateHitDetection,
			systems.UpdateTriggers,
			systems.UpdatePerception,
		}},
		{Name: "intent", Systems: []System{
			systems.UpdateAI,
			systems.UpdatePlayerIntent,
		}},
		{Name: "control", Systems: []System{
			systems.UpdateControl,
		}},
		{Name: "physics", Systems: []System{
			systems.UpdatePhysics,
			systems.SyncTransforms,
			systems.UpdateCollisions,
			systems.UpdateBounds,
		}},
		{Name: "lifecycle", Systems: []System{
			systems.UpdateLifetimes,
		}},
		{Name: "execution", Systems: []System{
			systems.NewExecution(ws.dispatcher, ws.handleCommand),
		}},
	}
}

// Phases returns the tick schedule in run order.
func (ws *WorldScene) Phases() []Phase { return ws.phases }

// World is the live world. It changes identity after each transition.
func (ws *WorldScene) World() donburi.World { return ws.world }

// Transitioning reports whether a scene load is in flight.
func (ws *WorldScene) Transitioning() bool { return ws.transitioning.Load() }

// Tick returns the number of completed ticks in the current world.
func (ws *WorldScene) Tick() uint64 {
	if g := components.GetGlobal(ws.world); g != nil {
		return g.Tick
	}
	return 0
}

// Update advances one tick. While a transition is in flight it only polls
// for the loaded scene and the world does not advance.
func (ws *WorldScene) Update() {
	if ws.transitioning.Load() {
		ws.pollTransition()
		return
	}

	g := components.GetGlobal(ws.world)
	if g == nil {
		return
	}

	if ws.opts.Input != nil {
		systems.ApplyInput(ws.world, ws.opts.Input())
	}

	for _, p := range ws.phases {
		for _, sys := range p.Systems {
			sys(ws.world)
		}
	}

	g.Tick++
}
