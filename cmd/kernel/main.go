// Command kernel runs the simulation headless at a fixed tick rate.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dream-sky2020/divinebloom/actions"
	"github.com/dream-sky2020/divinebloom/assets"
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/scenes"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/systems"
	"github.com/sirupsen/logrus"
)

type GameLoop struct {
	scene    *scenes.WorldScene
	tickRate int
	maxTicks uint64
	stopChan chan struct{}
	log      *logrus.Entry
}

func NewGameLoop(scene *scenes.WorldScene, tickRate int, maxTicks uint64) *GameLoop {
	return &GameLoop{
		scene:    scene,
		tickRate: tickRate,
		maxTicks: maxTicks,
		stopChan: make(chan struct{}),
		log:      logger.For("loop"),
	}
}

// Run ticks until Stop is called or maxTicks ticks have run. A tick rate of
// zero runs as fast as possible.
func (g *GameLoop) Run() {
	var tick <-chan time.Time
	if g.tickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	g.log.WithField("tickRate", g.tickRate).Info("Game loop started")

	var ran uint64
	for {
		if tick != nil {
			select {
			case <-g.stopChan:
				g.log.Info("Game loop stopped")
				return
			case <-tick:
			}
		} else {
			select {
			case <-g.stopChan:
				g.log.Info("Game loop stopped")
				return
			default:
			}
		}

		transitioning := g.scene.Transitioning()
		g.scene.Update()
		if transitioning {
			continue
		}
		ran++
		if g.tickRate > 0 && ran%uint64(g.tickRate) == 0 {
			g.report()
		}
		if g.maxTicks > 0 && ran >= g.maxTicks {
			g.report()
			return
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) report() {
	w := g.scene.World()
	gl := components.GetGlobal(w)
	if gl == nil {
		return
	}
	g.log.WithFields(logrus.Fields{
		"scene":       gl.SceneName,
		"tick":        gl.Tick,
		"entities":    store.Count(w, components.Transform),
		"pairs":       gl.Collisions.PairsTested,
		"resolutions": gl.Collisions.Resolutions,
		"damageDrops": gl.Damage.Dropped(),
	}).Info("Tick report")
}

func main() {
	startMap := flag.String("map", "town", "Map id to start in")
	tuning := flag.String("tuning", "", "YAML file overriding tuning values")
	tickRate := flag.Int("tickrate", 0, "Ticks per second (0 = config value, -1 = unthrottled)")
	maxTicks := flag.Uint64("ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	saveSlot := flag.String("save", "", "Save the scene to this slot on exit")
	flag.Parse()

	logger.Init()
	log := logger.For("main")

	if *tuning != "" {
		t, err := config.LoadTuning(*tuning)
		if err != nil {
			log.WithError(err).Fatal("Could not load tuning")
		}
		t.Apply()
	}

	rate := *tickRate
	switch {
	case rate == 0:
		rate = config.Simulation.TickRate
	case rate < 0:
		rate = 0
	}

	opts := scenes.Options{
		Source:   assets.Maps(),
		Handlers: actions.LogHandlers{},
		Seed:     config.Simulation.Seed,
	}
	if *saveSlot != "" {
		saves, err := systems.OpenSaveStore("divinebloom")
		if err != nil {
			log.WithError(err).Fatal("Could not open save store")
		}
		opts.Saves = saves
	}

	scene := scenes.NewWorldScene(opts)
	if err := scene.LoadMap(*startMap); err != nil {
		log.WithError(err).Fatal("Could not start")
	}

	loop := NewGameLoop(scene, rate, *maxTicks)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutting down kernel...")
		loop.Stop()
	}()

	loop.Run()

	if *saveSlot != "" {
		// Queue the save and run one more tick so it executes in order.
		scene.Push(events.SaveScene(*saveSlot))
		scene.Update()
	}
}
