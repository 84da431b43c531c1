package main

import (
	"flag"
	"fmt"
	"image/color"

	"github.com/dream-sky2020/divinebloom/actions"
	"github.com/dream-sky2020/divinebloom/assets"
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/input"
	"github.com/dream-sky2020/divinebloom/scenes"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
)

const appName = "divinebloom"

type Game struct {
	scene *scenes.WorldScene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

// Draw outlines every shaped entity. Triggers and sensors are drawn dimmer
// than solid bodies.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	w := g.scene.World()
	store.Each(w, func(e *donburi.Entry) {
		min, max := components.PlacedShape(e).Bounds()
		c := color.RGBA{R: 90, G: 90, B: 120, A: 255}
		if e.HasComponent(components.Collider) && !components.Collider.Get(e).IsTrigger {
			c = color.RGBA{R: 220, G: 220, B: 220, A: 255}
		}
		if e.HasComponent(components.AIState) {
			tint := components.AIState.Get(e).Tint
			c = color.RGBA{R: 220, G: uint8(220 * (1 - tint)), B: uint8(220 * (1 - tint)), A: 255}
		}
		vector.StrokeRect(screen,
			float32(min.X), float32(min.Y),
			float32(max.X-min.X), float32(max.Y-min.Y),
			1, c, false)
	}, components.Transform, components.Shape)

	status := fmt.Sprintf("tick %d", g.scene.Tick())
	if gl := components.GetGlobal(w); gl != nil {
		status = fmt.Sprintf("%s  %s", gl.SceneName, status)
	}
	if g.scene.Transitioning() {
		status += "  loading..."
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	startMap := flag.String("map", "town", "Map id to start in")
	tuning := flag.String("tuning", "", "YAML file overriding tuning values")
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

	opts := scenes.Options{
		Source:   assets.Maps(),
		Handlers: actions.LogHandlers{},
		Input:    input.Sample,
		Seed:     config.Simulation.Seed,
	}
	// Saves are optional; the game runs without them.
	if saves, err := systems.OpenSaveStore(appName); err == nil {
		opts.Saves = saves
	}

	scene := scenes.NewWorldScene(opts)
	if err := scene.LoadMap(*startMap); err != nil {
		log.WithError(err).Fatal("Could not start")
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle(appName)
	ebiten.SetTPS(config.Simulation.TickRate)

	if err := ebiten.RunGame(&Game{scene: scene}); err != nil {
		log.WithError(err).Fatal("Game exited")
	}
}
