package scenes

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/shared/scenedata"
	"github.com/dream-sky2020/divinebloom/systems"
	"github.com/dream-sky2020/divinebloom/systems/factory"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

var (
	ErrTransitioning = errors.New("scene transition already in progress")
	ErrNoSource      = errors.New("no scene source configured")
	ErrNoSaveStore   = errors.New("no save store configured")
	ErrEmptySlot     = errors.New("save slot is empty")
)

// traveller is an entity record moved into the next scene at a spawn point.
type traveller struct {
	record scenedata.EntityRecord
	entry  string
}

type transitionResult struct {
	label string
	scene *scenedata.Scene
	err   error
	with  *traveller
}

// LoadMap starts an asynchronous transition to the scene source's map id.
func (ws *WorldScene) LoadMap(id string) error {
	return ws.loadMap(id, nil)
}

func (ws *WorldScene) loadMap(id string, with *traveller) error {
	if ws.opts.Source == nil {
		return ErrNoSource
	}
	src := ws.opts.Source
	return ws.begin("map:"+id, with, func() (*scenedata.Scene, error) {
		return scenedata.Load(src, id)
	})
}

// LoadSlot starts an asynchronous transition to the scene saved in slot.
func (ws *WorldScene) LoadSlot(slot string) error {
	if ws.opts.Saves == nil {
		return ErrNoSaveStore
	}
	saves := ws.opts.Saves
	return ws.begin("slot:"+slot, nil, func() (*scenedata.Scene, error) {
		s, err := systems.LoadSceneSlot(saves, slot)
		if err == nil && s == nil {
			err = fmt.Errorf("%w: %s", ErrEmptySlot, slot)
		}
		return s, err
	})
}

// LoadScene starts a transition to an already decoded scene.
func (ws *WorldScene) LoadScene(s *scenedata.Scene) error {
	return ws.begin("scene:"+s.Header.Config.Name, nil, func() (*scenedata.Scene, error) {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	})
}

func (ws *WorldScene) begin(label string, with *traveller, load func() (*scenedata.Scene, error)) error {
	if !ws.transitioning.CompareAndSwap(false, true) {
		return ErrTransitioning
	}
	ws.log.WithField("scene", label).Info("Scene transition started")

	go func() {
		s, err := load()
		ws.results <- transitionResult{label: label, scene: s, err: err, with: with}
	}()
	return nil
}

// pollTransition consumes a finished load, if any, on the tick goroutine.
func (ws *WorldScene) pollTransition() {
	select {
	case r := <-ws.results:
		defer ws.transitioning.Store(false)
		if r.err != nil {
			ws.log.WithField("scene", r.label).WithError(r.err).Error("Scene transition failed")
			return
		}
		ws.enter(r)
	default:
	}
}

func (ws *WorldScene) enter(r transitionResult) {
	w := donburi.NewWorld()
	g := components.Global.Get(factory.CreateLevel(w, r.scene.Header.Config, ws.opts.Seed))

	// Results parked for enemies of other scenes survive the swap.
	if old := components.GetGlobal(ws.world); old != nil && len(old.PendingResults) > 0 {
		g.PendingResults = make(map[uuid.UUID]components.BattleResult, len(old.PendingResults))
		maps.Copy(g.PendingResults, old.PendingResults)
	}

	n := factory.Build(w, r.scene)
	if r.with != nil {
		if err := arrive(w, r.with); err != nil {
			ws.log.WithField("scene", r.label).WithError(err).Error("Traveller could not enter scene")
		}
	}

	ws.world = w
	ws.log.WithFields(logrus.Fields{
		"scene":    r.label,
		"entities": n,
	}).Info("Scene entered")
}

// arrive replaces the scene's own player with the traveller, placed at the
// named spawn point. An unknown spawn keeps the record's position.
func arrive(w donburi.World, t *traveller) error {
	rec := scenedata.EntityRecord{Type: t.record.Type, Config: maps.Clone(t.record.Config)}
	if rec.Config == nil {
		rec.Config = map[string]any{}
	}
	if spawn, ok := factory.FindSpawn(w, t.entry); ok {
		pos := components.Transform.Get(spawn).Pos()
		rec.Config["x"], rec.Config["y"] = pos.X, pos.Y
	} else {
		logger.For("scene").WithField("entry", t.entry).Warn("Spawn point not found, keeping position")
	}

	if rec.Type == factory.TypePlayer {
		var existing []donburi.Entity
		tags.Player.Each(w, func(e *donburi.Entry) {
			existing = append(existing, e.Entity())
		})
		systems.DestroyAll(w, existing)
	}

	_, err := factory.Create(w, rec)
	return err
}
