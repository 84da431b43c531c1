package scenes

import (
	"errors"
	"fmt"

	"github.com/dream-sky2020/divinebloom/actions"
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/systems"
	"github.com/dream-sky2020/divinebloom/systems/factory"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

var (
	ErrNoTraveller  = errors.New("teleport has no target")
	ErrUnknownEntry = errors.New("unknown spawn point")
	ErrStaleTarget  = errors.New("command target no longer exists")
)

// Push queues a command for the next execution phase.
func (ws *WorldScene) Push(c events.Command) {
	if g := components.GetGlobal(ws.world); g != nil {
		g.Commands.Push(c)
	}
}

func (ws *WorldScene) handleCommand(w donburi.World, c events.Command) error {
	switch c.Kind {
	case events.CommandCreateEntity:
		_, err := factory.Create(w, c.Record)
		return err

	case events.CommandDeleteEntity:
		if !w.Valid(c.Target) {
			return fmt.Errorf("%w: %v", ErrStaleTarget, c.Target)
		}
		systems.Destroy(w, c.Target)
		return nil

	case events.CommandSaveScene:
		if ws.opts.Saves == nil {
			return ErrNoSaveStore
		}
		s := factory.SaveScene(w)
		if err := systems.SaveSceneSlot(ws.opts.Saves, c.Slot, s); err != nil {
			return err
		}
		ws.log.WithFields(logrus.Fields{
			"slot":     c.Slot,
			"entities": len(s.Entities),
		}).Info("Scene saved")
		return nil

	case events.CommandLoadMap:
		return ws.LoadMap(c.Map)
	}
	return fmt.Errorf("unknown command %s", c.Kind)
}

// teleport moves the target's tree to a spawn point. A spawn in the current
// scene is reached in place; any other map starts a transition carrying the
// target's record.
func (ws *WorldScene) teleport(w donburi.World, r events.ActionRequest) error {
	source, ok := store.Entry(w, r.Source)
	if !ok {
		return actions.ErrStaleSource
	}
	if !source.HasComponent(components.TeleportAction) {
		return fmt.Errorf("%w: %s", actions.ErrNoConfig, r.Kind)
	}
	tp := components.TeleportAction.Get(source)

	target, ok := store.Entry(w, r.Target)
	if !ok {
		return ErrNoTraveller
	}
	root := systems.RootOf(w, target)

	g := components.GetGlobal(w)
	if tp.MapID == "" || (g != nil && tp.MapID == g.SceneName) {
		spawn, ok := factory.FindSpawn(w, tp.EntryID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownEntry, tp.EntryID)
		}
		systems.PlaceRoot(w, root, components.Transform.Get(spawn).Pos())
		return nil
	}

	rec, ok := factory.Serialize(root)
	if !ok {
		return fmt.Errorf("teleport: %v is not serializable", root.Entity())
	}
	return ws.loadMap(tp.MapID, &traveller{record: rec, entry: tp.EntryID})
}
