// Package actions dispatches queued action requests to the collaborators
// that own battles, dialogue and teleports.
package actions

import (
	"errors"
	"fmt"

	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/yohamta/donburi"
)

var (
	ErrUnknownAction = errors.New("unknown action kind")
	ErrNoHandler     = errors.New("no handler for action")
	ErrStaleSource   = errors.New("action source no longer exists")
	ErrNoConfig      = errors.New("action source has no config for action")
)

// HandlerFunc runs one request.
type HandlerFunc func(w donburi.World, r events.ActionRequest) error

// Handlers are the external collaborators. Each receives the config read
// from the request's source entity.
type Handlers interface {
	Battle(w donburi.World, source *donburi.Entry, c components.BattleActionData, target donburi.Entity) error
	Dialogue(w donburi.World, source *donburi.Entry, c components.DialogueActionData, target donburi.Entity) error
	Teleport(w donburi.World, source *donburi.Entry, c components.TeleportActionData, target donburi.Entity) error
}

// Dispatcher is a fixed table from action kind to handler.
type Dispatcher struct {
	table [events.ActionKindCount]HandlerFunc
}

// NewDispatcher wires every action kind to h. A nil h leaves the table empty.
func NewDispatcher(h Handlers) *Dispatcher {
	d := &Dispatcher{}
	if h == nil {
		return d
	}
	d.table[events.ActionBattle] = withConfig(components.BattleAction, h.Battle)
	d.table[events.ActionDialogue] = withConfig(components.DialogueAction, h.Dialogue)
	d.table[events.ActionTeleport] = withConfig(components.TeleportAction, h.Teleport)
	return d
}

// Handle replaces the handler for one kind.
func (d *Dispatcher) Handle(kind events.ActionKind, fn HandlerFunc) {
	if kind < events.ActionKindCount {
		d.table[kind] = fn
	}
}

func (d *Dispatcher) Dispatch(w donburi.World, r events.ActionRequest) error {
	if r.Kind >= events.ActionKindCount {
		return fmt.Errorf("%w: %d", ErrUnknownAction, r.Kind)
	}
	fn := d.table[r.Kind]
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, r.Kind)
	}
	return fn(w, r)
}

func withConfig[T any](
	c *donburi.ComponentType[T],
	fn func(donburi.World, *donburi.Entry, T, donburi.Entity) error,
) HandlerFunc {
	return func(w donburi.World, r events.ActionRequest) error {
		source, ok := store.Entry(w, r.Source)
		if !ok {
			return ErrStaleSource
		}
		if !source.HasComponent(c) {
			return fmt.Errorf("%w: %s", ErrNoConfig, r.Kind)
		}
		return fn(w, source, *c.Get(source), r.Target)
	}
}
