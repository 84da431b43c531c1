package actions

import (
	"errors"
	"testing"

	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

type recorder struct {
	battles   []string
	dialogues []string
	teleports []components.TeleportActionData
	targets   []donburi.Entity
}

func (r *recorder) Battle(_ donburi.World, _ *donburi.Entry, c components.BattleActionData, target donburi.Entity) error {
	r.battles = append(r.battles, c.EncounterID)
	r.targets = append(r.targets, target)
	return nil
}

func (r *recorder) Dialogue(_ donburi.World, _ *donburi.Entry, c components.DialogueActionData, target donburi.Entity) error {
	r.dialogues = append(r.dialogues, c.ScriptID)
	return nil
}

func (r *recorder) Teleport(_ donburi.World, _ *donburi.Entry, c components.TeleportActionData, target donburi.Entity) error {
	r.teleports = append(r.teleports, c)
	return nil
}

func TestDispatchRoutesByKind(t *testing.T) {
	w := donburi.NewWorld()
	holder := store.Add(w, components.BattleAction, components.DialogueAction, components.TeleportAction)
	components.BattleAction.SetValue(holder, components.BattleActionData{EncounterID: "slimes"})
	components.DialogueAction.SetValue(holder, components.DialogueActionData{ScriptID: "intro"})
	components.TeleportAction.SetValue(holder, components.TeleportActionData{MapID: "cave", EntryID: "west"})
	target := store.Add(w).Entity()

	rec := &recorder{}
	d := NewDispatcher(rec)
	src := holder.Entity()

	require.NoError(t, d.Dispatch(w, events.ActionRequest{Source: src, Kind: events.ActionBattle, Target: target}))
	require.NoError(t, d.Dispatch(w, events.ActionRequest{Source: src, Kind: events.ActionDialogue}))
	require.NoError(t, d.Dispatch(w, events.ActionRequest{Source: src, Kind: events.ActionTeleport}))

	assert.Equal(t, []string{"slimes"}, rec.battles)
	assert.Equal(t, []donburi.Entity{target}, rec.targets)
	assert.Equal(t, []string{"intro"}, rec.dialogues)
	assert.Equal(t, []components.TeleportActionData{{MapID: "cave", EntryID: "west"}}, rec.teleports)
}

func TestDispatchErrors(t *testing.T) {
	w := donburi.NewWorld()
	bare := store.Add(w).Entity()
	gone := store.Add(w, components.BattleAction).Entity()
	store.Remove(w, gone)

	d := NewDispatcher(&recorder{})

	err := d.Dispatch(w, events.ActionRequest{Source: bare, Kind: events.ActionKindCount})
	assert.True(t, errors.Is(err, ErrUnknownAction))

	err = d.Dispatch(w, events.ActionRequest{Source: gone, Kind: events.ActionBattle})
	assert.True(t, errors.Is(err, ErrStaleSource))

	err = d.Dispatch(w, events.ActionRequest{Source: bare, Kind: events.ActionBattle})
	assert.True(t, errors.Is(err, ErrNoConfig))

	empty := NewDispatcher(nil)
	err = empty.Dispatch(w, events.ActionRequest{Source: bare, Kind: events.ActionDialogue})
	assert.True(t, errors.Is(err, ErrNoHandler))
}

func TestHandleOverridesOneKind(t *testing.T) {
	w := donburi.NewWorld()
	d := NewDispatcher(&recorder{})

	called := 0
	d.Handle(events.ActionTeleport, func(donburi.World, events.ActionRequest) error {
		called++
		return nil
	})
	require.NoError(t, d.Dispatch(w, events.ActionRequest{Kind: events.ActionTeleport}))
	assert.Equal(t, 1, called)
}
