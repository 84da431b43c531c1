package events

import (
	"fmt"

	"github.com/dream-sky2020/divinebloom/shared/scenedata"
	"github.com/yohamta/donburi"
)

// CommandKind is the closed set of scene-level commands.
type CommandKind uint8

const (
	CommandCreateEntity CommandKind = iota
	CommandDeleteEntity
	CommandSaveScene
	CommandLoadMap
)

func (k CommandKind) String() string {
	switch k {
	case CommandCreateEntity:
		return "CREATE_ENTITY"
	case CommandDeleteEntity:
		return "DELETE_ENTITY"
	case CommandSaveScene:
		return "SAVE_SCENE"
	case CommandLoadMap:
		return "LOAD_MAP"
	}
	return fmt.Sprintf("CommandKind(%d)", k)
}

// Command is a deferred world mutation. Only the field matching Kind is read.
type Command struct {
	Kind   CommandKind
	Record scenedata.EntityRecord // CREATE_ENTITY
	Target donburi.Entity         // DELETE_ENTITY
	Slot   string                 // SAVE_SCENE
	Map    string                 // LOAD_MAP
}

func CreateEntity(r scenedata.EntityRecord) Command {
	return Command{Kind: CommandCreateEntity, Record: r}
}

func DeleteEntity(e donburi.Entity) Command {
	return Command{Kind: CommandDeleteEntity, Target: e}
}

func SaveScene(slot string) Command {
	return Command{Kind: CommandSaveScene, Slot: slot}
}

func LoadMap(id string) Command {
	return Command{Kind: CommandLoadMap, Map: id}
}

// CommandQueue collects commands pushed during a tick.
type CommandQueue struct {
	items []Command
}

func (q *CommandQueue) Push(c Command) {
	q.items = append(q.items, c)
}

func (q *CommandQueue) Len() int { return len(q.items) }

// Drain returns the queued commands in push order and empties the queue.
func (q *CommandQueue) Drain() []Command {
	out := q.items
	q.items = nil
	return out
}
