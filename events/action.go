// Package events holds the queues that carry work from the sense phases to
// the execution phase of a tick.
package events

import (
	"fmt"

	"github.com/yohamta/donburi"
)

// ActionKind is the closed set of actions a trigger can request.
type ActionKind uint8

const (
	ActionBattle ActionKind = iota
	ActionDialogue
	ActionTeleport
	ActionKindCount // Must be last - used for array sizing
)

var actionNames = [ActionKindCount]string{
	ActionBattle:   "BATTLE",
	ActionDialogue: "DIALOGUE",
	ActionTeleport: "TELEPORT",
}

func (k ActionKind) String() string {
	if k < ActionKindCount {
		return actionNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", k)
}

// ParseActionKind accepts the upper-case names used in scene files.
func ParseActionKind(name string) (ActionKind, error) {
	for i, n := range actionNames {
		if n == name {
			return ActionKind(i), nil
		}
	}
	return ActionKindCount, fmt.Errorf("unknown action %q", name)
}

// ActionRequest asks the execution phase to run one action. Target is
// donburi.Null when the trigger had no detection results.
type ActionRequest struct {
	Source donburi.Entity
	Kind   ActionKind
	Target donburi.Entity
}

// ActionQueue is the outbound action list, filled during sense and drained
// once by execution.
type ActionQueue struct {
	items []ActionRequest
}

func (q *ActionQueue) Push(r ActionRequest) {
	q.items = append(q.items, r)
}

func (q *ActionQueue) Len() int { return len(q.items) }

// Drain returns the queued requests in push order and empties the queue.
func (q *ActionQueue) Drain() []ActionRequest {
	out := q.items
	q.items = nil
	return out
}
