package components

import "github.com/yohamta/donburi"

// Action config holders. A trigger requesting an action resolves the holder
// on itself or the nearest ancestor.

type BattleActionData struct {
	EncounterID string
}

type DialogueActionData struct {
	ScriptID string
}

type TeleportActionData struct {
	MapID   string
	EntryID string
}

var BattleAction = donburi.NewComponentType[BattleActionData]()
var DialogueAction = donburi.NewComponentType[DialogueActionData]()
var TeleportAction = donburi.NewComponentType[TeleportActionData]()
