package actions

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// LogHandlers records every action in the log and does nothing else. It
// stands in for the battle and dialogue collaborators in headless runs.
type LogHandlers struct{}

func (LogHandlers) Battle(_ donburi.World, source *donburi.Entry, c components.BattleActionData, target donburi.Entity) error {
	logger.For("actions").WithFields(logrus.Fields{
		"source":    source.Entity(),
		"target":    target,
		"encounter": c.EncounterID,
	}).Info("Battle requested")
	return nil
}

func (LogHandlers) Dialogue(_ donburi.World, source *donburi.Entry, c components.DialogueActionData, target donburi.Entity) error {
	logger.For("actions").WithFields(logrus.Fields{
		"source": source.Entity(),
		"target": target,
		"script": c.ScriptID,
	}).Info("Dialogue requested")
	return nil
}

func (LogHandlers) Teleport(_ donburi.World, source *donburi.Entry, c components.TeleportActionData, target donburi.Entity) error {
	logger.For("actions").WithFields(logrus.Fields{
		"source": source.Entity(),
		"target": target,
		"map":    c.MapID,
		"entry":  c.EntryID,
	}).Info("Teleport requested")
	return nil
}
