package systems

import (
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// ActionDispatcher runs one queued action request.
type ActionDispatcher interface {
	Dispatch(w donburi.World, r events.ActionRequest) error
}

// CommandHandler applies one scene command.
type CommandHandler func(w donburi.World, c events.Command) error

// NewExecution returns the final phase of a tick: it drains the action
// queue through d, then the command queue through commands, then the damage
// queue. A failing action or command is logged and the drain continues.
func NewExecution(d ActionDispatcher, commands CommandHandler) func(donburi.World) {
	log := logger.For("execution")

	return func(w donburi.World) {
		g := components.GetGlobal(w)
		if g == nil {
			return
		}

		for _, r := range g.Actions.Drain() {
			if d == nil {
				continue
			}
			if err := d.Dispatch(w, r); err != nil {
				log.WithFields(logrus.Fields{
					"action": r.Kind.String(),
					"source": r.Source,
					"target": r.Target,
				}).WithError(err).Warn("Action failed")
			}
		}

		for _, c := range g.Commands.Drain() {
			if commands == nil {
				log.WithField("command", c.Kind.String()).Warn("No command handler, command dropped")
				continue
			}
			if err := commands(w, c); err != nil {
				log.WithField("command", c.Kind.String()).WithError(err).Warn("Command failed")
			}
		}

		UpdateCombat(w)
	}
}
