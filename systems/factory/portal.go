package factory

import (
	"github.com/dream-sky2020/divinebloom/archetypes"
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/events"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/yohamta/donburi"
)

type PortalConfig struct {
	Base        `yaml:",inline"`
	ShapeConfig `yaml:",inline"`
	Map         string   `yaml:"map" validate:"required"`
	Entry       string   `yaml:"entry,omitempty"`
	Targets     []string `yaml:"targets" validate:"required,min=1"`
	Cooldown    int      `yaml:"cooldown,omitempty" validate:"gte=0"`
	OneShot     bool     `yaml:"oneShot,omitempty"`
}

func DefaultPortalConfig() PortalConfig {
	return PortalConfig{
		ShapeConfig: ShapeConfig{Shape: "aabb", W: 16, H: 16},
		Targets:     []string{tags.LabelTeleportable},
	}
}

// CreatePortal builds an area that requests a teleport when a teleportable
// entity enters it.
func CreatePortal(w donburi.World, c PortalConfig) (*donburi.Entry, error) {
	if err := check(TypePortal, c); err != nil {
		return nil, err
	}
	shape, err := c.build()
	if err != nil {
		return fail(TypePortal, err)
	}

	portal := archetypes.Portal.Spawn(w)
	components.Identity.SetValue(portal, c.identity(TypePortal))
	components.Transform.SetValue(portal, c.transform())
	components.Shape.SetValue(portal, shape)
	components.DetectArea.SetValue(portal, components.DetectAreaData{Targets: append([]string(nil), c.Targets...)})
	components.Trigger.SetValue(portal, components.TriggerData{
		Rules:    []components.Rule{{Type: components.RuleOnEnter}},
		Actions:  []events.ActionKind{events.ActionTeleport},
		Cooldown: c.Cooldown,
		OneShot:  c.OneShot,
	})
	components.TeleportAction.SetValue(portal, components.TeleportActionData{MapID: c.Map, EntryID: c.Entry})
	return portal, nil
}

func SerializePortal(e *donburi.Entry) PortalConfig {
	tp := components.TeleportAction.Get(e)
	tr := components.Trigger.Get(e)
	return PortalConfig{
		Base:        baseOf(e),
		ShapeConfig: shapeConfigOf(*components.Shape.Get(e)),
		Map:         tp.MapID,
		Entry:       tp.EntryID,
		Targets:     append([]string(nil), components.DetectArea.Get(e).Targets...),
		Cooldown:    tr.Cooldown,
		OneShot:     tr.OneShot,
	}
}
