package factory

import (
	"github.com/dream-sky2020/divinebloom/archetypes"
	"github.com/dream-sky2020/divinebloom/components"
	cfg "github.com/dream-sky2020/divinebloom/config"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/yohamta/donburi"
)

type PlayerConfig struct {
	Base   `yaml:",inline"`
	Speed  float64 `yaml:"speed" validate:"gte=0"`
	Radius float64 `yaml:"radius" validate:"gt=0"`
	Health int     `yaml:"health" validate:"gt=0"`
	HP     int     `yaml:"hp,omitempty" validate:"gte=0,ltefield=Health"` // current health, 0 means full
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Speed:  cfg.Player.Speed,
		Radius: cfg.Player.Radius,
		Health: cfg.Player.Health,
	}
}

func CreatePlayer(w donburi.World, c PlayerConfig) (*donburi.Entry, error) {
	if err := check(TypePlayer, c); err != nil {
		return nil, err
	}
	player := archetypes.Player.Spawn(w)

	components.Identity.SetValue(player, c.identity(TypePlayer))
	components.Transform.SetValue(player, c.transform())
	components.Shape.SetValue(player, geom.Circle(c.Radius))
	components.Movement.SetValue(player, components.MovementData{Speed: c.Speed})
	components.Detectable.SetValue(player, components.DetectableData{
		Labels: []string{tags.LabelPlayer, tags.LabelTeleportable, tags.LabelDamageable},
	})

	hp := c.HP
	if hp == 0 {
		hp = c.Health
	}
	components.Health.SetValue(player, components.HealthData{Current: hp, Max: c.Health})

	addCollider(w, player, false)
	return player, nil
}

func SerializePlayer(e *donburi.Entry) PlayerConfig {
	h := components.Health.Get(e)
	return PlayerConfig{
		Base:   baseOf(e),
		Speed:  components.Movement.Get(e).Speed,
		Radius: components.Shape.Get(e).Radius,
		Health: h.Max,
		HP:     h.Current,
	}
}
