package factory

import (
	"github.com/dream-sky2020/divinebloom/archetypes"
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/tags"
	"github.com/yohamta/donburi"
)

type HazardConfig struct {
	Base        `yaml:",inline"`
	ShapeConfig `yaml:",inline"`
	Damage      int      `yaml:"damage" validate:"gt=0"`
	Targets     []string `yaml:"targets" validate:"required,min=1"`
	Exclude     []string `yaml:"exclude,omitempty"`
	Lifetime    int      `yaml:"lifetime,omitempty" validate:"gte=0"` // frames, 0 lives forever
}

func DefaultHazardConfig() HazardConfig {
	return HazardConfig{
		ShapeConfig: ShapeConfig{Shape: "circle", Radius: 8},
		Damage:      1,
		Targets:     []string{tags.LabelDamageable},
	}
}

// CreateHazard builds a damage area. Each target is hit once per entry.
func CreateHazard(w donburi.World, c HazardConfig) (*donburi.Entry, error) {
	if err := check(TypeHazard, c); err != nil {
		return nil, err
	}
	shape, err := c.build()
	if err != nil {
		return fail(TypeHazard, err)
	}

	hazard := archetypes.Hazard.Spawn(w)
	components.Identity.SetValue(hazard, c.identity(TypeHazard))
	components.Transform.SetValue(hazard, c.transform())
	components.Shape.SetValue(hazard, shape)
	components.DetectArea.SetValue(hazard, components.DetectAreaData{
		Targets: append([]string(nil), c.Targets...),
		Exclude: append([]string(nil), c.Exclude...),
	})
	components.Hitter.SetValue(hazard, components.HitterData{Damage: c.Damage})
	if c.Lifetime > 0 {
		store.AddComponent(hazard, components.Lifetime, components.LifetimeData{Frames: c.Lifetime})
	}
	return hazard, nil
}

func SerializeHazard(e *donburi.Entry) HazardConfig {
	area := components.DetectArea.Get(e)
	c := HazardConfig{
		Base:        baseOf(e),
		ShapeConfig: shapeConfigOf(*components.Shape.Get(e)),
		Damage:      components.Hitter.Get(e).Damage,
		Targets:     append([]string(nil), area.Targets...),
		Exclude:     append([]string(nil), area.Exclude...),
	}
	if e.HasComponent(components.Lifetime) {
		c.Lifetime = components.Lifetime.Get(e).Frames
	}
	return c
}
