package factory

import (
	"github.com/dream-sky2020/divinebloom/archetypes"
	"github.com/dream-sky2020/divinebloom/components"
	"github.com/yohamta/donburi"
)

type WallConfig struct {
	Base        `yaml:",inline"`
	ShapeConfig `yaml:",inline"`
}

func DefaultWallConfig() WallConfig {
	return WallConfig{ShapeConfig: ShapeConfig{Shape: "aabb"}}
}

// CreateWall builds a static collider. Walls never move and are never
// resolved against each other.
func CreateWall(w donburi.World, c WallConfig) (*donburi.Entry, error) {
	if err := check(TypeWall, c); err != nil {
		return nil, err
	}
	shape, err := c.build()
	if err != nil {
		return fail(TypeWall, err)
	}

	wall := archetypes.Wall.Spawn(w)
	components.Identity.SetValue(wall, c.identity(TypeWall))
	components.Transform.SetValue(wall, c.transform())
	components.Shape.SetValue(wall, shape)
	addCollider(w, wall, true)
	return wall, nil
}

func SerializeWall(e *donburi.Entry) WallConfig {
	return WallConfig{
		Base:        baseOf(e),
		ShapeConfig: shapeConfigOf(*components.Shape.Get(e)),
	}
}
