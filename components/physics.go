package components

import (
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/yohamta/donburi"
)

// TransformData is the world pose. Prev holds the position before this
// tick's integration.
type TransformData struct {
	X, Y         float64
	PrevX, PrevY float64
	Rotation     float64 // radians
}

func (t *TransformData) Pos() geom.Vec { return geom.Vec{X: t.X, Y: t.Y} }

// LocalTransformData is a child's pose relative to its parent.
type LocalTransformData struct {
	X, Y     float64
	Rotation float64
}

type VelocityData struct {
	X, Y float64 // pixels per frame
}

type MovementData struct {
	Speed float64
	DirX  float64 // intent set by input or AI, applied by the control phase
	DirY  float64
}

// ColliderData marks a body for the collision resolver.
type ColliderData struct {
	IsStatic  bool
	IsTrigger bool
	Contacts  []donburi.Entity // trigger overlaps found this tick
}

var Transform = donburi.NewComponentType[TransformData]()
var LocalTransform = donburi.NewComponentType[LocalTransformData]()
var Velocity = donburi.NewComponentType[VelocityData]()
var Movement = donburi.NewComponentType[MovementData]()
var Shape = donburi.NewComponentType[geom.Shape]()
var Collider = donburi.NewComponentType[ColliderData]()

// PlacedShape places an entity's shape at its current transform.
func PlacedShape(e *donburi.Entry) geom.Body {
	t := Transform.Get(e)
	return Shape.Get(e).Place(t.Pos(), t.Rotation)
}
