package components

import "github.com/yohamta/donburi"

// LifetimeData marks entities that should be destroyed after a duration
type LifetimeData struct {
	Frames int // frames until destruction
}

var Lifetime = donburi.NewComponentType[LifetimeData]()
