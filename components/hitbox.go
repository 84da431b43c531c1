package components

import (
	"github.com/yohamta/donburi"
)

type HitterData struct {
	Owner    donburi.Entity   // The entity credited with the damage (Null = self)
	Damage   int              // Damage dealt per hit
	Contacts []donburi.Entity // Last tick's detections (prevent multiple hits)
}

var Hitter = donburi.NewComponentType[HitterData]()
