package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Enemy  = donburi.NewTag().SetName("Enemy")
	Wall   = donburi.NewTag().SetName("Wall")
	Portal = donburi.NewTag().SetName("Portal")
	NPC    = donburi.NewTag().SetName("NPC")
	Hazard = donburi.NewTag().SetName("Hazard")
	Zone   = donburi.NewTag().SetName("Zone")
	Sensor = donburi.NewTag().SetName("Sensor")
)

// Resolv tags for the broadphase grid
const (
	ResolvCollider = "collider"
	ResolvSolid    = "solid"
	ResolvTrigger  = "trigger"
)

// Detectable labels
const (
	LabelPlayer       = "player"
	LabelEnemy        = "enemy"
	LabelTeleportable = "teleportable"
	LabelDamageable   = "damageable"
)
