package components

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

// IdentityData is the stable identity used by serialization and battle
// result injection. Kind is the factory type that built the entity.
type IdentityData struct {
	UUID uuid.UUID
	Kind string
	Name string
}

// SpawnPointData marks a named teleport destination.
type SpawnPointData struct {
	Name string
}

var Identity = donburi.NewComponentType[IdentityData]()
var SpawnPoint = donburi.NewComponentType[SpawnPointData]()
