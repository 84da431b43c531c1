package components

import "github.com/yohamta/donburi"

// Role names the typed slot a child fills on its parent.
type Role uint8

const (
	RoleNone Role = iota
	RoleSensor
	RoleBody
)

// ParentData is the child side of an ownership edge.
type ParentData struct {
	Entity donburi.Entity
	Role   Role
}

// ChildrenData is the parent side. Sensor and Body duplicate the matching
// entries of Entities so family lookups do not scan.
type ChildrenData struct {
	Entities []donburi.Entity
	Sensor   donburi.Entity
	Body     donburi.Entity
}

var Parent = donburi.NewComponentType[ParentData]()
var Children = donburi.NewComponentType[ChildrenData]()
