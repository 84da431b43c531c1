// Package factory builds entities from validated configs and serializes them
// back into scene records.
package factory

import (
	"errors"
	"fmt"

	"github.com/dream-sky2020/divinebloom/components"
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/dream-sky2020/divinebloom/shared/logger"
	"github.com/dream-sky2020/divinebloom/shared/scenedata"
	"github.com/dream-sky2020/divinebloom/store"
	"github.com/dream-sky2020/divinebloom/systems"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownType = errors.New("unknown entity type")
	errMissingName = errors.New("name is required")
)

var validate = validator.New()

// Entity types understood by Create.
const (
	TypePlayer = "player"
	TypeEnemy  = "enemy"
	TypeWall   = "wall"
	TypePortal = "portal"
	TypeNPC    = "npc"
	TypeHazard = "hazard"
	TypeZone   = "zone"
	TypeSpawn  = "spawn"
)

type kind struct {
	create    func(w donburi.World, raw map[string]any) (*donburi.Entry, error)
	serialize func(e *donburi.Entry) any
}

var kinds = map[string]kind{
	TypePlayer: {createFrom(DefaultPlayerConfig, CreatePlayer), func(e *donburi.Entry) any { return SerializePlayer(e) }},
	TypeEnemy:  {createFrom(DefaultEnemyConfig, CreateEnemy), func(e *donburi.Entry) any { return SerializeEnemy(e) }},
	TypeWall:   {createFrom(DefaultWallConfig, CreateWall), func(e *donburi.Entry) any { return SerializeWall(e) }},
	TypePortal: {createFrom(DefaultPortalConfig, CreatePortal), func(e *donburi.Entry) any { return SerializePortal(e) }},
	TypeNPC:    {createFrom(DefaultNPCConfig, CreateNPC), func(e *donburi.Entry) any { return SerializeNPC(e) }},
	TypeHazard: {createFrom(DefaultHazardConfig, CreateHazard), func(e *donburi.Entry) any { return SerializeHazard(e) }},
	TypeZone:   {createFrom(DefaultZoneConfig, CreateZone), func(e *donburi.Entry) any { return SerializeZone(e) }},
	TypeSpawn:  {createFrom(DefaultSpawnConfig, CreateSpawn), func(e *donburi.Entry) any { return SerializeSpawn(e) }},
}

// Create builds the entity described by r.
func Create(w donburi.World, r scenedata.EntityRecord) (*donburi.Entry, error) {
	k, ok := kinds[r.Type]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownType, r.Type)
		logFailure(r.Type, err)
		return nil, err
	}
	return k.create(w, r.Config)
}

// Serialize converts an entity built by this package back into a record.
func Serialize(e *donburi.Entry) (scenedata.EntityRecord, bool) {
	if !e.HasComponent(components.Identity) {
		return scenedata.EntityRecord{}, false
	}
	typ := components.Identity.Get(e).Kind
	k, ok := kinds[typ]
	if !ok {
		return scenedata.EntityRecord{}, false
	}
	cfg, err := toMap(k.serialize(e))
	if err != nil {
		logger.For("factory").WithFields(logrus.Fields{"type": typ}).WithError(err).Error("Entity serialization failed")
		return scenedata.EntityRecord{}, false
	}
	return scenedata.EntityRecord{Type: typ, Config: cfg}, true
}

// SerializeWorld serializes every factory-built root entity.
func SerializeWorld(w donburi.World) []scenedata.EntityRecord {
	var out []scenedata.EntityRecord
	store.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(components.Parent) {
			return
		}
		if r, ok := Serialize(e); ok {
			out = append(out, r)
		}
	}, components.Identity)
	return out
}

// Build creates every record of s, logging and skipping the ones that fail.
// It returns the number of entities created.
func Build(w donburi.World, s *scenedata.Scene) int {
	n := 0
	for _, r := range s.Entities {
		if _, err := Create(w, r); err == nil {
			n++
		}
	}
	return n
}

func createFrom[C any](defaults func() C, create func(donburi.World, C) (*donburi.Entry, error)) func(donburi.World, map[string]any) (*donburi.Entry, error) {
	return func(w donburi.World, raw map[string]any) (*donburi.Entry, error) {
		c := defaults()
		if err := decode(raw, &c); err != nil {
			return nil, err
		}
		return create(w, c)
	}
}

// decode maps a loose record config onto a typed config, keeping the
// defaults for keys the record omits.
func decode(raw map[string]any, out any) error {
	if len(raw) == 0 {
		return nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func toMap(v any) (map[string]any, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// check validates c, logging and wrapping the failure.
func check(typ string, c any) error {
	if err := validate.Struct(c); err != nil {
		err = fmt.Errorf("create %s: %w", typ, err)
		logFailure(typ, err)
		return err
	}
	return nil
}

func fail(typ string, err error) (*donburi.Entry, error) {
	err = fmt.Errorf("create %s: %w", typ, err)
	logFailure(typ, err)
	return nil, err
}

func logFailure(typ string, err error) {
	logger.For("factory").WithFields(logrus.Fields{"type": typ}).WithError(err).Error("Entity creation failed")
}

// Base holds the fields every entity config shares.
type Base struct {
	ID   string  `yaml:"id,omitempty" validate:"omitempty,uuid"`
	Name string  `yaml:"name,omitempty"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

func (b Base) identity(typ string) components.IdentityData {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		id = uuid.New()
	}
	return components.IdentityData{UUID: id, Kind: typ, Name: b.Name}
}

func (b Base) transform() components.TransformData {
	return components.TransformData{X: b.X, Y: b.Y, PrevX: b.X, PrevY: b.Y}
}

func baseOf(e *donburi.Entry) Base {
	var b Base
	if e.HasComponent(components.Identity) {
		id := components.Identity.Get(e)
		b.ID = id.UUID.String()
		b.Name = id.Name
	}
	if e.HasComponent(components.Transform) {
		t := components.Transform.Get(e)
		b.X, b.Y = t.X, t.Y
	}
	return b
}

// ShapeConfig describes a geom.Shape in scene files.
type ShapeConfig struct {
	Shape    string  `yaml:"shape,omitempty" validate:"omitempty,oneof=point circle aabb obb capsule"`
	Radius   float64 `yaml:"radius,omitempty" validate:"gte=0"`
	W        float64 `yaml:"w,omitempty" validate:"gte=0"`
	H        float64 `yaml:"h,omitempty" validate:"gte=0"`
	Length   float64 `yaml:"length,omitempty" validate:"gte=0"`
	Rotation float64 `yaml:"rotation,omitempty"`
}

func (s ShapeConfig) build() (geom.Shape, error) {
	k, err := geom.ParseKind(s.Shape)
	if err != nil {
		return geom.Shape{}, err
	}
	shape := geom.Shape{Kind: k, Radius: s.Radius, W: s.W, H: s.H, Length: s.Length, Rotation: s.Rotation}
	switch k {
	case geom.KindCircle:
		if s.Radius <= 0 {
			return shape, errors.New("circle needs a radius")
		}
	case geom.KindAABB, geom.KindOBB:
		if s.W <= 0 || s.H <= 0 {
			return shape, fmt.Errorf("%s needs w and h", k)
		}
	case geom.KindCapsule:
		if s.Radius <= 0 {
			return shape, errors.New("capsule needs a radius")
		}
	}
	return shape, nil
}

func shapeConfigOf(s geom.Shape) ShapeConfig {
	return ShapeConfig{
		Shape:    s.Kind.String(),
		Radius:   s.Radius,
		W:        s.W,
		H:        s.H,
		Length:   s.Length,
		Rotation: s.Rotation,
	}
}

// addCollider sets the collider and registers its broadphase proxy.
func addCollider(w donburi.World, e *donburi.Entry, static bool) {
	components.Collider.SetValue(e, components.ColliderData{IsStatic: static})
	systems.AddProxy(w, e)
}
