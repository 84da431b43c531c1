package scenedata

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"
)

// EntityLayer is the object group LoadTMX reads entities from.
const EntityLayer = "Entities"

// Object properties copied into record configs, by Tiled property type.
// Zero values are treated as absent, leaving the factory default in place.
var (
	stringProps = []string{
		"id", "name", "map", "entry", "encounter", "script", "button",
		"visionType", "detectedState", "shape", "condition",
	}
	floatProps = []string{
		"radius", "sensorRadius", "visionRadius", "visionAngle", "proximityRadius",
		"speed", "suspicionTime", "exitMultiplier", "length",
	}
	intProps  = []string{"health", "damage", "cooldown", "stunDuration", "wanderInterval", "lifetime"}
	boolProps = []string{"oneShot", "spent", "lineOfSight", "requireInside"}
	listProps = []string{"targets", "exclude", "actions"}
)

// LoadTMX converts the entity object layer of a Tiled map into a scene.
// The object class (or legacy type attribute) names the factory type.
// Rectangle objects are positioned by their centre.
func LoadTMX(fsys fs.FS, tmxPath string) (*Scene, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	s := &Scene{
		Header: Header{
			Version: Version,
			Config: SceneConfig{
				Name:   strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
				Width:  float64(levelMap.Width * levelMap.TileWidth),
				Height: float64(levelMap.Height * levelMap.TileHeight),
			},
		},
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != EntityLayer {
			continue
		}
		for _, o := range og.Objects {
			typ := o.Class
			if typ == "" {
				typ = o.Type //nolint:staticcheck // TMX uses type= attribute
			}
			if typ == "" {
				continue
			}
			s.Entities = append(s.Entities, EntityRecord{Type: typ, Config: objectConfig(o)})
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func objectConfig(o *tiled.Object) map[string]any {
	cfg := map[string]any{
		"x": o.X + o.Width/2,
		"y": o.Y + o.Height/2,
	}
	if o.Name != "" {
		cfg["name"] = o.Name
	}
	if o.Width > 0 && o.Height > 0 {
		cfg["w"] = o.Width
		cfg["h"] = o.Height
	}
	if o.Rotation != 0 {
		cfg["rotation"] = o.Rotation * math.Pi / 180
	}

	for _, k := range stringProps {
		if v := o.Properties.GetString(k); v != "" {
			cfg[k] = v
		}
	}
	for _, k := range floatProps {
		if v := o.Properties.GetFloat(k); v != 0 {
			cfg[k] = v
		}
	}
	for _, k := range intProps {
		if v := o.Properties.GetInt(k); v != 0 {
			cfg[k] = v
		}
	}
	for _, k := range boolProps {
		if o.Properties.GetBool(k) {
			cfg[k] = true
		}
	}
	for _, k := range listProps {
		if v := o.Properties.GetString(k); v != "" {
			cfg[k] = splitList(v)
		}
	}

	// "rules" is a comma list of rule types sharing the object's condition.
	if v := o.Properties.GetString("rules"); v != "" {
		var rules []any
		for _, typ := range splitList(v) {
			rule := map[string]any{"type": typ}
			if c, ok := cfg["condition"]; ok {
				rule["condition"] = c
			}
			if inside, ok := cfg["requireInside"]; ok {
				rule["requireInside"] = inside
			}
			rules = append(rules, rule)
		}
		cfg["rules"] = rules
	}
	return cfg
}

func splitList(v string) []any {
	var out []any
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
