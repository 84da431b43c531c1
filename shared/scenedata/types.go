// Package scenedata describes scenes as plain data: a header plus a list of
// entity records, loaded from YAML scene files or Tiled TMX maps.
// It has no dependencies on ebitengine, donburi, or resolv.
package scenedata

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Version is the scene file format this package reads and writes.
const Version = 1

var ErrUnsupportedVersion = errors.New("unsupported scene version")

// Scene is a complete scene description.
type Scene struct {
	Header   Header         `yaml:"header" msgpack:"header"`
	Entities []EntityRecord `yaml:"entities" msgpack:"entities" validate:"dive"`
}

type Header struct {
	Version int         `yaml:"version" msgpack:"version"`
	Config  SceneConfig `yaml:"config" msgpack:"config"`
}

// SceneConfig carries the scene name and the map bounds bodies are clamped to.
type SceneConfig struct {
	Name   string  `yaml:"name" msgpack:"name" validate:"required"`
	Width  float64 `yaml:"width" msgpack:"width" validate:"gt=0"`
	Height float64 `yaml:"height" msgpack:"height" validate:"gt=0"`
}

// EntityRecord is one serialized entity: a factory type plus its config.
type EntityRecord struct {
	Type   string         `yaml:"type" msgpack:"type" validate:"required"`
	Config map[string]any `yaml:"config" msgpack:"config"`
}

var validate = validator.New()

func (s *Scene) Validate() error {
	if s.Header.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Header.Version)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid scene %q: %w", s.Header.Config.Name, err)
	}
	return nil
}

// Find returns the first record of the given type whose config name matches.
func (s *Scene) Find(typ, name string) (EntityRecord, bool) {
	for _, r := range s.Entities {
		if r.Type != typ {
			continue
		}
		if n, _ := r.Config["name"].(string); n == name {
			return r, true
		}
	}
	return EntityRecord{}, false
}
