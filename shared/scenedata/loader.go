package scenedata

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Parse decodes and validates a YAML scene description.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes a scene as YAML.
func Marshal(s *Scene) ([]byte, error) {
	return yaml.Marshal(s)
}

// Load resolves a map id inside fsys: <id>.yaml, <id>.yml, then <id>.tmx.
func Load(fsys fs.FS, id string) (*Scene, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		data, err := fs.ReadFile(fsys, id+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read scene %s: %w", id, err)
		}
		return Parse(data)
	}

	tmxPath := id + ".tmx"
	if _, err := fs.Stat(fsys, tmxPath); err != nil {
		return nil, fmt.Errorf("scene %s: %w", id, fs.ErrNotExist)
	}
	return LoadTMX(fsys, tmxPath)
}
