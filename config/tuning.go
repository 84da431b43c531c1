package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Tuning is the on-disk override file. Sections missing from the file keep
// the values active when it was loaded.
type Tuning struct {
	Scene      Config           `yaml:"scene"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Perception PerceptionConfig `yaml:"perception"`
	Damage     DamageConfig     `yaml:"damage"`
	Trigger    TriggerConfig    `yaml:"trigger"`
	Simulation SimulationConfig `yaml:"simulation"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
}

var validate = validator.New()

// Current snapshots the active globals.
func Current() *Tuning {
	return &Tuning{
		Scene:      *C,
		Physics:    Physics,
		Perception: Perception,
		Damage:     Damage,
		Trigger:    Trigger,
		Simulation: Simulation,
		Player:     Player,
		Enemy:      Enemy,
	}
}

// LoadTuning reads a YAML override file on top of the active values.
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	return ParseTuning(data)
}

func ParseTuning(data []byte) (*Tuning, error) {
	t := Current()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tuning) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid tuning: %w", err)
	}
	return nil
}

// Apply installs the tuning as the active globals.
func (t *Tuning) Apply() {
	scene := t.Scene
	C = &scene
	Physics = t.Physics
	Perception = t.Perception
	Damage = t.Damage
	Trigger = t.Trigger
	Simulation = t.Simulation
	Player = t.Player
	Enemy = t.Enemy
}
