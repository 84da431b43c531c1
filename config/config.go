package config

// Config holds the scene defaults used when a scene header omits its size.
type Config struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`
}

// PhysicsConfig tunes the collision resolver.
type PhysicsConfig struct {
	CollisionIterations int     `yaml:"collisionIterations" validate:"gte=1"`
	BroadphaseMargin    float64 `yaml:"broadphaseMargin" validate:"gte=0"`
	GridCellSize        int     `yaml:"gridCellSize" validate:"gt=0"` // resolv space cell size
}

// PerceptionConfig tunes AI sensing.
type PerceptionConfig struct {
	MinRecheckFrames      int     `yaml:"minRecheckFrames" validate:"gte=1"`
	MaxRecheckFrames      int     `yaml:"maxRecheckFrames" validate:"gtefield=MinRecheckFrames"`
	FarDistance           float64 `yaml:"farDistance" validate:"gt=0"`
	Jitter                float64 `yaml:"jitter" validate:"gte=0,lt=1"` // fraction of the interval
	SuspicionDecayRate    float64 `yaml:"suspicionDecayRate" validate:"gte=0"`
	DefaultExitMultiplier float64 `yaml:"defaultExitMultiplier" validate:"gte=1"`
}

// DamageConfig sizes the damage ring.
type DamageConfig struct {
	QueueCapacity int `yaml:"queueCapacity" validate:"gt=0"`
}

type TriggerConfig struct {
	DefaultCooldown int `yaml:"defaultCooldown" validate:"gte=0"`
}

// SimulationConfig drives the tick.
type SimulationConfig struct {
	TickRate int   `yaml:"tickRate" validate:"gt=0"`
	Seed     int64 `yaml:"seed"`
}

// PlayerConfig holds factory defaults for the player.
type PlayerConfig struct {
	Speed  float64 `yaml:"speed" validate:"gt=0"`
	Radius float64 `yaml:"radius" validate:"gt=0"`
	Health int     `yaml:"health" validate:"gt=0"`
}

// EnemyConfig holds factory defaults for enemies. Per-entity config overrides them.
type EnemyConfig struct {
	Radius          float64 `yaml:"radius" validate:"gt=0"`
	SensorRadius    float64 `yaml:"sensorRadius" validate:"gt=0"`
	Health          int     `yaml:"health" validate:"gt=0"`
	VisionRadius    float64 `yaml:"visionRadius" validate:"gt=0"`
	VisionAngle     float64 `yaml:"visionAngle" validate:"gt=0,lte=360"`
	VisionType      string  `yaml:"visionType" validate:"oneof=circle cone hybrid"`
	ProximityRadius float64 `yaml:"proximityRadius" validate:"gte=0"`
	Speed           float64 `yaml:"speed" validate:"gte=0"`
	DetectedState   string  `yaml:"detectedState" validate:"oneof=chase flee"`
	SuspicionTime   float64 `yaml:"suspicionTime" validate:"gt=0"`
	StunDuration    int     `yaml:"stunDuration" validate:"gte=0"`
	WanderInterval  int     `yaml:"wanderInterval" validate:"gt=0"`
}

var C *Config
var Physics PhysicsConfig
var Perception PerceptionConfig
var Damage DamageConfig
var Trigger TriggerConfig
var Simulation SimulationConfig
var Player PlayerConfig
var Enemy EnemyConfig

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Physics = PhysicsConfig{
		CollisionIterations: 2,
		BroadphaseMargin:    2.0,
		GridCellSize:        16,
	}

	Perception = PerceptionConfig{
		MinRecheckFrames:      2,   // Near targets are re-checked almost every tick
		MaxRecheckFrames:      20,  // Far targets every third of a second
		FarDistance:           480, // Distance at which the slowest interval applies
		Jitter:                0.2,
		SuspicionDecayRate:    0.5, // Suspicion lost per second while unseen
		DefaultExitMultiplier: 1.5,
	}

	Damage = DamageConfig{
		QueueCapacity: 256,
	}

	Trigger = TriggerConfig{
		DefaultCooldown: 0,
	}

	Simulation = SimulationConfig{
		TickRate: 60,
		Seed:     1,
	}

	Player = PlayerConfig{
		Speed:  2.0,
		Radius: 8,
		Health: 100,
	}

	Enemy = EnemyConfig{
		Radius:          8,
		SensorRadius:    14,
		Health:          30,
		VisionRadius:    160,
		VisionAngle:     90,
		VisionType:      "hybrid",
		ProximityRadius: 48,
		Speed:           1.5,
		DetectedState:   StateChase,
		SuspicionTime:   1.0,
		StunDuration:    120,
		WanderInterval:  90,
	}
}
