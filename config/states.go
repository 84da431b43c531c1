package config

// AI states, as named in the looplab/fsm machine.
const (
	StateWander  = "wander"
	StateChase   = "chase"
	StateFlee    = "flee"
	StateStunned = "stunned"
)

// AI events.
const (
	EventDetectChase = "detect_chase"
	EventDetectFlee  = "detect_flee"
	EventLose        = "lose"
	EventStun        = "stun"
	EventRecover     = "recover"
)
