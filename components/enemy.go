package components

import (
	"github.com/dream-sky2020/divinebloom/shared/geom"
	"github.com/looplab/fsm"
	"github.com/yohamta/donburi"
)

type VisionType uint8

const (
	VisionCircle VisionType = iota
	VisionCone
	VisionHybrid // cone, or anything inside ProximityRadius
)

// AIConfigData is the authored behaviour of an AI entity.
type AIConfigData struct {
	VisionRadius       float64
	VisionAngle        float64 // degrees, full cone
	VisionType         VisionType
	ProximityRadius    float64
	RequireLineOfSight bool
	Speed              float64
	DetectedState      string  // chase or flee
	SuspicionTime      float64 // seconds of continuous sight to reach full suspicion
	ExitMultiplier     float64 // chase/flee ends beyond VisionRadius * ExitMultiplier
	StunDuration       int     // frames
	WanderInterval     int     // frames between direction changes
}

type BattleResult uint8

const (
	ResultNone BattleResult = iota
	ResultWin
	ResultFled
)

// AIStateData is the live decision state.
type AIStateData struct {
	FSM       *fsm.FSM
	MoveDir   geom.Vec
	Facing    geom.Vec
	Suspicion float64 // always within [0, 1]
	Timer     int     // per-state countdown
	Tint      float64 // 0 calm, 1 alerted; presentation hint only

	RecheckTimer     int
	FramesSinceCheck int
}

// AISensoryData is written by perception and read by the decision system.
type AISensoryData struct {
	DistanceSq       float64
	Visible          bool
	HasTarget        bool
	TargetX, TargetY float64
	PendingResult    BattleResult
}

var AIConfig = donburi.NewComponentType[AIConfigData]()
var AIState = donburi.NewComponentType[AIStateData]()
var AISensory = donburi.NewComponentType[AISensoryData]()
