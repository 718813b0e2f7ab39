// Package rfactor contains the fixed-shape records emitted by the
// rFactor telemetry bridge and a UDP client that decodes them. The
// record layout mirrors the simulation's internals API; values are
// consumed as-is and never reinterpreted here.
package rfactor

// GamePhase is the race phase reported with every scoring update. The
// ordering of the values is meaningful: a numerically lower phase than
// previously observed signals an in-session restart.
type GamePhase uint8

const (
	PhaseBeforeSession          GamePhase = 0
	PhaseReconnaissanceLaps     GamePhase = 1
	PhaseGridWalkThrough        GamePhase = 2
	PhaseFormationLap           GamePhase = 3
	PhaseStartingLightCountdown GamePhase = 4
	PhaseGreenFlag              GamePhase = 5
	PhaseFullCourseYellow       GamePhase = 6
	PhaseSessionStopped         GamePhase = 7
	PhaseSessionOver            GamePhase = 8
)

// SessionType is the kind of session being run (testing, practice,
// qualifying, warmup or race). Values 1-4 are all practice sessions.
type SessionType uint8

const (
	SessionTesting    SessionType = 0
	SessionPractice   SessionType = 1
	SessionQualifying SessionType = 5
	SessionWarmup     SessionType = 6
	SessionRace       SessionType = 7
)

func (s SessionType) String() string {
	switch s {
	case SessionTesting:
		return "Testing"
	case SessionPractice, 2, 3, 4:
		return "Practice"
	case SessionQualifying:
		return "Qualifying"
	case SessionWarmup:
		return "Warmup"
	case SessionRace:
		return "Race"
	default:
		return ""
	}
}

// Sector indices as reported by the simulation. Exiting the pits the
// current sector is 1; it then cycles 2, 0 (third) and back to 1.
const (
	SectorOne   uint8 = 1
	SectorTwo   uint8 = 2
	SectorThree uint8 = 0
)

type Vec3 struct {
	X, Y, Z float32
}

// TelemWheel is the per-wheel state within a telemetry frame.
type TelemWheel struct {
	Rotation             float32
	SuspensionDeflection float32
	RideHeight           float32
	TireLoad             float32
	LateralForce         float32
	BrakeTemp            float32
	Pressure             float32
	Temperature          [3]float32 // left, center, right
}

// TelemInfo is one telemetry frame. Wheels are ordered front left,
// front right, rear left, rear right.
type TelemInfo struct {
	DeltaTime  float32
	LapNumber  int32
	LapStartET float32

	Pos        Vec3
	LocalVel   Vec3
	LocalAccel Vec3

	// rows of the orientation matrix
	OriX Vec3
	OriY Vec3
	OriZ Vec3

	Gear               int32
	EngineRPM          float32
	ClutchRPM          float32
	Fuel               float32
	Overheating        bool
	UnfilteredThrottle float32
	UnfilteredBrake    float32
	UnfilteredSteering float32
	UnfilteredClutch   float32

	Wheels [4]TelemWheel
}

func (TelemInfo) Event() Event {
	return EventTelemetry
}

// VehicleScoring is the per-vehicle entry within a scoring update.
type VehicleScoring struct {
	IsPlayer bool

	DriverName   string
	VehicleName  string
	VehicleClass string

	TotalLaps int32
	Sector    uint8

	LastLapTime float32
	LastSector1 float32
	LastSector2 float32
	CurSector1  float32
	CurSector2  float32
	LapStartET  float32
}

// ScoringInfo is one scoring update covering every vehicle in the
// session.
type ScoringInfo struct {
	Session   SessionType
	GamePhase GamePhase
	CurrentET float32
	TrackName string

	Vehicles []VehicleScoring
}

func (ScoringInfo) Event() Event {
	return EventScoring
}

// Player returns the player's vehicle entry, or nil if the update does
// not contain one.
func (s *ScoringInfo) Player() *VehicleScoring {
	for i := range s.Vehicles {
		if s.Vehicles[i].IsPlayer {
			return &s.Vehicles[i]
		}
	}

	return nil
}

// EnterRealtime signals that the driver has entered real-time driving.
type EnterRealtime struct{}

func (EnterRealtime) Event() Event {
	return EventEnterRealtime
}

// ExitRealtime signals that the driver has left real-time driving.
type ExitRealtime struct{}

func (ExitRealtime) Event() Event {
	return EventExitRealtime
}
