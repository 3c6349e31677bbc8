// Package telemetry records the character trajectory and the viewpoint per
// tick, aggregates windowed movement statistics and times the tick phases.
package telemetry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/waddle/components"
)

// TickRecord is one row of trajectory.csv.
type TickRecord struct {
	Tick    int     `csv:"tick"`
	SimTime float64 `csv:"sim_time"`

	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	Z float64 `csv:"z"`

	Speed   float64 `csv:"speed"` // Displacement this tick
	Heading float64 `csv:"heading"`
	Sliding bool    `csv:"sliding"`

	Clock     float64 `csv:"waddle_clock"`
	Offset    float64 `csv:"waddle_offset"`
	FootPhase float64 `csv:"foot_phase"`
	BodyTilt  float64 `csv:"body_tilt"`

	Mode    string  `csv:"mode"`
	CameraX float64 `csv:"camera_x"`
	CameraY float64 `csv:"camera_y"`
	CameraZ float64 `csv:"camera_z"`
}

// NewTickRecord flattens the character state and the published camera
// position into a record.
func NewTickRecord(tick int, simTime float64, pos components.Position, motion components.Motion, waddle components.Waddle, mode string, camera mgl64.Vec3) TickRecord {
	return TickRecord{
		Tick:      tick,
		SimTime:   simTime,
		X:         pos.Current.X(),
		Y:         pos.Current.Y(),
		Z:         pos.Current.Z(),
		Speed:     motion.Speed,
		Heading:   motion.Heading,
		Sliding:   motion.Sliding,
		Clock:     waddle.Clock,
		Offset:    waddle.Offset,
		FootPhase: waddle.FootPhase,
		BodyTilt:  waddle.BodyTilt,
		Mode:      mode,
		CameraX:   camera.X(),
		CameraY:   camera.Y(),
		CameraZ:   camera.Z(),
	}
}
