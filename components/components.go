// Package components defines ECS components for controlled characters.
package components

import "github.com/go-gl/mathgl/mgl64"

// Position tracks a character's world position across two consecutive ticks.
// Delta is always Current - Previous as of the last completed tick.
type Position struct {
	Current  mgl64.Vec3 `inspect:"label,fmt:%.3f"`
	Previous mgl64.Vec3 `inspect:"skip"`
	Delta    mgl64.Vec3 `inspect:"label,fmt:%.4f"`
}

// NewPosition returns a position resting at p with zero delta.
func NewPosition(p mgl64.Vec3) Position {
	return Position{Current: p, Previous: p}
}

// Motion holds the locomotion state derived each tick.
type Motion struct {
	Speed   float64 `inspect:"label,fmt:%.4f"` // |Position.Delta|, never negative
	Heading float64 `inspect:"angle"`          // Facing angle in radians
	Sliding bool    `inspect:"bool"`           // Boosted momentum still carrying the character
}

// Waddle holds the cosmetic gait oscillation.
type Waddle struct {
	Clock     float64 `inspect:"label,fmt:%.2f"` // Advances only while moving
	Offset    float64 `inspect:"skip"`           // Last applied lateral sway
	FootPhase float64 `inspect:"angle"`
	BodyTilt  float64 `inspect:"angle"`
}

// Controlled marks an entity driven by player input.
type Controlled struct {
	ID   uint32
	Name string
}
