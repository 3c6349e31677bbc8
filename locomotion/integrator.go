// Package locomotion integrates player input into character movement: heading
// from the camera yaw, the waddle gait and the boost slide.
package locomotion

import (
	"math"

	"github.com/pthm-cable/waddle/components"
	"github.com/pthm-cable/waddle/config"
	"github.com/pthm-cable/waddle/input"
	"github.com/pthm-cable/waddle/terrain"
	"github.com/pthm-cable/waddle/viewpoint"
)

// Gait shape constants.
const (
	footSwing    = 0.3 // FootPhase amplitude
	bodySwing    = 0.1 // BodyTilt amplitude
	bounceHeight = 0.1 // Vertical bounce amplitude
	swayScale    = 0.5 // Lateral waddle scale
)

// Params holds locomotion tuning.
type Params struct {
	InputSpeed        float64
	BoostSpeed        float64
	WaddleFrequency   float64
	WaddleAmplitude   float64
	SlideDeceleration float64
	SlideStopSpeed    float64
	IdleDecay         float64
}

// ParamsFromConfig copies the character section of the config.
func ParamsFromConfig(cfg config.CharacterConfig) Params {
	return Params{
		InputSpeed:        cfg.InputSpeed,
		BoostSpeed:        cfg.BoostSpeed,
		WaddleFrequency:   cfg.WaddleFrequency,
		WaddleAmplitude:   cfg.WaddleAmplitude,
		SlideDeceleration: cfg.SlideDeceleration,
		SlideStopSpeed:    cfg.SlideStopSpeed,
		IdleDecay:         cfg.IdleDecay,
	}
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		InputSpeed:        4,
		BoostSpeed:        25,
		WaddleFrequency:   5,
		WaddleAmplitude:   0.15,
		SlideDeceleration: 0.95,
		SlideStopSpeed:    0.001,
		IdleDecay:         0.9,
	}
}

// Tick is the per-frame input to the integrator.
type Tick struct {
	Keys        input.Keys
	DT          float64
	Mode        viewpoint.Mode  // Viewpoint mode as of the previous tick
	HeadingHint float64         // Third-person camera yaw as of the previous tick
	Terrain     terrain.Sampler // nil means no terrain anywhere
}

// Integrator advances a character by one tick.
type Integrator struct {
	params Params
}

// NewIntegrator creates an integrator with the given tuning.
func NewIntegrator(p Params) *Integrator {
	return &Integrator{params: p}
}

// Params returns the integrator's tuning.
func (in *Integrator) Params() Params {
	return in.params
}

// Step advances one character. In fly mode the character ignores directional
// input and behaves as if idle.
func (in *Integrator) Step(pos *components.Position, motion *components.Motion, waddle *components.Waddle, t Tick) {
	p := in.params

	moving := t.Keys.AnyDirectional()
	switch t.Mode {
	case viewpoint.ModeFly:
		// The fly camera owns the movement keys.
		moving = false
	case viewpoint.ModeThirdPerson:
	}

	if moving {
		motion.Heading = t.HeadingHint + headingOffset(t.Keys)

		waddle.Clock += t.DT * p.WaddleFrequency
		offset := math.Sin(waddle.Clock) * p.WaddleAmplitude
		waddle.FootPhase = math.Sin(waddle.Clock*2) * footSwing
		waddle.BodyTilt = math.Sin(waddle.Clock) * bodySwing

		speed := p.InputSpeed
		if t.Keys.Boost {
			speed = p.BoostSpeed
			motion.Sliding = true
			waddle.FootPhase = 0
			waddle.BodyTilt = 0
		}

		sin, cos := math.Sincos(motion.Heading)
		pos.Current[0] -= sin * t.DT * speed
		pos.Current[2] -= cos * t.DT * speed

		if !motion.Sliding {
			sway := (offset - waddle.Offset) * swayScale
			pos.Current[0] += sway * cos
			pos.Current[2] -= sway * sin
			pos.Current[1] += math.Abs(math.Sin(waddle.Clock)) * bounceHeight
		}
		waddle.Offset = offset
	} else {
		waddle.FootPhase *= p.IdleDecay
		waddle.BodyTilt *= p.IdleDecay

		if motion.Sliding {
			residual := pos.Delta.Len()
			if residual < p.SlideStopSpeed {
				motion.Sliding = false
			} else {
				glide := residual * p.SlideDeceleration * math.Min(t.DT, 1)
				sin, cos := math.Sincos(motion.Heading)
				pos.Current[0] -= sin * glide
				pos.Current[2] -= cos * glide
			}
		}
	}

	in.snapToGround(pos, motion, waddle, t.Terrain)

	pos.Delta = pos.Current.Sub(pos.Previous)
	motion.Speed = pos.Delta.Len()
	pos.Previous = pos.Current
}

// snapToGround places the character on the terrain, or at y=0 when off terrain.
func (in *Integrator) snapToGround(pos *components.Position, motion *components.Motion, waddle *components.Waddle, ground terrain.Sampler) {
	if ground == nil {
		pos.Current[1] = 0
		return
	}
	elevation, ok := ground.ElevationAt(pos.Current[0], pos.Current[2])
	if !ok {
		pos.Current[1] = 0
		return
	}
	bounce := 0.0
	if !motion.Sliding {
		bounce = math.Abs(math.Sin(waddle.Clock)) * bounceHeight
	}
	pos.Current[1] = elevation + bounce
}

// headingOffset maps held movement keys to an angle relative to the camera
// yaw. Forward wins over backward, and left wins over right.
func headingOffset(k input.Keys) float64 {
	switch {
	case k.Forward:
		switch {
		case k.StrafeLeft:
			return math.Pi * 0.25
		case k.StrafeRight:
			return -math.Pi * 0.25
		}
		return 0
	case k.Backward:
		switch {
		case k.StrafeLeft:
			return math.Pi * 0.75
		case k.StrafeRight:
			return -math.Pi * 0.75
		}
		return -math.Pi
	case k.StrafeLeft:
		return math.Pi * 0.5
	case k.StrafeRight:
		return -math.Pi * 0.5
	}
	return 0
}

// SlideTicksBound returns an upper bound on the idle ticks needed for a slide
// starting at the given per-tick residual speed to stop.
func (in *Integrator) SlideTicksBound(initial float64) int {
	p := in.params
	if initial < p.SlideStopSpeed {
		return 1
	}
	return int(math.Ceil(math.Log(initial/p.SlideStopSpeed)/math.Log(1/p.SlideDeceleration))) + 1
}
