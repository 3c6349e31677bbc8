package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/waddle/config"
)

// TargetFunc returns the world position the follow camera tracks.
type TargetFunc func() mgl64.Vec3

// ThirdPerson orbits a target at a fixed distance using spherical angles.
// Theta is the yaw around the target; the camera sits behind the target along
// (sin Theta, 0, cos Theta), so Theta is also the yaw the camera looks along.
type ThirdPerson struct {
	target TargetFunc
	input  InputSource

	Theta    float64
	Phi      float64
	Distance float64

	minPhi, maxPhi float64
	targetY        float64
	smoothing      float64
	sensitivity    float64

	pose        Pose
	active      bool
	initialized bool
}

// NewThirdPerson creates a follow camera. It starts inactive.
func NewThirdPerson(cfg config.ThirdPersonConfig, target TargetFunc, in InputSource) *ThirdPerson {
	return &ThirdPerson{
		target:      target,
		input:       in,
		Theta:       cfg.Theta,
		Phi:         mgl64.Clamp(cfg.Phi, cfg.MinPhi, cfg.MaxPhi),
		Distance:    cfg.Distance,
		minPhi:      cfg.MinPhi,
		maxPhi:      cfg.MaxPhi,
		targetY:     cfg.TargetY,
		smoothing:   cfg.Smoothing,
		sensitivity: cfg.Sensitivity,
		pose:        IdentityPose(),
	}
}

// Activate makes the camera respond to pointer input. The seed is ignored:
// the follow position is always recomputed from the target.
func (c *ThirdPerson) Activate(_ *Pose) {
	c.active = true
}

// Deactivate stops pointer orbiting. The camera keeps tracking the target.
func (c *ThirdPerson) Deactivate() {
	c.active = false
}

// Active reports whether the camera currently owns the viewpoint.
func (c *ThirdPerson) Active() bool {
	return c.active
}

// Yaw returns Theta, the heading the character moves relative to.
func (c *ThirdPerson) Yaw() float64 {
	return c.Theta
}

// Orbit rotates the camera around the target. Pitch is clamped.
func (c *ThirdPerson) Orbit(dTheta, dPhi float64) {
	c.Theta = wrapAngle(c.Theta + dTheta)
	c.Phi = mgl64.Clamp(c.Phi+dPhi, c.minPhi, c.maxPhi)
}

// Update advances the follow position toward its goal. It runs whether or
// not the camera is active so a later activation starts converged.
func (c *ThirdPerson) Update(dt float64) {
	if c.active && c.input != nil {
		p := c.input.Pointer()
		if p.DX != 0 || p.DY != 0 {
			c.Orbit(-p.DX*c.sensitivity, p.DY*c.sensitivity)
		}
	}

	focus := c.focus()
	goal := focus.Add(c.offset())

	if !c.initialized {
		c.pose.Position = goal
		c.initialized = true
	} else {
		alpha := smoothingAlpha(c.smoothing, dt)
		c.pose.Position = c.pose.Position.Add(goal.Sub(c.pose.Position).Mul(alpha))
	}
	c.pose.Orientation = lookRotation(focus.Sub(c.pose.Position))
}

// Pose returns the current camera pose.
func (c *ThirdPerson) Pose() Pose {
	return c.pose
}

func (c *ThirdPerson) focus() mgl64.Vec3 {
	var p mgl64.Vec3
	if c.target != nil {
		p = c.target()
	}
	return p.Add(mgl64.Vec3{0, c.targetY, 0})
}

// offset returns the camera position relative to the focus point.
func (c *ThirdPerson) offset() mgl64.Vec3 {
	cosPhi := math.Cos(c.Phi)
	return mgl64.Vec3{
		c.Distance * math.Sin(c.Theta) * cosPhi,
		c.Distance * math.Sin(c.Phi),
		c.Distance * math.Cos(c.Theta) * cosPhi,
	}
}

// wrapAngle wraps an angle to [-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
