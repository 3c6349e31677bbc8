package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/waddle/config"
)

// Fly is a free-fly camera that navigates with the movement keys while active.
type Fly struct {
	input InputSource

	speed           float64
	boostMultiplier float64
	sensitivity     float64

	pose   Pose
	active bool
}

// NewFly creates an inactive free-fly camera at the origin.
func NewFly(cfg config.FlyConfig, in InputSource) *Fly {
	boost := cfg.BoostMultiplier
	if boost <= 0 {
		boost = 1
	}
	return &Fly{
		input:           in,
		speed:           cfg.Speed,
		boostMultiplier: boost,
		sensitivity:     cfg.Sensitivity,
		pose:            IdentityPose(),
	}
}

// Activate takes over the viewpoint. A non-nil seed is copied verbatim so the
// view does not jump on hand-off.
func (c *Fly) Activate(seed *Pose) {
	c.active = true
	if seed != nil {
		c.pose = *seed
	}
}

// Deactivate freezes the camera where it is.
func (c *Fly) Deactivate() {
	c.active = false
}

// Active reports whether the camera currently owns the viewpoint.
func (c *Fly) Active() bool {
	return c.active
}

// Look yaws around world up and pitches around the local right axis.
func (c *Fly) Look(yaw, pitch float64) {
	q := mgl64.QuatRotate(yaw, worldUp).Mul(c.pose.Orientation).Mul(mgl64.QuatRotate(pitch, localRight))
	c.pose.Orientation = q.Normalize()
}

// Update moves the camera from input. Inactive updates do nothing.
func (c *Fly) Update(dt float64) {
	if !c.active || c.input == nil {
		return
	}

	p := c.input.Pointer()
	if p.DX != 0 || p.DY != 0 {
		c.Look(-p.DX*c.sensitivity, -p.DY*c.sensitivity)
	}

	keys := c.input.Keys()
	forward := c.pose.Forward()
	right := c.pose.Right()

	var dir mgl64.Vec3
	if keys.Forward {
		dir = dir.Add(forward)
	}
	if keys.Backward {
		dir = dir.Sub(forward)
	}
	if keys.StrafeRight {
		dir = dir.Add(right)
	}
	if keys.StrafeLeft {
		dir = dir.Sub(right)
	}
	if dir.Len() < 1e-9 {
		return
	}

	speed := c.speed
	if keys.Boost {
		speed *= c.boostMultiplier
	}
	c.pose.Position = c.pose.Position.Add(dir.Normalize().Mul(speed * dt))
}

// Pose returns the current camera pose.
func (c *Fly) Pose() Pose {
	return c.pose
}
