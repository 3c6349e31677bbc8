// Package camera provides the viewpoint strategies driven by the viewpoint
// controller: a third-person follow camera and a free-fly camera.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/waddle/input"
)

var (
	worldUp    = mgl64.Vec3{0, 1, 0}
	localRight = mgl64.Vec3{1, 0, 0}
	localFwd   = mgl64.Vec3{0, 0, -1}
)

// Pose is a camera position and orientation. An identity orientation looks
// down -Z with +Y up.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// IdentityPose returns a pose at the origin looking down -Z.
func IdentityPose() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// Forward returns the view direction.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Orientation.Rotate(localFwd)
}

// Right returns the camera's local right axis.
func (p Pose) Right() mgl64.Vec3 {
	return p.Orientation.Rotate(localRight)
}

// Yaw returns the heading of the view direction around world up.
// Zero yaw looks down -Z.
func (p Pose) Yaw() float64 {
	f := p.Forward()
	return math.Atan2(-f[0], -f[2])
}

// ApproxEqual reports whether both poses match within eps. Orientations
// q and -q are the same rotation.
func (p Pose) ApproxEqual(o Pose, eps float64) bool {
	if !p.Position.ApproxEqualThreshold(o.Position, eps) {
		return false
	}
	return 1-math.Abs(p.Orientation.Dot(o.Orientation)) <= eps
}

// InputSource is the read-only per-frame input a camera consumes.
type InputSource interface {
	Keys() input.Keys
	Pointer() input.Pointer
}

// lookRotation returns the roll-free orientation looking along forward.
func lookRotation(forward mgl64.Vec3) mgl64.Quat {
	if forward.Len() < 1e-9 {
		return mgl64.QuatIdent()
	}
	f := forward.Normalize()
	yaw := math.Atan2(-f[0], -f[2])
	pitch := math.Asin(mgl64.Clamp(f[1], -1, 1))
	return mgl64.QuatRotate(yaw, worldUp).Mul(mgl64.QuatRotate(pitch, localRight)).Normalize()
}

// smoothingAlpha converts an exponential rate into a per-tick blend factor.
func smoothingAlpha(rate, dt float64) float64 {
	if rate <= 0 {
		return 1
	}
	return 1 - math.Exp(-rate*dt)
}
