// Package terrain provides elevation samplers for placing characters on the ground.
package terrain

import "math"

// Sampler reports the ground elevation at a world (x, z) position.
// ok is false when the position is off walkable terrain.
type Sampler interface {
	ElevationAt(x, z float64) (elevation float64, ok bool)
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(x, z float64) (float64, bool)

// ElevationAt calls f(x, z).
func (f SamplerFunc) ElevationAt(x, z float64) (float64, bool) {
	return f(x, z)
}

// None is a sampler with no terrain anywhere.
var None Sampler = SamplerFunc(func(x, z float64) (float64, bool) { return 0, false })

// Flat is a level plane. A zero HalfExtent makes the plane infinite;
// otherwise it covers the square |x|, |z| <= HalfExtent.
type Flat struct {
	Height     float64
	HalfExtent float64
}

// ElevationAt returns Height inside the plane.
func (f Flat) ElevationAt(x, z float64) (float64, bool) {
	if f.HalfExtent > 0 && (math.Abs(x) > f.HalfExtent || math.Abs(z) > f.HalfExtent) {
		return 0, false
	}
	return f.Height, true
}
