package terrain

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// NoiseConfig holds fractal noise parameters for the heightfield.
type NoiseConfig struct {
	Seed       int64
	Scale      float64 // Base frequency
	Octaves    int
	Lacunarity float64 // Frequency multiplier per octave
	Gain       float64 // Amplitude multiplier per octave
	Amplitude  float64 // Output height range is [0, Amplitude]
}

type chunkKey struct {
	X, Z int
}

// chunk is a square grid of precomputed heights.
type chunk struct {
	originX, originZ float64
	heights          []float64 // resolution*resolution, row-major in z
}

// Chunks is a heightfield generated lazily in square chunks around a focus point.
// Only loaded chunks report elevation; everything else is off terrain.
type Chunks struct {
	noise      opensimplex.Noise
	cfg        NoiseConfig
	size       float64
	resolution int
	radius     int
	loaded     map[chunkKey]*chunk
}

// NewChunks creates an empty chunked heightfield. Call Focus to load chunks.
func NewChunks(cfg NoiseConfig, chunkSize float64, resolution, radius int) *Chunks {
	if resolution < 2 {
		resolution = 2
	}
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	if radius < 0 {
		radius = 0
	}
	return &Chunks{
		noise:      opensimplex.NewNormalized(cfg.Seed),
		cfg:        cfg,
		size:       chunkSize,
		resolution: resolution,
		radius:     radius,
		loaded:     make(map[chunkKey]*chunk),
	}
}

// Focus loads every chunk within radius of the chunk containing (x, z)
// and evicts the rest.
func (c *Chunks) Focus(x, z float64) (loaded, evicted int) {
	center := c.keyFor(x, z)

	for key := range c.loaded {
		if abs(key.X-center.X) > c.radius || abs(key.Z-center.Z) > c.radius {
			delete(c.loaded, key)
			evicted++
		}
	}

	for dz := -c.radius; dz <= c.radius; dz++ {
		for dx := -c.radius; dx <= c.radius; dx++ {
			key := chunkKey{X: center.X + dx, Z: center.Z + dz}
			if _, ok := c.loaded[key]; ok {
				continue
			}
			c.loaded[key] = c.generate(key)
			loaded++
		}
	}
	return loaded, evicted
}

// Loaded returns the number of chunks currently in memory.
func (c *Chunks) Loaded() int {
	return len(c.loaded)
}

// ElevationAt bilinearly interpolates the loaded heightfield.
func (c *Chunks) ElevationAt(x, z float64) (float64, bool) {
	ch, ok := c.loaded[c.keyFor(x, z)]
	if !ok {
		return 0, false
	}

	step := c.size / float64(c.resolution-1)
	gx := (x - ch.originX) / step
	gz := (z - ch.originZ) / step

	ix := clampInt(int(math.Floor(gx)), 0, c.resolution-2)
	iz := clampInt(int(math.Floor(gz)), 0, c.resolution-2)
	fx := gx - float64(ix)
	fz := gz - float64(iz)

	h00 := ch.heights[iz*c.resolution+ix]
	h10 := ch.heights[iz*c.resolution+ix+1]
	h01 := ch.heights[(iz+1)*c.resolution+ix]
	h11 := ch.heights[(iz+1)*c.resolution+ix+1]

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	return top + (bottom-top)*fz, true
}

// Height evaluates the underlying noise directly, ignoring chunk loading.
func (c *Chunks) Height(x, z float64) float64 {
	freq := c.cfg.Scale
	amp := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < c.cfg.Octaves; i++ {
		sum += c.noise.Eval2(x*freq, z*freq) * amp
		norm += amp
		freq *= c.cfg.Lacunarity
		amp *= c.cfg.Gain
	}
	if norm == 0 {
		return 0
	}
	return sum / norm * c.cfg.Amplitude
}

func (c *Chunks) keyFor(x, z float64) chunkKey {
	return chunkKey{
		X: int(math.Floor(x / c.size)),
		Z: int(math.Floor(z / c.size)),
	}
}

func (c *Chunks) generate(key chunkKey) *chunk {
	ch := &chunk{
		originX: float64(key.X) * c.size,
		originZ: float64(key.Z) * c.size,
		heights: make([]float64, c.resolution*c.resolution),
	}
	step := c.size / float64(c.resolution-1)
	for iz := 0; iz < c.resolution; iz++ {
		for ix := 0; ix < c.resolution; ix++ {
			ch.heights[iz*c.resolution+ix] = c.Height(ch.originX+float64(ix)*step, ch.originZ+float64(iz)*step)
		}
	}
	return ch
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
