package telemetry

import (
	"github.com/pthm-cable/waddle/viewpoint"
)

// Collector accumulates tick records within time windows and produces
// WindowStats. It doubles as a viewpoint.Observer to count mode switches.
type Collector struct {
	windowTicks int
	dt          float64

	windowStartTick int

	speeds       []float64
	elevations   []float64
	slideTicks   int
	flyTicks     int
	modeSwitches int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
// dt is the simulation step in seconds.
func NewCollector(windowTicks int, dt float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		dt:          dt,
		speeds:      make([]float64, 0, windowTicks),
		elevations:  make([]float64, 0, windowTicks),
	}
}

// Record adds one tick to the current window.
func (c *Collector) Record(r TickRecord) {
	c.speeds = append(c.speeds, r.Speed)
	c.elevations = append(c.elevations, r.Y)
	if r.Sliding {
		c.slideTicks++
	}
	if r.Mode == viewpoint.ModeFly.String() {
		c.flyTicks++
	}
}

// ModeChanged counts a viewpoint mode switch.
func (c *Collector) ModeChanged(_, _ viewpoint.Mode) {
	c.modeSwitches++
}

// Pending returns how many ticks the current window holds.
func (c *Collector) Pending() int {
	return len(c.speeds)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int) WindowStats {
	s := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Ticks:           len(c.speeds),
		ModeSwitches:    c.modeSwitches,
	}

	s.SpeedMean, s.SpeedStd, s.SpeedP50, s.SpeedP90, s.SpeedMax = ComputeSpeedStats(c.speeds)
	for _, v := range c.speeds {
		s.Distance += v
	}
	if n := len(c.speeds); n > 0 {
		s.SlideFraction = float64(c.slideTicks) / float64(n)
		s.FlyFraction = float64(c.flyTicks) / float64(n)
		var sum float64
		for _, y := range c.elevations {
			sum += y
		}
		s.ElevationMean = sum / float64(n)
	}

	c.windowStartTick = currentTick
	c.speeds = c.speeds[:0]
	c.elevations = c.elevations[:0]
	c.slideTicks = 0
	c.flyTicks = 0
	c.modeSwitches = 0

	return s
}
