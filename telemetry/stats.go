package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated movement statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Ticks           int     `csv:"ticks"`

	// Per-tick displacement
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`
	Distance  float64 `csv:"distance"`

	// Fractions of ticks in the window
	SlideFraction float64 `csv:"slide_fraction"`
	FlyFraction   float64 `csv:"fly_fraction"`

	ElevationMean float64 `csv:"elevation_mean"`
	ModeSwitches  int     `csv:"mode_switches"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(math.Max(0, math.Min(1, p)), stat.Empirical, sorted, nil)
}

// ComputeSpeedStats returns the mean, standard deviation, median, 90th
// percentile and maximum of the values.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = floats.Max(sorted)

	return mean, std, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("distance", s.Distance),
		slog.Float64("slide_fraction", s.SlideFraction),
		slog.Float64("fly_fraction", s.FlyFraction),
		slog.Int("mode_switches", s.ModeSwitches),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"distance", s.Distance,
		"slide_fraction", s.SlideFraction,
		"fly_fraction", s.FlyFraction,
		"elevation_mean", s.ElevationMean,
		"mode_switches", s.ModeSwitches,
	)
}
