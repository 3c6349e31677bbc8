package main

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/waddle/config"
	"github.com/pthm-cable/waddle/game"
	"github.com/pthm-cable/waddle/input"
)

// Targets are the movement characteristics the optimizer steers toward.
type Targets struct {
	WalkSpeed     float64 // Horizontal units per second while walking
	BoostSpeed    float64 // Horizontal units per second while boosting
	GlideDistance float64 // Horizontal distance covered after boost release
}

// Scenario phase lengths in ticks.
const (
	walkTicks   = 120
	boostTicks  = 60
	warmupTicks = 10 // skipped at the start of each phase
)

// FitnessEvaluator runs scripted headless runs and scores them against the
// targets.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	targets    Targets
	logger     *slog.Logger

	mu          sync.Mutex
	bestFitness float64
	lastResult  runResult // averaged over seeds, from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targets:     targets,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		bestFitness: math.Inf(1),
	}
}

// LastResult returns the seed-averaged measurements of the most recent
// evaluation.
func (fe *FitnessEvaluator) LastResult() runResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// runResult holds the measurements from a single run.
type runResult struct {
	walkSpeed     float64
	boostSpeed    float64
	glideDistance float64
	glideTicks    int
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runScenario(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var avg runResult
	var totalFitness float64
	for _, r := range results {
		totalFitness += fe.computeFitness(r)
		avg.walkSpeed += r.walkSpeed
		avg.boostSpeed += r.boostSpeed
		avg.glideDistance += r.glideDistance
		avg.glideTicks += r.glideTicks
	}

	n := float64(len(fe.seeds))
	avg.walkSpeed /= n
	avg.boostSpeed /= n
	avg.glideDistance /= n
	avg.glideTicks /= len(fe.seeds)
	fitness := totalFitness / n

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.lastResult = avg
	fe.mu.Unlock()

	return fitness
}

// runScenario walks, boosts and releases on the terrain generated by seed.
func (fe *FitnessEvaluator) runScenario(base *config.Config, seed int64) runResult {
	cfg := *base
	releaseTick := walkTicks + boostTicks
	cfg.Simulation.MaxTicks = releaseTick + cfg.Derived.MaxSlideTicks + 1

	script := input.NewScript([]input.Keyframe{
		{Tick: 0, Keys: input.Keys{Forward: true}},
		{Tick: walkTicks, Keys: input.Keys{Forward: true, Boost: true}},
		{Tick: releaseTick},
	})

	g, err := game.New(&cfg, game.Options{Seed: seed, Script: script, Logger: fe.logger})
	if err != nil {
		fe.logger.Error("failed to start scenario", "error", err)
		return runResult{}
	}
	defer g.Close()

	dt := cfg.Simulation.DT
	var walk, boost []float64
	var result runResult

	for !g.Done() {
		tick := g.Tick()
		g.Step()

		pos, motion, _ := g.Player()
		d := math.Hypot(pos.Delta.X(), pos.Delta.Z())

		switch {
		case tick < walkTicks:
			if tick >= warmupTicks {
				walk = append(walk, d/dt)
			}
		case tick < releaseTick:
			if tick >= walkTicks+warmupTicks {
				boost = append(boost, d/dt)
			}
		default:
			if !motion.Sliding {
				return fe.finish(result, walk, boost)
			}
			result.glideDistance += d
			result.glideTicks++
		}
	}
	return fe.finish(result, walk, boost)
}

func (fe *FitnessEvaluator) finish(r runResult, walk, boost []float64) runResult {
	if len(walk) > 0 {
		r.walkSpeed = stat.Mean(walk, nil)
	}
	if len(boost) > 0 {
		r.boostSpeed = stat.Mean(boost, nil)
	}
	return r
}

// copyConfig creates a copy of the base config. Config holds only values,
// so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness is the sum of squared relative errors against the targets.
func (fe *FitnessEvaluator) computeFitness(r runResult) float64 {
	return relErr2(r.walkSpeed, fe.targets.WalkSpeed) +
		relErr2(r.boostSpeed, fe.targets.BoostSpeed) +
		relErr2(r.glideDistance, fe.targets.GlideDistance)
}

// relErr2 returns ((got - want) / want)^2, or 0 when there is no target.
func relErr2(got, want float64) float64 {
	if want <= 0 {
		return 0
	}
	e := (got - want) / want
	return e * e
}
