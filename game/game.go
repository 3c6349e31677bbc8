// Package game composes the ECS world, the locomotion system, the viewpoint
// controller, terrain, input, the inspector panel and telemetry, and runs
// them in a fixed per-tick order.
package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/waddle/camera"
	"github.com/pthm-cable/waddle/components"
	"github.com/pthm-cable/waddle/config"
	"github.com/pthm-cable/waddle/input"
	"github.com/pthm-cable/waddle/inspector"
	"github.com/pthm-cable/waddle/locomotion"
	"github.com/pthm-cable/waddle/telemetry"
	"github.com/pthm-cable/waddle/terrain"
	"github.com/pthm-cable/waddle/viewpoint"
)

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	world *ecs.World

	playerMapper *ecs.Map4[components.Position, components.Motion, components.Waddle, components.Controlled]
	posMap       *ecs.Map[components.Position]
	motionMap    *ecs.Map[components.Motion]
	waddleMap    *ecs.Map[components.Waddle]
	player       ecs.Entity

	locomotion  *locomotion.System
	thirdPerson *camera.ThirdPerson
	fly         *camera.Fly
	viewpoint   *viewpoint.Controller

	ground terrain.Sampler
	chunks *terrain.Chunks // nil when the ground is flat

	input  input.State
	script *input.Script

	panel *inspector.Panel
	color *inspector.Color

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	tick int
}

// New builds a game from cfg. The caller must Close it.
func New(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:           cfg,
		logger:        logger,
		world:         world,
		playerMapper:  ecs.NewMap4[components.Position, components.Motion, components.Waddle, components.Controlled](world),
		posMap:        ecs.NewMap[components.Position](world),
		motionMap:     ecs.NewMap[components.Motion](world),
		waddleMap:     ecs.NewMap[components.Waddle](world),
		script:        opts.Script,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	g.spawnPlayer()

	integrator := locomotion.NewIntegrator(locomotion.ParamsFromConfig(cfg.Character))
	g.locomotion = locomotion.NewSystem(world, integrator)

	g.ground, g.chunks = newGround(cfg.Terrain, opts.Seed)

	g.collector = telemetry.NewCollector(cfg.Derived.StatsWindowTicks, cfg.Simulation.DT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	g.thirdPerson = camera.NewThirdPerson(cfg.ThirdPerson, g.playerPosition, &g.input)
	g.fly = camera.NewFly(cfg.Fly, &g.input)
	g.viewpoint = viewpoint.New(g.thirdPerson, g.fly, &g.input,
		viewpoint.WithObserver(g.collector),
		viewpoint.WithLogger(logger),
	)

	if err := g.setupPanel(); err != nil {
		return nil, fmt.Errorf("building inspector panel: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.RecordTrajectory)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	logger.Info("game ready",
		"character", cfg.Character.Name,
		"spawn", g.playerPosition(),
		"flat_terrain", g.chunks == nil,
		"output_dir", om.Dir(),
	)

	return g, nil
}

// newGround builds the terrain sampler from config. seed overrides the
// configured noise seed when non-zero.
func newGround(cfg config.TerrainConfig, seed int64) (terrain.Sampler, *terrain.Chunks) {
	if cfg.Flat {
		return terrain.Flat{Height: cfg.FlatHeight, HalfExtent: cfg.FlatExtent}, nil
	}
	if seed == 0 {
		seed = cfg.Seed
	}
	chunks := terrain.NewChunks(terrain.NoiseConfig{
		Seed:       seed,
		Scale:      cfg.Scale,
		Octaves:    cfg.Octaves,
		Lacunarity: cfg.Lacunarity,
		Gain:       cfg.Gain,
		Amplitude:  cfg.Amplitude,
	}, cfg.ChunkSize, cfg.Resolution, cfg.Radius)
	return chunks, chunks
}

// spawnPlayer creates the controlled character at the configured spawn.
func (g *Game) spawnPlayer() {
	s := g.cfg.Character.Spawn
	pos := components.NewPosition(mgl64.Vec3{s.X, s.Y, s.Z})
	motion := components.Motion{}
	waddle := components.Waddle{}
	ctrl := components.Controlled{ID: 1, Name: g.cfg.Character.Name}
	g.player = g.playerMapper.NewEntity(&pos, &motion, &waddle, &ctrl)
}

// playerPosition is the follow target of the third-person camera.
func (g *Game) playerPosition() mgl64.Vec3 {
	return g.posMap.Get(g.player).Current
}

// Input returns the input state the game reads each tick. Callers without a
// script drive the game through it.
func (g *Game) Input() *input.State {
	return &g.input
}

// Panel returns the inspector panel.
func (g *Game) Panel() *inspector.Panel {
	return g.panel
}

// Viewpoint returns the viewpoint controller.
func (g *Game) Viewpoint() *viewpoint.Controller {
	return g.viewpoint
}

// Player returns copies of the player's components.
func (g *Game) Player() (components.Position, components.Motion, components.Waddle) {
	return *g.posMap.Get(g.player), *g.motionMap.Get(g.player), *g.waddleMap.Get(g.player)
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int {
	return g.tick
}

// Done reports whether the configured tick limit has been reached.
func (g *Game) Done() bool {
	return g.cfg.Simulation.MaxTicks > 0 && g.tick >= g.cfg.Simulation.MaxTicks
}

// Close flushes a final partial stats window and closes output files.
func (g *Game) Close() error {
	if g.collector.Pending() > 0 {
		g.flushWindow()
	}
	if err := g.outputManager.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
