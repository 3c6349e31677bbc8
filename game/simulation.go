package game

import (
	"github.com/pthm-cable/waddle/locomotion"
	"github.com/pthm-cable/waddle/telemetry"
)

// Step runs a single tick. The order is fixed: input, terrain focus,
// locomotion, viewpoint, telemetry. Locomotion therefore sees the viewpoint
// mode and camera yaw published by the previous tick.
func (g *Game) Step() {
	dt := g.cfg.Simulation.DT
	g.perfCollector.StartTick()

	// 1. Scripted input
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	if g.script != nil {
		g.script.Apply(g.tick, &g.input)
	}

	// 2. Stream terrain around the player
	g.perfCollector.StartPhase(telemetry.PhaseTerrain)
	g.focusTerrain()

	// 3. Move the character
	g.perfCollector.StartPhase(telemetry.PhaseLocomotion)
	g.locomotion.Update(locomotion.Tick{
		Keys:        g.input.Keys(),
		DT:          dt,
		Mode:        g.viewpoint.Mode(),
		HeadingHint: g.thirdPerson.Yaw(),
		Terrain:     g.ground,
	})

	// 4. Toggle events, camera strategies, published pose
	g.perfCollector.StartPhase(telemetry.PhaseViewpoint)
	g.viewpoint.Update(dt)

	g.tick++

	// 5. Telemetry
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTick()

	g.perfCollector.EndTick()
}

// Run steps until the tick limit is reached, or for n ticks when n > 0.
func (g *Game) Run(n int) {
	for i := 0; n <= 0 || i < n; i++ {
		if g.Done() {
			return
		}
		g.Step()
	}
}

// focusTerrain keeps the chunk window centered on the player.
func (g *Game) focusTerrain() {
	if g.chunks == nil {
		return
	}
	p := g.playerPosition()
	loaded, evicted := g.chunks.Focus(p.X(), p.Z())
	if loaded > 0 || evicted > 0 {
		g.logger.Debug("terrain chunks streamed",
			"tick", g.tick,
			"loaded", loaded,
			"evicted", evicted,
			"resident", g.chunks.Loaded(),
		)
	}
}
