package locomotion

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/waddle/components"
)

// System runs the integrator over every player-controlled character.
type System struct {
	filter     *ecs.Filter4[components.Position, components.Motion, components.Waddle, components.Controlled]
	integrator *Integrator
}

// NewSystem creates a locomotion system for the world.
func NewSystem(w *ecs.World, integrator *Integrator) *System {
	return &System{
		filter:     ecs.NewFilter4[components.Position, components.Motion, components.Waddle, components.Controlled](w),
		integrator: integrator,
	}
}

// Update advances all controlled characters by one tick and returns how many
// were stepped.
func (s *System) Update(t Tick) int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		pos, motion, waddle, _ := query.Get()
		s.integrator.Step(pos, motion, waddle, t)
		n++
	}
	return n
}
