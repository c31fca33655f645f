package system

import (
	"time"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/core/event"
	"github.com/gridcrawl/crawl/internal/rules"
)

var directions = [8]component.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// WanderSystem stands in for monster AI: each tick every mobile monster
// requests a step in a random direction with the configured chance.
// Phase 0 (Input).
type WanderSystem struct {
	rng    rules.RNG
	chance float64
}

func NewWanderSystem(rng rules.RNG, chance float64) *WanderSystem {
	return &WanderSystem{rng: rng, chance: chance}
}

func (s *WanderSystem) Name() string     { return "wander" }
func (s *WanderSystem) Phase() ecs.Phase { return ecs.PhaseInput }

func (s *WanderSystem) Update(w *ecs.World, _ time.Duration) error {
	ecs.Each3(w, func(id ecs.EntityID, _ *component.Monster, pos *component.Position, mv *component.Movement) {
		if !rules.Chance(s.rng, s.chance) {
			return
		}
		step := directions[s.rng.Intn(len(directions))]
		if !mv.CanMoveDiagonally && step.X != 0 && step.Y != 0 {
			step.Y = 0
		}
		from := pos.Point()
		w.AddEvent(event.MoveRequested{Entity: id, From: from, To: from.Add(step)})
	})
	return nil
}
