package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/core/event"
)

// HealthSystem applies Damage and Heal events in queue order. Dead
// non-player entities are queued for destruction at tick end; players stay
// so the game can show their corpse. Phase 3 (PostUpdate).
type HealthSystem struct {
	log *zap.Logger
}

func NewHealthSystem(log *zap.Logger) *HealthSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthSystem{log: log}
}

func (s *HealthSystem) Name() string     { return "health" }
func (s *HealthSystem) Phase() ecs.Phase { return ecs.PhasePostUpdate }

func (s *HealthSystem) Update(w *ecs.World, _ time.Duration) error {
	ecs.EachEvent(w, func(ev any) {
		switch e := ev.(type) {
		case event.Damage:
			s.damage(w, e)
		case event.Heal:
			s.heal(w, e)
		}
	})
	return nil
}

func (s *HealthSystem) damage(w *ecs.World, e event.Damage) {
	h, ok := ecs.Get[component.Health](w, e.Target)
	if !ok || !h.Alive() {
		return
	}
	taken := h.Damage(e.Amount)
	died := !h.Alive()
	w.AddEvent(event.DamageApplied{Target: e.Target, Amount: taken, Died: died})
	if !died {
		return
	}
	w.AddEvent(event.EntityDied{Entity: e.Target, Killer: e.Source})
	s.log.Info("entity died",
		zap.Stringer("entity", e.Target),
		zap.String("cause", e.Type),
		zap.Uint64("tick", w.CurrentTick()),
	)
	if !ecs.Has[component.PlayerControlled](w, e.Target) {
		w.MarkForDestruction(e.Target)
	}
}

func (s *HealthSystem) heal(w *ecs.World, e event.Heal) {
	h, ok := ecs.Get[component.Health](w, e.Target)
	if !ok {
		return
	}
	w.AddEvent(event.HealingApplied{Target: e.Target, Amount: h.Heal(e.Amount)})
}
