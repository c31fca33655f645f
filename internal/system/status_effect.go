package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/core/event"
	"github.com/gridcrawl/crawl/internal/data"
	"github.com/gridcrawl/crawl/internal/rules"
)

// timedEffect is satisfied by pointers to every status effect component.
type timedEffect[T any] interface {
	*T
	Effect() *component.TimedEffect
}

// effectTrack ties an effect kind to its component table.
type effectTrack struct {
	kind component.EffectKind
	typ  ecs.ComponentType
	tick func(w *ecs.World, ids []ecs.EntityID) int
}

var effectTracks = []effectTrack{
	{component.EffectPoisoned, ecs.TypeOf[component.Poisoned](), decrement[component.Poisoned]},
	{component.EffectOnFire, ecs.TypeOf[component.OnFire](), decrement[component.OnFire]},
	{component.EffectBlessed, ecs.TypeOf[component.Blessed](), decrement[component.Blessed]},
	{component.EffectCursed, ecs.TypeOf[component.Cursed](), decrement[component.Cursed]},
	{component.EffectWet, ecs.TypeOf[component.Wet](), decrement[component.Wet]},
}

var flammableType = ecs.TypeOf[component.Flammable]()

// StatusEffectSystem applies periodic effects, spreads fire and expires
// timed effects. Phase 2 (Update).
type StatusEffectSystem struct {
	effects *data.EffectTable
	rng     rules.RNG
	log     *zap.Logger
}

func NewStatusEffectSystem(effects *data.EffectTable, rng rules.RNG, log *zap.Logger) *StatusEffectSystem {
	if effects == nil {
		effects = data.DefaultEffects()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &StatusEffectSystem{effects: effects, rng: rng, log: log}
}

func (s *StatusEffectSystem) Name() string     { return "status_effects" }
func (s *StatusEffectSystem) Phase() ecs.Phase { return ecs.PhaseUpdate }

func (s *StatusEffectSystem) Update(w *ecs.World, _ time.Duration) error {
	// Only instances present now are decremented this tick. Fire lit by
	// spreading starts counting next tick.
	live := make([][]ecs.EntityID, len(effectTracks))
	for i, tr := range effectTracks {
		live[i] = w.Query(tr.typ)
	}

	s.poison(w, live[component.EffectPoisoned])
	s.fire(w, live[component.EffectOnFire])

	for i, tr := range effectTracks {
		if n := tr.tick(w, live[i]); n > 0 {
			s.log.Debug("effects expired", zap.Stringer("kind", tr.kind), zap.Int("count", n))
		}
	}
	return nil
}

func (s *StatusEffectSystem) poison(w *ecs.World, ids []ecs.EntityID) {
	def := s.effects.Get(component.EffectPoisoned.String())
	for _, id := range ids {
		p, ok := ecs.Get[component.Poisoned](w, id)
		if !ok || p.Expired() || !ecs.Has[component.Health](w, id) {
			continue
		}
		amount := p.DamagePerTick
		if amount <= 0 {
			amount = def.Damage
		}
		w.AddEvent(event.Damage{Target: id, Amount: amount, Type: "poison", Source: p.Source})
	}
}

func (s *StatusEffectSystem) fire(w *ecs.World, ids []ecs.EntityID) {
	def := s.effects.Get(component.EffectOnFire.String())
	for _, id := range ids {
		f, ok := ecs.Get[component.OnFire](w, id)
		if !ok || f.Expired() {
			continue
		}
		if ecs.Has[component.Health](w, id) {
			amount := f.Damage
			if amount <= 0 {
				amount = def.Damage
			}
			if fl, ok := ecs.Get[component.Flammable](w, id); ok {
				amount = max(0, amount-fl.FireResistance)
			}
			if amount > 0 {
				w.AddEvent(event.Damage{Target: id, Amount: amount, Type: "fire", Source: f.Source})
			}
		}
		chance := f.SpreadChance
		if chance <= 0 {
			chance = def.SpreadChance
		}
		if rules.Chance(s.rng, chance) {
			s.spread(w, id, f, def)
		}
	}
}

// spread scans the 8 surrounding cells row by row from the north-west corner.
// Each flammable neighbour not already burning rolls its own ignition chance;
// the first one that passes catches fire.
func (s *StatusEffectSystem) spread(w *ecs.World, src ecs.EntityID, f *component.OnFire, def *data.EffectDef) {
	pos, ok := ecs.Get[component.Position](w, src)
	if !ok {
		return
	}
	candidates := w.Query(posType, flammableType)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			cell := pos.Point().Add(component.Point{X: dx, Y: dy})
			for _, id := range candidates {
				if id == src || ecs.Has[component.OnFire](w, id) {
					continue
				}
				if p, _ := ecs.Get[component.Position](w, id); p.Point() != cell {
					continue
				}
				fl, _ := ecs.Get[component.Flammable](w, id)
				if !rules.Chance(s.rng, fl.IgnitionChance) {
					continue
				}
				lit := &component.OnFire{
					TimedEffect: component.TimedEffect{
						Kind:      component.EffectOnFire,
						Duration:  def.IgnitionDuration,
						Intensity: f.Intensity,
						Source:    src,
					},
					Damage:       fl.BurnDamage,
					SpreadChance: def.SpreadChance,
				}
				if err := ecs.Add(w, id, lit); err != nil {
					s.log.Warn("ignite failed", zap.Stringer("entity", id), zap.Error(err))
					return
				}
				s.log.Debug("fire spread", zap.Stringer("from", src), zap.Stringer("to", id))
				return
			}
		}
	}
}

// decrement counts down every listed instance of T and removes those that
// reach zero. Instances already at zero are removed without counting.
// Returns the number removed.
func decrement[T any, P timedEffect[T]](w *ecs.World, ids []ecs.EntityID) int {
	removed := 0
	for _, id := range ids {
		c, ok := ecs.Get[T](w, id)
		if !ok {
			continue
		}
		e := P(c).Effect()
		if e.Permanent() {
			continue
		}
		if e.Duration > 0 {
			e.Duration--
		}
		if e.Duration <= 0 {
			if ok, _ := ecs.Remove[T](w, id); ok {
				removed++
			}
		}
	}
	return removed
}
