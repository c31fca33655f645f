package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/core/event"
	"github.com/gridcrawl/crawl/internal/rules"
)

const defaultHitDie = 4

// HPGainFunc turns a hit die roll and constitution modifier into max HP
// gained on level up.
type HPGainFunc func(roll, conMod int) int

func defaultHPGain(roll, conMod int) int { return max(1, roll+conMod) }

// ExperienceSystem awards XP and levels entities up. Each level costs
// level×100 XP and grants d(HitDie)+CON modifier HP, at least 1.
// Phase 3 (PostUpdate).
type ExperienceSystem struct {
	rng      rules.RNG
	modifier rules.ModifierFunc
	hpGain   HPGainFunc
	log      *zap.Logger
}

func NewExperienceSystem(rng rules.RNG, modifier rules.ModifierFunc, hpGain HPGainFunc, log *zap.Logger) *ExperienceSystem {
	if modifier == nil {
		modifier = rules.Builtin
	}
	if hpGain == nil {
		hpGain = defaultHPGain
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExperienceSystem{rng: rng, modifier: modifier, hpGain: hpGain, log: log}
}

func (s *ExperienceSystem) Name() string     { return "experience" }
func (s *ExperienceSystem) Phase() ecs.Phase { return ecs.PhasePostUpdate }

func (s *ExperienceSystem) Update(w *ecs.World, _ time.Duration) error {
	ecs.EachEvent(w, func(ev event.ExperienceGained) {
		s.award(w, ev.Entity, ev.Amount)
	})
	return nil
}

func (s *ExperienceSystem) award(w *ecs.World, id ecs.EntityID, amount int) {
	xp, ok := ecs.Get[component.Experience](w, id)
	if !ok {
		return
	}
	xp.XP += amount
	for xp.CanLevelUp() {
		xp.XP -= xp.NextLevel()
		xp.Level++
		gain := s.levelUpHP(w, id, xp)
		w.AddEvent(event.LevelGained{Entity: id, Level: xp.Level, HPGain: gain})
		s.log.Info("level up",
			zap.Stringer("entity", id),
			zap.Int("level", xp.Level),
			zap.Int("hp_gain", gain),
		)
	}
}

func (s *ExperienceSystem) levelUpHP(w *ecs.World, id ecs.EntityID, xp *component.Experience) int {
	h, ok := ecs.Get[component.Health](w, id)
	if !ok {
		return 0
	}
	die := xp.HitDie
	if die <= 0 {
		die = defaultHitDie
	}
	conMod := 0
	if st, ok := ecs.Get[component.Stats](w, id); ok {
		conMod = s.modifier(component.Constitution.String(), st.Con)
	}
	gain := max(1, s.hpGain(rules.Roll(s.rng, die), conMod))
	h.Max += gain
	h.Current += gain
	return gain
}
