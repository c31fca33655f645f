package component

import "github.com/gridcrawl/crawl/internal/core/ecs"

// EffectKind names a timed status effect.
type EffectKind int

const (
	EffectPoisoned EffectKind = iota
	EffectOnFire
	EffectBlessed
	EffectCursed
	EffectWet
)

var effectKindNames = [...]string{"poisoned", "on_fire", "blessed", "cursed", "wet"}

func (k EffectKind) String() string {
	if k < 0 || int(k) >= len(effectKindNames) {
		return "unknown"
	}
	return effectKindNames[k]
}

// EffectKinds lists every kind in processing order.
var EffectKinds = []EffectKind{EffectPoisoned, EffectOnFire, EffectBlessed, EffectCursed, EffectWet}

// Permanent is the Duration of effects that never expire.
const Permanent = -1

// TimedEffect is embedded by every status effect component.
// Duration counts remaining ticks; 0 is expired.
type TimedEffect struct {
	Kind      EffectKind
	Duration  int
	Intensity int
	Source    ecs.EntityID
}

func (e *TimedEffect) Permanent() bool { return e.Duration == Permanent }
func (e *TimedEffect) Expired() bool   { return e.Duration == 0 }

// Timed is implemented by every status effect component.
type Timed interface {
	Effect() *TimedEffect
}

func (e *TimedEffect) Effect() *TimedEffect { return e }

type Poisoned struct {
	TimedEffect
	DamagePerTick int
}

type OnFire struct {
	TimedEffect
	Damage       int
	SpreadChance float64
}

type Blessed struct {
	TimedEffect
	Bonus int
}

type Cursed struct {
	TimedEffect
	Penalty int
}

type Wet struct {
	TimedEffect
}

// Flammable entities can be set alight by burning neighbours.
type Flammable struct {
	IgnitionChance float64
	BurnDamage     int
	FireResistance int
}
