package component

// Health stores hit points. Current stays within [0, Max].
type Health struct {
	Current int
	Max     int
}

// NewHealth clamps the values the way spawned entities expect.
func NewHealth(current, maxHP int) *Health {
	h := &Health{Max: maxHP}
	if h.Max < 1 {
		h.Max = 1
	}
	h.Current = min(max0(current), h.Max)
	return h
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (h *Health) Alive() bool { return h.Current > 0 }

// Damage lowers Current and returns the amount actually taken.
func (h *Health) Damage(amount int) int {
	old := h.Current
	h.Current = max0(h.Current - max0(amount))
	return old - h.Current
}

// Heal raises Current up to Max and returns the amount actually healed.
func (h *Health) Heal(amount int) int {
	old := h.Current
	h.Current = min(h.Current+max0(amount), h.Max)
	return h.Current - old
}

// Ability names one of the six classic scores.
type Ability int

const (
	Strength Ability = iota
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma
)

var abilityNames = [...]string{"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma"}

func (a Ability) String() string {
	if a < 0 || int(a) >= len(abilityNames) {
		return "unknown"
	}
	return abilityNames[a]
}

// Stats holds ability scores. The zero value is not meaningful; use
// DefaultStats for an average creature.
type Stats struct {
	Str, Dex, Con, Int, Wis, Cha int
}

func DefaultStats() *Stats {
	return &Stats{Str: 10, Dex: 10, Con: 10, Int: 10, Wis: 10, Cha: 10}
}

// Score returns the raw value of an ability.
func (s *Stats) Score(a Ability) int {
	switch a {
	case Strength:
		return s.Str
	case Dexterity:
		return s.Dex
	case Constitution:
		return s.Con
	case Intelligence:
		return s.Int
	case Wisdom:
		return s.Wis
	case Charisma:
		return s.Cha
	}
	return 10
}

// Experience tracks level progression. HitDie is the die rolled for HP on
// level up (8 fighter, 6 priest, 4 others).
type Experience struct {
	Level  int
	XP     int
	HitDie int
}

// NextLevel is the XP needed to leave the current level.
func (e *Experience) NextLevel() int { return e.Level * 100 }

func (e *Experience) CanLevelUp() bool { return e.XP >= e.NextLevel() }
