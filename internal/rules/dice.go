// Package rules holds the d20 arithmetic shared by the systems.
package rules

import (
	"math/rand"
	"time"
)

// RNG is the random source systems roll against. *rand.Rand satisfies it;
// tests substitute fixed sequences.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// NewRNG returns a seeded source. Seed 0 picks one from the clock.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Roll returns a uniform value in [1, sides]. Non-positive sides roll 0.
func Roll(r RNG, sides int) int {
	if sides <= 0 {
		return 0
	}
	return r.Intn(sides) + 1
}

func D20(r RNG) int { return Roll(r, 20) }

// Chance reports whether a roll in [0,1) lands under p.
func Chance(r RNG, p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// AbilityModifier converts a score to its d20 modifier.
func AbilityModifier(score int) int {
	switch {
	case score <= 3:
		return -4
	case score <= 5:
		return -3
	case score <= 7:
		return -2
	case score <= 9:
		return -1
	case score <= 11:
		return 0
	case score <= 13:
		return 1
	case score <= 15:
		return 2
	case score <= 17:
		return 3
	}
	return 4
}

// ModifierFunc maps an ability name and score to a modifier. The Lua rules
// engine provides one; AbilityModifier is the built-in.
type ModifierFunc func(ability string, score int) int

// Builtin adapts AbilityModifier to ModifierFunc.
func Builtin(_ string, score int) int { return AbilityModifier(score) }
