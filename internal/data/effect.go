package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EffectDef tunes one status effect kind.
type EffectDef struct {
	Kind             string  `yaml:"kind"`
	Duration         int     `yaml:"duration"`
	Intensity        int     `yaml:"intensity"`
	Damage           int     `yaml:"damage"`
	Bonus            int     `yaml:"bonus"`
	SpreadChance     float64 `yaml:"spread_chance"`
	IgnitionDuration int     `yaml:"ignition_duration"`
}

type effectFile struct {
	Effects []EffectDef `yaml:"effects"`
}

// EffectTable holds per-kind tuning keyed by kind name.
type EffectTable struct {
	defs map[string]*EffectDef
}

// DefaultEffects returns the built-in tuning used when no table is present
// and as the base a loaded table overrides.
func DefaultEffects() *EffectTable {
	t := &EffectTable{defs: make(map[string]*EffectDef, 5)}
	for _, d := range []EffectDef{
		{Kind: "poisoned", Duration: 5, Intensity: 1, Damage: 1},
		{Kind: "on_fire", Duration: 5, Intensity: 1, Damage: 1, SpreadChance: 0.1, IgnitionDuration: 5},
		{Kind: "blessed", Duration: 10, Intensity: 1, Bonus: 1},
		{Kind: "cursed", Duration: 5, Intensity: 1, Bonus: 1},
		{Kind: "wet", Duration: 5, Intensity: 1},
	} {
		d := d
		t.defs[d.Kind] = &d
	}
	return t
}

// LoadEffectTable loads effects.yaml over the defaults. A missing file yields
// the defaults.
func LoadEffectTable(path string) (*EffectTable, error) {
	t := DefaultEffects()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return nil, fmt.Errorf("read effect table: %w", err)
	}
	var f effectFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse effect table: %w", err)
	}
	for i := range f.Effects {
		d := f.Effects[i]
		if _, ok := t.defs[d.Kind]; !ok {
			return nil, fmt.Errorf("effect table: unknown kind %q", d.Kind)
		}
		t.defs[d.Kind] = &d
	}
	return t, nil
}

// Get returns the tuning for a kind, or nil if unknown.
func (t *EffectTable) Get(kind string) *EffectDef {
	return t.defs[kind]
}

// Count returns the number of kinds defined.
func (t *EffectTable) Count() int {
	return len(t.defs)
}
