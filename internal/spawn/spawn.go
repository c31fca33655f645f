// Package spawn turns data prefabs into live entities.
package spawn

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/data"
)

// Spawner builds entities from a prefab table. Every call constructs fresh
// component values, so spawned entities never share mutable state.
type Spawner struct {
	world   *ecs.World
	prefabs *data.PrefabTable
	effects *data.EffectTable
	log     *zap.Logger
}

func New(w *ecs.World, prefabs *data.PrefabTable, effects *data.EffectTable, log *zap.Logger) *Spawner {
	if effects == nil {
		effects = data.DefaultEffects()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Spawner{world: w, prefabs: prefabs, effects: effects, log: log}
}

// Spawn creates one instance of the named prefab at the given cell.
func (s *Spawner) Spawn(name string, x, y, room int) (ecs.EntityID, error) {
	p := s.prefabs.Get(name)
	if p == nil {
		return 0, fmt.Errorf("spawn %q: unknown prefab", name)
	}
	atts, err := s.attachments(p, component.Position{X: x, Y: y, RoomID: room})
	if err != nil {
		return 0, fmt.Errorf("spawn %q: %w", name, err)
	}
	id, err := s.world.Spawn(atts...)
	if err != nil {
		return 0, fmt.Errorf("spawn %q: %w", name, err)
	}
	return id, nil
}

// SpawnAll creates every entry of the table's spawn list in order. The first
// failure stops the run; entities already created stay.
func (s *Spawner) SpawnAll() ([]ecs.EntityID, error) {
	entries := s.prefabs.Spawns()
	ids := make([]ecs.EntityID, 0, len(entries))
	for _, e := range entries {
		id, err := s.Spawn(e.Prefab, e.X, e.Y, e.Room)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	s.log.Info("spawn list placed", zap.Int("entities", len(ids)))
	return ids, nil
}

func (s *Spawner) attachments(p *data.Prefab, pos component.Position) ([]ecs.Attachment, error) {
	atts := []ecs.Attachment{ecs.With(&pos)}

	if p.Name != "" {
		atts = append(atts, ecs.With(&component.Name{Name: p.Name, Title: p.Title, Description: p.Description}))
	}
	if p.Glyph != "" {
		r, _ := utf8.DecodeRuneInString(p.Glyph)
		atts = append(atts, ecs.With(&component.Renderable{
			Glyph:   r,
			Color:   colorOf(p.Color, component.Color{R: 255, G: 255, B: 255}),
			Layer:   p.Layer,
			Visible: true,
		}))
	}
	if p.Player {
		atts = append(atts, ecs.With(&component.PlayerControlled{}))
	}
	if m := p.Monster; m != nil {
		atts = append(atts, ecs.With(&component.Monster{Kind: m.Kind, ChallengeRating: m.ChallengeRating}))
	}
	if it := p.Item; it != nil {
		atts = append(atts, ecs.With(&component.Item{Weight: it.Weight, ValueCP: it.Value, Stackable: it.Stackable, MaxStack: it.MaxStack}))
	}
	if h := p.Health; h != nil {
		atts = append(atts, ecs.With(component.NewHealth(h.Current, h.Max)))
	}
	if st := p.Stats; st != nil {
		atts = append(atts, ecs.With(&component.Stats{Str: st.Str, Dex: st.Dex, Con: st.Con, Int: st.Int, Wis: st.Wis, Cha: st.Cha}))
	}
	if xp := p.XP; xp != nil {
		atts = append(atts, ecs.With(&component.Experience{Level: max(1, xp.Level), XP: xp.XP, HitDie: xp.HitDie}))
	}
	if mv := p.Movement; mv != nil {
		atts = append(atts, ecs.With(&component.Movement{Speed: mv.Speed, CanMoveDiagonally: mv.Diagonal}))
	}
	if b := p.Blocks; b != nil {
		atts = append(atts, ecs.With(&component.BlocksMovement{Player: b.Player, Monster: b.Monster, Item: b.Item}))
	}
	if mv := p.Movable; mv != nil {
		atts = append(atts, ecs.With(&component.Movable{PushDifficulty: mv.PushDifficulty, Weight: mv.Weight}))
	}
	if f := p.Flammable; f != nil {
		atts = append(atts, ecs.With(&component.Flammable{IgnitionChance: f.IgnitionChance, BurnDamage: f.BurnDamage, FireResistance: f.FireResistance}))
	}
	if in := p.Interactable; in != nil {
		kind, err := component.ParseInteractionKind(in.Kind)
		if err != nil {
			return nil, err
		}
		ia := component.NewInteractable(kind)
		if in.RequiresAdjacent != nil {
			ia.RequiresAdjacent = *in.RequiresAdjacent
		}
		if in.MaxUses != nil {
			ia.MaxUses = *in.MaxUses
		}
		atts = append(atts, ecs.With(ia))
	}
	if d := p.Door; d != nil {
		atts = append(atts, ecs.With(&component.Door{Open: d.Open, Locked: d.Locked, KeyRequired: d.Key}))
	}
	if c := p.Container; c != nil {
		atts = append(atts, ecs.With(&component.Container{Capacity: c.Capacity, Open: c.Open, RequiresKey: c.RequiresKey, KeyName: c.Key}))
	}
	if l := p.Light; l != nil {
		atts = append(atts, ecs.With(&component.LightSource{
			Brightness: l.Brightness,
			Fuel:       l.Fuel,
			Lit:        l.Lit,
			Color:      colorOf(l.Color, component.Color{R: 255, G: 255, B: 200}),
		}))
	}
	for _, e := range p.Effects {
		att, err := s.effect(e)
		if err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}
	return atts, nil
}

// effect builds a status effect from a prefab entry. Zero fields take the
// effect table's values.
func (s *Spawner) effect(e data.EffectDef) (ecs.Attachment, error) {
	base := s.effects.Get(e.Kind)
	if base == nil {
		return nil, fmt.Errorf("unknown effect %q", e.Kind)
	}
	d := *base
	if e.Duration != 0 {
		d.Duration = e.Duration
	}
	if e.Intensity != 0 {
		d.Intensity = e.Intensity
	}
	if e.Damage != 0 {
		d.Damage = e.Damage
	}
	if e.Bonus != 0 {
		d.Bonus = e.Bonus
	}
	if e.SpreadChance != 0 {
		d.SpreadChance = e.SpreadChance
	}
	return Effect(d, 0)
}

// Effect builds the status effect component described by d. Source is the
// entity responsible, zero for none.
func Effect(d data.EffectDef, source ecs.EntityID) (ecs.Attachment, error) {
	timed := func(k component.EffectKind) component.TimedEffect {
		return component.TimedEffect{Kind: k, Duration: d.Duration, Intensity: d.Intensity, Source: source}
	}
	switch d.Kind {
	case "poisoned":
		return ecs.With(&component.Poisoned{TimedEffect: timed(component.EffectPoisoned), DamagePerTick: d.Damage}), nil
	case "on_fire":
		return ecs.With(&component.OnFire{TimedEffect: timed(component.EffectOnFire), Damage: d.Damage, SpreadChance: d.SpreadChance}), nil
	case "blessed":
		return ecs.With(&component.Blessed{TimedEffect: timed(component.EffectBlessed), Bonus: d.Bonus}), nil
	case "cursed":
		return ecs.With(&component.Cursed{TimedEffect: timed(component.EffectCursed), Penalty: d.Bonus}), nil
	case "wet":
		return ecs.With(&component.Wet{TimedEffect: timed(component.EffectWet)}), nil
	}
	return nil, fmt.Errorf("unknown effect %q", d.Kind)
}

func colorOf(rgb []int, def component.Color) component.Color {
	if len(rgb) != 3 {
		return def
	}
	clamp := func(v int) uint8 { return uint8(min(max(v, 0), 255)) }
	return component.Color{R: clamp(rgb[0]), G: clamp(rgb[1]), B: clamp(rgb[2])}
}
