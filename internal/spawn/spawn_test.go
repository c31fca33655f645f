package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/data"
)

const prefabs = `
prefabs:
  hero:
    name: Hero
    glyph: "@"
    player: true
    health: { current: 30, max: 20 }
    stats: { str: 16, dex: 10, con: 10, int: 10, wis: 10, cha: 10 }
    movement: { speed: 1 }
  door:
    glyph: "+"
    blocks: { player: true, monster: true }
    interactable: { kind: door }
    door: { locked: true }
  orphan_door:
    door: {}
  torch:
    interactable: { kind: light_source, requires_adjacent: false, max_uses: 3 }
    light: { lit: true, color: [300, -5, 10] }
  ember:
    effects:
      - { kind: on_fire, duration: -1 }
spawns:
  - { prefab: hero, x: 1, y: 2 }
  - { prefab: door, x: 2, y: 2 }
`

func newSpawner(t *testing.T) (*ecs.World, *Spawner) {
	t.Helper()
	tbl, err := data.ParsePrefabTable([]byte(prefabs))
	require.NoError(t, err)
	w := ecs.NewWorld(nil)
	component.RegisterDependencies(w)
	return w, New(w, tbl, nil, nil)
}

func TestSpawnAll(t *testing.T) {
	w, s := newSpawner(t)
	ids, err := s.SpawnAll()
	require.NoError(t, err)
	require.Len(t, ids, 2)

	pos, ok := ecs.Get[component.Position](w, ids[0])
	require.True(t, ok)
	assert.Equal(t, component.Point{X: 1, Y: 2}, pos.Point())

	hp, ok := ecs.Get[component.Health](w, ids[0])
	require.True(t, ok)
	assert.Equal(t, 20, hp.Current, "current clamps to max")
	assert.Equal(t, component.CategoryPlayer, component.CategoryOf(w, ids[0]))

	door, ok := ecs.Get[component.Door](w, ids[1])
	require.True(t, ok)
	assert.True(t, door.Locked)
	ia, _ := ecs.Get[component.Interactable](w, ids[1])
	assert.Equal(t, component.InteractDoor, ia.Kind)
	assert.True(t, ia.RequiresAdjacent)
	assert.Equal(t, -1, ia.MaxUses)
}

func TestSpawnedValuesAreFresh(t *testing.T) {
	w, s := newSpawner(t)
	a, err := s.Spawn("hero", 0, 0, -1)
	require.NoError(t, err)
	b, err := s.Spawn("hero", 5, 5, -1)
	require.NoError(t, err)

	hpA, _ := ecs.Get[component.Health](w, a)
	hpB, _ := ecs.Get[component.Health](w, b)
	hpA.Damage(5)
	assert.Equal(t, 20, hpB.Current)
}

func TestSpawnRejectsMissingDependency(t *testing.T) {
	w, s := newSpawner(t)
	_, err := s.Spawn("orphan_door", 0, 0, -1)
	var missing *ecs.MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 0, w.EntityCount())
}

func TestSpawnOverrides(t *testing.T) {
	w, s := newSpawner(t)
	id, err := s.Spawn("torch", 0, 0, -1)
	require.NoError(t, err)
	ia, _ := ecs.Get[component.Interactable](w, id)
	assert.False(t, ia.RequiresAdjacent)
	assert.Equal(t, 3, ia.MaxUses)
	light, _ := ecs.Get[component.LightSource](w, id)
	assert.Equal(t, component.Color{R: 255, G: 0, B: 10}, light.Color)
}

func TestSpawnEffectUsesTableDefaults(t *testing.T) {
	w, s := newSpawner(t)
	id, err := s.Spawn("ember", 0, 0, -1)
	require.NoError(t, err)
	fire, ok := ecs.Get[component.OnFire](w, id)
	require.True(t, ok)
	assert.True(t, fire.Permanent())
	assert.Equal(t, 1, fire.Damage)
	assert.InDelta(t, 0.1, fire.SpreadChance, 1e-9)
}

func TestSpawnUnknownPrefab(t *testing.T) {
	_, s := newSpawner(t)
	_, err := s.Spawn("dragon", 0, 0, -1)
	assert.ErrorContains(t, err, "unknown prefab")
}
