package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcrawl/crawl/internal/core/ecs"
)

func TestNewHealthClamps(t *testing.T) {
	tests := []struct {
		name             string
		current, max     int
		wantCur, wantMax int
	}{
		{"normal", 5, 10, 5, 10},
		{"over max", 15, 10, 10, 10},
		{"negative current", -3, 10, 0, 10},
		{"zero max", 0, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealth(tt.current, tt.max)
			assert.Equal(t, tt.wantCur, h.Current)
			assert.Equal(t, tt.wantMax, h.Max)
		})
	}
}

func TestHealthDamageAndHeal(t *testing.T) {
	h := NewHealth(5, 10)
	assert.Equal(t, 5, h.Damage(7))
	assert.Equal(t, 0, h.Current)
	assert.False(t, h.Alive())
	assert.Equal(t, 0, h.Damage(-4), "negative damage does nothing")

	assert.Equal(t, 10, h.Heal(50))
	assert.Equal(t, 10, h.Current)
	assert.Equal(t, 0, h.Heal(1))
}

func TestBlocks(t *testing.T) {
	b := &BlocksMovement{Player: true}
	assert.True(t, b.Blocks(CategoryPlayer))
	assert.False(t, b.Blocks(CategoryMonster))
	assert.False(t, b.Blocks(CategoryItem))
	assert.True(t, b.Blocks(CategoryUnknown))
}

func TestPointDistances(t *testing.T) {
	a, b := Point{1, 1}, Point{4, -1}
	assert.Equal(t, 3, a.Chebyshev(b))
	assert.Equal(t, 5, a.Manhattan(b))
	assert.Equal(t, Point{5, 0}, a.Add(b))
	assert.Equal(t, Point{3, -2}, b.Sub(a))
}

func TestInteractionKindNames(t *testing.T) {
	for _, k := range []InteractionKind{InteractGeneric, InteractDoor, InteractContainer, InteractLightSource, InteractAltar} {
		got, err := ParseInteractionKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseInteractionKind("portal")
	assert.Error(t, err)
}

func TestNewInteractableDefaults(t *testing.T) {
	ia := NewInteractable(InteractLightSource)
	assert.Equal(t, InteractLightSource, ia.Kind)
	assert.True(t, ia.RequiresAdjacent)
	assert.Equal(t, UnlimitedUses, ia.MaxUses)
	ia.Uses = 10_000
	assert.False(t, ia.Exhausted())
}

func TestExhausted(t *testing.T) {
	assert.False(t, (&Interactable{MaxUses: -1, Uses: 1000}).Exhausted())
	assert.True(t, (&Interactable{MaxUses: 1, Uses: 1}).Exhausted())
	assert.False(t, (&Interactable{MaxUses: 2, Uses: 1}).Exhausted())
}

func TestCategoryPrecedence(t *testing.T) {
	w := ecs.NewWorld(nil)
	id := w.CreateEntity()
	assert.Equal(t, CategoryUnknown, CategoryOf(w, id))
	require.NoError(t, ecs.Add(w, id, &Item{}))
	assert.Equal(t, CategoryItem, CategoryOf(w, id))
	require.NoError(t, ecs.Add(w, id, &Monster{}))
	assert.Equal(t, CategoryMonster, CategoryOf(w, id))
	require.NoError(t, ecs.Add(w, id, &PlayerControlled{}))
	assert.Equal(t, CategoryPlayer, CategoryOf(w, id))
}

func TestDependenciesEnforced(t *testing.T) {
	w := ecs.NewWorld(nil)
	RegisterDependencies(w)

	_, err := w.Spawn(ecs.With(&Door{}), ecs.With(&Position{}))
	var missing *ecs.MissingDependencyError
	require.ErrorAs(t, err, &missing)

	_, err = w.Spawn(ecs.With(&Door{}), ecs.With(&Interactable{Kind: InteractDoor}), ecs.With(&Position{}))
	assert.NoError(t, err)
}

func TestNameFull(t *testing.T) {
	assert.Equal(t, "Sir Bob", (&Name{Name: "Bob", Title: "Sir"}).FullName())
	assert.Equal(t, "Bob", (&Name{Name: "Bob"}).FullName())
}
