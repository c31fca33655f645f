package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/core/event"
	"github.com/gridcrawl/crawl/internal/scripting"
)

func interactable(kind component.InteractionKind) *component.Interactable {
	return component.NewInteractable(kind)
}

func door(t *testing.T, w *ecs.World, x, y int, locked bool) ecs.EntityID {
	return place(t, w, x, y,
		ecs.With(interactable(component.InteractDoor)),
		ecs.With(&component.Door{Locked: locked}),
		ecs.With(&component.Renderable{Glyph: '+'}),
		ecs.With(&component.BlocksMovement{Player: true, Monster: true}),
	)
}

func interact(actor, target ecs.EntityID) event.InteractRequested {
	return event.InteractRequested{Actor: actor, Target: target}
}

func TestInteractTooFarChangesNothing(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0)
	d := door(t, w, 2, 0, false)
	s := NewInteractionSystem(nil, nil)

	assert.Equal(t, event.InteractTooFar, s.Resolve(w, interact(actor, d)))

	dc, _ := ecs.Get[component.Door](w, d)
	assert.False(t, dc.Open)
	ia, _ := ecs.Get[component.Interactable](w, d)
	assert.Equal(t, 0, ia.Uses)
	r, _ := ecs.Get[component.Renderable](w, d)
	assert.Equal(t, '+', r.Glyph)
	assert.Empty(t, ecs.Events[event.InteractionSucceeded](w))
	assert.Equal(t, []event.InteractionFailed{{Actor: actor, Target: d, Reason: event.InteractTooFar}},
		ecs.Events[event.InteractionFailed](w))
}

func TestDoorToggles(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0)
	d := door(t, w, 1, 1, false)
	s := NewInteractionSystem(nil, nil)

	require.Equal(t, event.InteractOK, s.Resolve(w, interact(actor, d)))
	dc, _ := ecs.Get[component.Door](w, d)
	r, _ := ecs.Get[component.Renderable](w, d)
	b, _ := ecs.Get[component.BlocksMovement](w, d)
	assert.True(t, dc.Open)
	assert.Equal(t, '-', r.Glyph)
	assert.False(t, b.Player)
	assert.False(t, b.Monster)

	require.Equal(t, event.InteractOK, s.Resolve(w, interact(actor, d)))
	assert.False(t, dc.Open)
	assert.Equal(t, '+', r.Glyph)
	assert.True(t, b.Player)

	ia, _ := ecs.Get[component.Interactable](w, d)
	assert.Equal(t, 2, ia.Uses)
	assert.Len(t, ecs.Events[event.InteractionSucceeded](w), 2)
}

func TestLockedDoorAndContainer(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0)
	d := door(t, w, 1, 0, true)
	chest := place(t, w, 0, 1,
		ecs.With(interactable(component.InteractContainer)),
		ecs.With(&component.Container{RequiresKey: true}),
	)
	s := NewInteractionSystem(nil, nil)

	assert.Equal(t, event.InteractLocked, s.Resolve(w, interact(actor, d)))
	assert.Equal(t, event.InteractLocked, s.Resolve(w, interact(actor, chest)))
	dc, _ := ecs.Get[component.Door](w, d)
	assert.False(t, dc.Open)
}

func TestContainerToggles(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0)
	chest := place(t, w, 0, 1,
		ecs.With(interactable(component.InteractContainer)),
		ecs.With(&component.Container{Capacity: 10}),
	)
	s := NewInteractionSystem(nil, nil)

	require.Equal(t, event.InteractOK, s.Resolve(w, interact(actor, chest)))
	c, _ := ecs.Get[component.Container](w, chest)
	assert.True(t, c.Open)
}

func TestLightSourceToggles(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0)
	warm := component.Color{R: 255, G: 255, B: 200}
	torch := place(t, w, 1, 0,
		ecs.With(interactable(component.InteractLightSource)),
		ecs.With(&component.LightSource{Lit: true, Fuel: -1, Color: warm}),
		ecs.With(&component.Renderable{Glyph: '*', Color: warm}),
	)
	s := NewInteractionSystem(nil, nil)

	require.Equal(t, event.InteractOK, s.Resolve(w, interact(actor, torch)))
	l, _ := ecs.Get[component.LightSource](w, torch)
	r, _ := ecs.Get[component.Renderable](w, torch)
	assert.False(t, l.Lit)
	assert.Equal(t, component.Dim, r.Color)

	require.Equal(t, event.InteractOK, s.Resolve(w, interact(actor, torch)))
	assert.True(t, l.IsLit())
	assert.Equal(t, warm, r.Color)
}

func TestAltarBlessesOnce(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0)
	ia := interactable(component.InteractAltar)
	ia.MaxUses = 1
	altar := place(t, w, 1, 1, ecs.With(ia))
	s := NewInteractionSystem(nil, nil)

	require.Equal(t, event.InteractOK, s.Resolve(w, interact(actor, altar)))
	b, ok := ecs.Get[component.Blessed](w, actor)
	require.True(t, ok)
	assert.Equal(t, 10, b.Duration)
	assert.Equal(t, 1, b.Bonus)
	assert.Equal(t, altar, b.Source)

	assert.Equal(t, event.InteractNoUsesLeft, s.Resolve(w, interact(actor, altar)))
}

func TestInteractPicksNearestWhenUntargeted(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 5, 5, ecs.With(interactable(component.InteractGeneric)))
	diag := place(t, w, 6, 6, ecs.With(interactable(component.InteractGeneric)))
	place(t, w, 7, 5, ecs.With(interactable(component.InteractGeneric)))
	s := NewInteractionSystem(nil, nil)

	require.Equal(t, event.InteractOK, s.Resolve(w, interact(actor, 0)))
	got := ecs.Events[event.InteractionSucceeded](w)
	require.Len(t, got, 1)
	assert.Equal(t, diag, got[0].Target, "actor excluded, nearest within one cell")

	// two candidates at equal distance: lowest id wins
	w2 := newTestWorld()
	a2 := place(t, w2, 0, 0)
	low := place(t, w2, 1, 0, ecs.With(interactable(component.InteractGeneric)))
	place(t, w2, 0, 1, ecs.With(interactable(component.InteractGeneric)))
	require.Equal(t, event.InteractOK, s.Resolve(w2, interact(a2, 0)))
	assert.Equal(t, low, ecs.Events[event.InteractionSucceeded](w2)[0].Target)
}

func TestInteractFailures(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0)
	rock := place(t, w, 1, 0)
	fakeDoor := place(t, w, 0, 1, ecs.With(interactable(component.InteractDoor)))
	s := NewInteractionSystem(nil, nil)

	assert.Equal(t, event.InteractNotInteractable, s.Resolve(w, interact(actor, rock)))
	assert.Equal(t, event.InteractUnsupported, s.Resolve(w, interact(actor, fakeDoor)))

	lonely := newTestWorld()
	a := place(t, lonely, 0, 0)
	place(t, lonely, 3, 3, ecs.With(interactable(component.InteractGeneric)))
	assert.Equal(t, event.InteractNoTarget, s.Resolve(lonely, interact(a, 0)))
}

func TestRemoteInteractionIgnoresDistance(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0)
	ia := interactable(component.InteractGeneric)
	ia.RequiresAdjacent = false
	lever := place(t, w, 9, 9, ecs.With(ia))
	s := NewInteractionSystem(nil, nil)
	assert.Equal(t, event.InteractOK, s.Resolve(w, interact(actor, lever)))
}

type stubHooks struct {
	ok   bool
	seen []scripting.InteractContext
}

func (h *stubHooks) Interact(ctx scripting.InteractContext) scripting.InteractResult {
	h.seen = append(h.seen, ctx)
	return scripting.InteractResult{OK: h.ok}
}

func TestGenericInteractionUsesHooks(t *testing.T) {
	w := newTestWorld()
	actor := place(t, w, 0, 0, ecs.With(&component.Name{Name: "Hero"}))
	lever := place(t, w, 1, 0, ecs.With(interactable(component.InteractGeneric)), ecs.With(&component.Name{Name: "lever"}))

	refuse := &stubHooks{}
	assert.Equal(t, event.InteractRefused, NewInteractionSystem(refuse, nil).Resolve(w, interact(actor, lever)))
	require.Len(t, refuse.seen, 1)
	assert.Equal(t, "Hero", refuse.seen[0].ActorName)
	assert.Equal(t, "lever", refuse.seen[0].TargetName)

	accept := &stubHooks{ok: true}
	assert.Equal(t, event.InteractOK, NewInteractionSystem(accept, nil).Resolve(w, interact(actor, lever)))
}
