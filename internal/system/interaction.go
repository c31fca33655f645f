package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/core/event"
	"github.com/gridcrawl/crawl/internal/scripting"
)

const (
	altarBlessingTicks = 10
	altarBlessingBonus = 1
)

var interactableType = ecs.TypeOf[component.Interactable]()

// Interactor answers generic interactions. *scripting.Engine implements it.
type Interactor interface {
	Interact(ctx scripting.InteractContext) scripting.InteractResult
}

// InteractionSystem resolves InteractRequested events. Phase 1 (PreUpdate).
type InteractionSystem struct {
	hooks Interactor
	log   *zap.Logger
}

// NewInteractionSystem creates the resolver. hooks may be nil, in which case
// generic interactions always succeed.
func NewInteractionSystem(hooks Interactor, log *zap.Logger) *InteractionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &InteractionSystem{hooks: hooks, log: log}
}

func (s *InteractionSystem) Name() string     { return "interaction" }
func (s *InteractionSystem) Phase() ecs.Phase { return ecs.PhasePreUpdate }

func (s *InteractionSystem) Update(w *ecs.World, _ time.Duration) error {
	ecs.EachEvent(w, func(ev event.InteractRequested) {
		s.Resolve(w, ev)
	})
	return nil
}

// Resolve performs one interaction and returns InteractOK or the failure
// reason. Failures queue InteractionFailed and leave the world untouched.
func (s *InteractionSystem) Resolve(w *ecs.World, ev event.InteractRequested) event.InteractFailure {
	target := ev.Target
	if target.IsZero() {
		target = nearestInteractable(w, ev.Actor)
	}
	reason, ia := s.resolve(w, ev.Actor, target)
	if reason != event.InteractOK {
		w.AddEvent(event.InteractionFailed{Actor: ev.Actor, Target: target, Reason: reason})
		return reason
	}
	ia.Uses++
	w.AddEvent(event.InteractionSucceeded{Actor: ev.Actor, Target: target, Kind: ia.Kind})
	return event.InteractOK
}

func (s *InteractionSystem) resolve(w *ecs.World, actor, target ecs.EntityID) (event.InteractFailure, *component.Interactable) {
	if target.IsZero() {
		return event.InteractNoTarget, nil
	}
	ia, ok := ecs.Get[component.Interactable](w, target)
	if !ok {
		return event.InteractNotInteractable, nil
	}
	if ia.RequiresAdjacent && !adjacent(w, actor, target) {
		return event.InteractTooFar, ia
	}
	if ia.Exhausted() {
		return event.InteractNoUsesLeft, ia
	}
	return s.dispatch(w, actor, target, ia), ia
}

func (s *InteractionSystem) dispatch(w *ecs.World, actor, target ecs.EntityID, ia *component.Interactable) event.InteractFailure {
	switch ia.Kind {
	case component.InteractDoor:
		return toggleDoor(w, target)
	case component.InteractContainer:
		return toggleContainer(w, target)
	case component.InteractLightSource:
		return toggleLight(w, target)
	case component.InteractAltar:
		return s.bless(w, actor, target)
	case component.InteractGeneric:
		return s.generic(w, actor, target, ia)
	}
	return event.InteractUnsupported
}

func toggleDoor(w *ecs.World, id ecs.EntityID) event.InteractFailure {
	door, ok := ecs.Get[component.Door](w, id)
	if !ok {
		return event.InteractUnsupported
	}
	if door.Locked {
		return event.InteractLocked
	}
	door.Open = !door.Open
	if r, ok := ecs.Get[component.Renderable](w, id); ok {
		r.Glyph = '+'
		if door.Open {
			r.Glyph = '-'
		}
	}
	if b, ok := ecs.Get[component.BlocksMovement](w, id); ok {
		b.Player = !door.Open
		b.Monster = !door.Open
	}
	return event.InteractOK
}

func toggleContainer(w *ecs.World, id ecs.EntityID) event.InteractFailure {
	c, ok := ecs.Get[component.Container](w, id)
	if !ok {
		return event.InteractUnsupported
	}
	if c.RequiresKey {
		return event.InteractLocked
	}
	c.Open = !c.Open
	return event.InteractOK
}

func toggleLight(w *ecs.World, id ecs.EntityID) event.InteractFailure {
	l, ok := ecs.Get[component.LightSource](w, id)
	if !ok {
		return event.InteractUnsupported
	}
	l.Lit = !l.Lit
	if r, ok := ecs.Get[component.Renderable](w, id); ok {
		r.Color = component.Dim
		if l.Lit {
			r.Color = l.Color
		}
	}
	return event.InteractOK
}

func (s *InteractionSystem) bless(w *ecs.World, actor, altar ecs.EntityID) event.InteractFailure {
	err := ecs.Add(w, actor, &component.Blessed{
		TimedEffect: component.TimedEffect{
			Kind:      component.EffectBlessed,
			Duration:  altarBlessingTicks,
			Intensity: 1,
			Source:    altar,
		},
		Bonus: altarBlessingBonus,
	})
	if err != nil {
		s.log.Warn("altar blessing failed", zap.Stringer("actor", actor), zap.Error(err))
		return event.InteractUnsupported
	}
	return event.InteractOK
}

func (s *InteractionSystem) generic(w *ecs.World, actor, target ecs.EntityID, ia *component.Interactable) event.InteractFailure {
	if s.hooks == nil {
		return event.InteractOK
	}
	res := s.hooks.Interact(scripting.InteractContext{
		Actor:      uint64(actor),
		Target:     uint64(target),
		ActorName:  nameOf(w, actor),
		TargetName: nameOf(w, target),
		Uses:       ia.Uses,
	})
	if res.Message != "" {
		s.log.Info("interaction", zap.Stringer("actor", actor), zap.String("message", res.Message))
	}
	if !res.OK {
		return event.InteractRefused
	}
	return event.InteractOK
}

// nearestInteractable finds the closest Interactable within one cell of the
// actor, lowest id on ties. Returns zero when there is none.
func nearestInteractable(w *ecs.World, actor ecs.EntityID) ecs.EntityID {
	pos, ok := ecs.Get[component.Position](w, actor)
	if !ok {
		return 0
	}
	var best ecs.EntityID
	bestDist := 2
	for _, id := range w.Query(posType, interactableType) {
		if id == actor {
			continue
		}
		p, _ := ecs.Get[component.Position](w, id)
		if d := pos.Point().Chebyshev(p.Point()); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

func adjacent(w *ecs.World, a, b ecs.EntityID) bool {
	pa, ok := ecs.Get[component.Position](w, a)
	if !ok {
		return false
	}
	pb, ok := ecs.Get[component.Position](w, b)
	if !ok {
		return false
	}
	return pa.Point().Chebyshev(pb.Point()) <= 1
}

func nameOf(w *ecs.World, id ecs.EntityID) string {
	if n, ok := ecs.Get[component.Name](w, id); ok {
		return n.Name
	}
	return ""
}
