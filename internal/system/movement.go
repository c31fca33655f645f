package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/core/event"
	"github.com/gridcrawl/crawl/internal/rules"
)

var (
	posType     = ecs.TypeOf[component.Position]()
	blocksType  = ecs.TypeOf[component.BlocksMovement]()
	movableType = ecs.TypeOf[component.Movable]()
)

// MovementSystem resolves MoveRequested events, including one-deep pushes of
// Movable blockers. Phase 1 (PreUpdate).
type MovementSystem struct {
	rng      rules.RNG
	modifier rules.ModifierFunc
	log      *zap.Logger
}

func NewMovementSystem(rng rules.RNG, modifier rules.ModifierFunc, log *zap.Logger) *MovementSystem {
	if modifier == nil {
		modifier = rules.Builtin
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MovementSystem{rng: rng, modifier: modifier, log: log}
}

func (s *MovementSystem) Name() string     { return "movement" }
func (s *MovementSystem) Phase() ecs.Phase { return ecs.PhasePreUpdate }

func (s *MovementSystem) Update(w *ecs.World, _ time.Duration) error {
	ecs.EachEvent(w, func(ev event.MoveRequested) {
		s.Resolve(w, ev)
	})
	return nil
}

// Resolve applies one move request and returns MoveOK or the failure reason.
// Every failure also queues a MovementFailed event.
func (s *MovementSystem) Resolve(w *ecs.World, ev event.MoveRequested) event.MoveFailure {
	reason := s.resolve(w, ev)
	if reason != event.MoveOK {
		w.AddEvent(event.MovementFailed{Entity: ev.Entity, To: ev.To, Reason: reason})
	}
	return reason
}

func (s *MovementSystem) resolve(w *ecs.World, ev event.MoveRequested) event.MoveFailure {
	pos, ok := ecs.Get[component.Position](w, ev.Entity)
	if !ok {
		return event.MoveNoPosition
	}
	if !ecs.Has[component.Movement](w, ev.Entity) {
		return event.MoveImmobile
	}

	blocker, blocked := blockerAt(w, ev.To, component.CategoryOf(w, ev.Entity), ev.Entity)
	if !blocked {
		from := pos.Point()
		pos.MoveTo(ev.To)
		w.AddEvent(event.MovementCompleted{Entity: ev.Entity, From: from, To: ev.To})
		return event.MoveOK
	}

	movable, ok := ecs.Get[component.Movable](w, blocker)
	if !ok {
		return event.MoveBlocked
	}
	if !s.push(w, ev.Entity, pos, blocker, movable, ev.To) {
		return event.MovePushFailed
	}
	return event.MoveOK
}

// push moves blocker one cell along the mover's direction of travel and the
// mover into the vacated cell. It never pushes a second obstruction.
func (s *MovementSystem) push(w *ecs.World, mover ecs.EntityID, moverPos *component.Position, blocker ecs.EntityID, movable *component.Movable, to component.Point) bool {
	stats, ok := ecs.Get[component.Stats](w, mover)
	if !ok {
		return false
	}
	blockerPos, ok := ecs.Get[component.Position](w, blocker)
	if !ok {
		return false
	}

	target := blockerPos.Point().Add(to.Sub(moverPos.Point()))
	if _, blocked := blockerAt(w, target, component.CategoryOf(w, blocker), blocker); blocked {
		return false
	}
	if movableAt(w, target, blocker) {
		return false
	}

	mod := s.modifier(component.Strength.String(), stats.Str)
	roll := rules.D20(s.rng)
	if roll+mod < movable.PushDifficulty {
		s.log.Debug("push failed",
			zap.Stringer("mover", mover),
			zap.Int("roll", roll),
			zap.Int("modifier", mod),
			zap.Int("difficulty", movable.PushDifficulty),
		)
		return false
	}

	blockerPos.MoveTo(target)
	from := moverPos.Point()
	moverPos.MoveTo(to)
	w.AddEvent(event.EntityPushed{Pusher: mover, Pushee: blocker, To: target})
	w.AddEvent(event.MovementCompleted{Entity: mover, From: from, To: to})
	return true
}

// blockerAt returns the lowest-id entity at cell that blocks category c,
// ignoring self.
func blockerAt(w *ecs.World, cell component.Point, c component.Category, self ecs.EntityID) (ecs.EntityID, bool) {
	for _, id := range w.Query(posType, blocksType) {
		if id == self {
			continue
		}
		p, _ := ecs.Get[component.Position](w, id)
		if p.Point() != cell {
			continue
		}
		b, _ := ecs.Get[component.BlocksMovement](w, id)
		if b.Blocks(c) {
			return id, true
		}
	}
	return 0, false
}

func movableAt(w *ecs.World, cell component.Point, self ecs.EntityID) bool {
	for _, id := range w.Query(posType, movableType) {
		if id == self {
			continue
		}
		if p, _ := ecs.Get[component.Position](w, id); p.Point() == cell {
			return true
		}
	}
	return false
}
