package ecs

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrTickInProgress is returned when the system list is changed mid-tick.
	ErrTickInProgress = errors.New("ecs: tick in progress")
	// ErrReentrantTick is returned when RunTick is called from inside a system.
	ErrReentrantTick = errors.New("ecs: reentrant tick")
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: turn external input into events
	PhasePreUpdate               // 1: resolve requests (movement, interaction)
	PhaseUpdate                  // 2: game logic (default)
	PhasePostUpdate              // 3: consequences (health, experience)
	PhaseOutput                  // 4: observers, journal
	PhaseCleanup                 // 5: destroy queued entities
)

// System is the interface every ECS system implements. Update runs once per
// tick with exclusive access to the world. A returned error or a panic is
// logged by the scheduler and does not stop the remaining systems.
type System interface {
	Update(w *World, dt time.Duration) error
}

// Phased systems choose their phase; others run in PhaseUpdate.
type Phased interface {
	Phase() Phase
}

// Named systems are logged under their name instead of their Go type.
type Named interface {
	Name() string
}

func phaseOf(s System) Phase {
	if p, ok := s.(Phased); ok {
		return p.Phase()
	}
	return PhaseUpdate
}

func nameOf(s System) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// AddSystem appends s to the schedule. Adding a system twice is a no-op.
// Systems must be comparable, which pointer receivers always are.
func (w *World) AddSystem(s System) error {
	if w.ticking {
		return ErrTickInProgress
	}
	if slices.Contains(w.systems, s) {
		return nil
	}
	w.systems = append(w.systems, s)
	w.sorted = false
	return nil
}

// RemoveSystem drops s from the schedule and reports whether it was present.
func (w *World) RemoveSystem(s System) (bool, error) {
	if w.ticking {
		return false, ErrTickInProgress
	}
	i := slices.Index(w.systems, s)
	if i < 0 {
		return false, nil
	}
	w.systems = slices.Delete(w.systems, i, i+1)
	return true, nil
}

// Systems returns the schedule in execution order.
func (w *World) Systems() []System {
	w.ensureSorted()
	return slices.Clone(w.systems)
}

// RunTick invokes every system once, in phase order and registration order
// within a phase, then empties the event queue.
func (w *World) RunTick(dt time.Duration) error {
	if w.ticking {
		return ErrReentrantTick
	}
	w.ticking = true
	w.tick++
	defer func() {
		w.clearEvents()
		w.ticking = false
	}()

	w.ensureSorted()
	for _, s := range w.systems {
		w.runSystem(s, dt)
	}
	return nil
}

func (w *World) runSystem(s System, dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("system panicked",
				zap.String("system", nameOf(s)),
				zap.Uint64("tick", w.tick),
				zap.Any("panic", r),
			)
		}
	}()
	if err := s.Update(w, dt); err != nil {
		w.log.Error("system update failed",
			zap.String("system", nameOf(s)),
			zap.Uint64("tick", w.tick),
			zap.Error(err),
		)
	}
}

func (w *World) ensureSorted() {
	if !w.sorted {
		slices.SortStableFunc(w.systems, func(a, b System) int {
			return cmp.Compare(phaseOf(a), phaseOf(b))
		})
		w.sorted = true
	}
}
