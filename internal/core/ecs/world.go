package ecs

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

var (
	// ErrEntityNotFound is returned when a component is added to or removed
	// from an entity that is not live. It signals a caller bug.
	ErrEntityNotFound = errors.New("ecs: entity not found")
	// ErrNilComponent is returned when Add is called with a nil pointer.
	ErrNilComponent = errors.New("ecs: nil component")
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the query cache, the per-tick event queue, the system list and a
// deferred destruction queue flushed by the cleanup system each tick.
//
// A World is not safe for concurrent use. The game loop owns it and every
// system runs on that goroutine.
type World struct {
	pool         *EntityPool
	registry     *Registry
	cache        *queryCache
	events       []any
	systems      []System
	sorted       bool
	destroyQueue []EntityID
	tick         uint64
	ticking      bool
	log          *zap.Logger
}

func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		cache:        newQueryCache(),
		events:       make([]any, 0, 64),
		systems:      make([]System, 0, 16),
		destroyQueue: make([]EntityID, 0, 64),
		log:          log,
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }
func (w *World) Logger() *zap.Logger { return w.log }

// CurrentTick returns the number of ticks started so far. During a tick it is
// the number of the running tick.
func (w *World) CurrentTick() uint64 { return w.tick }

func (w *World) CreateEntity() EntityID {
	id := w.pool.Create()
	w.cache.invalidate()
	return id
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// DestroyEntity removes id and every component attached to it. It returns
// false when id is not live. Observers are notified before removal.
func (w *World) DestroyEntity(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	w.notifyRemoved(id)
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
	w.cache.invalidate()
	return true
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick. Returns how many were live.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if w.DestroyEntity(id) {
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Add attaches c to id. Attaching a type the entity already has replaces the
// previous instance silently; a first attach notifies every EntityObserver.
func Add[T any](w *World, id EntityID, c *T) error {
	if c == nil {
		return fmt.Errorf("add %s to %s: %w", TypeOf[T](), id, ErrNilComponent)
	}
	if !w.pool.Alive(id) {
		return fmt.Errorf("add %s to %s: %w", TypeOf[T](), id, ErrEntityNotFound)
	}
	replaced := storeFor[T](w.registry).set(id, c)
	w.cache.invalidate()
	if !replaced {
		w.notifyAdded(id)
	}
	return nil
}

// Remove detaches the T component of id. It reports false, and changes
// nothing, when the entity has no such component.
func Remove[T any](w *World, id EntityID) (bool, error) {
	if !w.pool.Alive(id) {
		return false, fmt.Errorf("remove %s from %s: %w", TypeOf[T](), id, ErrEntityNotFound)
	}
	s := existingStore[T](w.registry)
	if s == nil || !s.Remove(id) {
		return false, nil
	}
	w.cache.invalidate()
	w.notifyRemoved(id)
	return true, nil
}

// Get returns the T component of id, if any.
func Get[T any](w *World, id EntityID) (*T, bool) {
	s := existingStore[T](w.registry)
	if s == nil {
		return nil, false
	}
	return s.Get(id)
}

func Has[T any](w *World, id EntityID) bool {
	s := existingStore[T](w.registry)
	return s != nil && s.Has(id)
}

// HasAll reports whether id is live and has every listed component type.
func (w *World) HasAll(id EntityID, types ...ComponentType) bool {
	if !w.pool.Alive(id) {
		return false
	}
	for _, ct := range types {
		s := w.registry.lookup(ct.t)
		if s == nil || !s.Has(id) {
			return false
		}
	}
	return true
}

// Attachment adds one component to an entity. See With and Spawn.
type Attachment func(w *World, id EntityID) error

// With wraps a component value as an Attachment.
func With[T any](c *T) Attachment {
	return func(w *World, id EntityID) error {
		return Add(w, id, c)
	}
}

// Spawn creates an entity, applies every attachment and validates the
// component dependency table. On any failure the entity is destroyed again.
func (w *World) Spawn(attachments ...Attachment) (EntityID, error) {
	id := w.CreateEntity()
	for _, a := range attachments {
		if err := a(w, id); err != nil {
			w.DestroyEntity(id)
			return 0, fmt.Errorf("spawn: %w", err)
		}
	}
	if err := w.Validate(id); err != nil {
		w.DestroyEntity(id)
		return 0, fmt.Errorf("spawn: %w", err)
	}
	return id, nil
}

// Requires registers that any entity carrying T must also carry D. The table
// is meant to be filled once at startup and is checked by Validate.
func Requires[T, D any](w *World) {
	w.registry.require(
		reflect.TypeOf((*T)(nil)).Elem(),
		reflect.TypeOf((*D)(nil)).Elem(),
	)
}

// Validate checks id against the dependency table. The returned error joins
// one *MissingDependencyError per violation.
func (w *World) Validate(id EntityID) error {
	return errors.Join(w.registry.missing(id)...)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int { return w.pool.Len() }

// ComponentCount returns how many entities carry ct.
func (w *World) ComponentCount(ct ComponentType) int {
	if s := w.registry.lookup(ct.t); s != nil {
		return s.Len()
	}
	return 0
}

// Stats is a debug snapshot of the world.
type Stats struct {
	Tick            uint64
	Entities        int
	Systems         int
	ComponentTypes  int
	ComponentCounts map[string]int
	QueuedEvents    int
	CachedQueries   int
}

func (w *World) Stats() Stats {
	return Stats{
		Tick:            w.tick,
		Entities:        w.pool.Len(),
		Systems:         len(w.systems),
		ComponentTypes:  w.registry.Len(),
		ComponentCounts: w.registry.Counts(),
		QueuedEvents:    len(w.events),
		CachedQueries:   w.cache.len(),
	}
}

// EntityObserver is implemented by systems that want to hear about first
// attaches and removals of components.
type EntityObserver interface {
	OnEntityAdded(w *World, id EntityID)
	OnEntityRemoved(w *World, id EntityID)
}

func (w *World) notifyAdded(id EntityID) {
	for _, s := range w.systems {
		if o, ok := s.(EntityObserver); ok {
			o.OnEntityAdded(w, id)
		}
	}
}

func (w *World) notifyRemoved(id EntityID) {
	for _, s := range w.systems {
		if o, ok := s.(EntityObserver); ok {
			o.OnEntityRemoved(w, id)
		}
	}
}
