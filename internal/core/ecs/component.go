package ecs

import (
	"reflect"
	"slices"
)

// ComponentType identifies a component table. Obtain one with TypeOf.
type ComponentType struct {
	t reflect.Type
}

// TypeOf returns the ComponentType for component struct T.
func TypeOf[T any]() ComponentType {
	return ComponentType{t: reflect.TypeOf((*T)(nil)).Elem()}
}

func (c ComponentType) String() string {
	if c.t == nil {
		return "<nil>"
	}
	return c.t.String()
}

// storage is implemented by every Store so the World can bulk-remove an
// entity's data and intersect tables without knowing the concrete type.
type storage interface {
	Remove(id EntityID) bool
	Has(id EntityID) bool
	Len() int
	IDs() []EntityID
	typeID() uint32
}

// Store is a generic typed map store for ECS components.
// No reflect on the hot path, no interface{} values — pure generics.
type Store[T any] struct {
	id   uint32
	data map[EntityID]*T
}

func newStore[T any](id uint32) *Store[T] {
	return &Store[T]{
		id:   id,
		data: make(map[EntityID]*T, 64),
	}
}

func (s *Store[T]) typeID() uint32 { return s.id }

// set stores c and reports whether a previous instance was replaced.
func (s *Store[T]) set(id EntityID, c *T) (replaced bool) {
	_, replaced = s.data[id]
	s.data[id] = c
	return replaced
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) bool {
	if _, ok := s.data[id]; !ok {
		return false
	}
	delete(s.data, id)
	return true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// IDs returns the owning entities in ascending order.
func (s *Store[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
