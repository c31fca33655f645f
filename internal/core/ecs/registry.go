package ecs

import (
	"fmt"
	"reflect"
)

// Registry tracks all component stores and supports bulk cleanup on entity destroy.
// Stores are created lazily on first use and get a dense type id in creation order.
type Registry struct {
	byType map[reflect.Type]storage
	stores []storage
	types  []reflect.Type
	deps   map[reflect.Type][]reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]storage, 32),
		stores: make([]storage, 0, 32),
		deps:   make(map[reflect.Type][]reflect.Type),
	}
}

// lookup returns the store for t, or nil when no component of that type was
// ever attached.
func (r *Registry) lookup(t reflect.Type) storage {
	return r.byType[t]
}

// RemoveAll clears the given entity from every registered component store and
// returns how many components were dropped.
func (r *Registry) RemoveAll(id EntityID) int {
	n := 0
	for _, s := range r.stores {
		if s.Remove(id) {
			n++
		}
	}
	return n
}

// Len returns the number of component tables.
func (r *Registry) Len() int { return len(r.stores) }

// Counts returns instance counts per component type name.
func (r *Registry) Counts() map[string]int {
	out := make(map[string]int, len(r.stores))
	for i, s := range r.stores {
		out[r.types[i].String()] = s.Len()
	}
	return out
}

// storeFor returns the typed store for T, creating and registering it on first use.
func storeFor[T any](r *Registry) *Store[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := r.byType[t]; ok {
		return s.(*Store[T])
	}
	s := newStore[T](uint32(len(r.stores)))
	r.byType[t] = s
	r.stores = append(r.stores, s)
	r.types = append(r.types, t)
	return s
}

// existingStore returns the typed store for T without creating it.
func existingStore[T any](r *Registry) *Store[T] {
	s, ok := r.byType[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil
	}
	return s.(*Store[T])
}

// require records that a component of type t needs one of type dep.
func (r *Registry) require(t, dep reflect.Type) {
	for _, d := range r.deps[t] {
		if d == dep {
			return
		}
	}
	r.deps[t] = append(r.deps[t], dep)
}

// missing lists the dependency violations of id in table creation order.
func (r *Registry) missing(id EntityID) []error {
	var errs []error
	for i, s := range r.stores {
		deps := r.deps[r.types[i]]
		if len(deps) == 0 || !s.Has(id) {
			continue
		}
		for _, d := range deps {
			if ds := r.byType[d]; ds != nil && ds.Has(id) {
				continue
			}
			errs = append(errs, &MissingDependencyError{
				Entity:    id,
				Component: r.types[i].String(),
				Requires:  d.String(),
			})
		}
	}
	return errs
}

// MissingDependencyError reports a component attached without one it requires.
type MissingDependencyError struct {
	Entity    EntityID
	Component string
	Requires  string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s: %s requires %s", e.Entity, e.Component, e.Requires)
}
