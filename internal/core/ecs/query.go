package ecs

import (
	"slices"
)

// Query returns the entities that carry every listed component type, in
// ascending id order. The requested set is order-insensitive and duplicates
// collapse. The result is a fresh slice the caller may keep or modify.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return []EntityID{}
	}

	stores := make([]storage, 0, len(types))
	key := make([]uint32, 0, len(types))
	for _, ct := range types {
		s := w.registry.lookup(ct.t)
		if s == nil {
			// Never attached anywhere: nothing can match.
			return []EntityID{}
		}
		if slices.Contains(key, s.typeID()) {
			continue
		}
		key = append(key, s.typeID())
		stores = append(stores, s)
	}
	slices.Sort(key)

	if ids, ok := w.cache.get(key); ok {
		return slices.Clone(ids)
	}

	ids := intersect(stores)
	w.cache.put(key, ids)
	return slices.Clone(ids)
}

// intersect seeds from the smallest table and filters through the others.
// Any empty table short-circuits to an empty result.
func intersect(stores []storage) []EntityID {
	smallest := 0
	for i, s := range stores {
		if s.Len() == 0 {
			return []EntityID{}
		}
		if s.Len() < stores[smallest].Len() {
			smallest = i
		}
	}

	candidates := stores[smallest].IDs()
	for i, s := range stores {
		if i == smallest {
			continue
		}
		filtered := candidates[:0]
		for _, id := range candidates {
			if s.Has(id) {
				filtered = append(filtered, id)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}
	return candidates
}

// QueryAny returns the entities that carry at least one of the listed
// component types, in ascending id order. It is not cached.
func (w *World) QueryAny(types ...ComponentType) []EntityID {
	seen := make(map[EntityID]struct{})
	for _, ct := range types {
		s := w.registry.lookup(ct.t)
		if s == nil {
			continue
		}
		for _, id := range s.IDs() {
			seen[id] = struct{}{}
		}
	}
	out := make([]EntityID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Each iterates over entities that have component A, in id order.
func Each[A any](w *World, fn func(EntityID, *A)) {
	for _, id := range w.Query(TypeOf[A]()) {
		if a, ok := Get[A](w, id); ok {
			fn(id, a)
		}
	}
}

// Each2 iterates over entities that have both component A and B.
// The id set is taken up front; entities losing a component during the walk
// are skipped.
func Each2[A, B any](w *World, fn func(EntityID, *A, *B)) {
	for _, id := range w.Query(TypeOf[A](), TypeOf[B]()) {
		a, ok := Get[A](w, id)
		if !ok {
			continue
		}
		b, ok := Get[B](w, id)
		if !ok {
			continue
		}
		fn(id, a, b)
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](w *World, fn func(EntityID, *A, *B, *C)) {
	for _, id := range w.Query(TypeOf[A](), TypeOf[B](), TypeOf[C]()) {
		a, ok := Get[A](w, id)
		if !ok {
			continue
		}
		b, ok := Get[B](w, id)
		if !ok {
			continue
		}
		c, ok := Get[C](w, id)
		if !ok {
			continue
		}
		fn(id, a, b, c)
	}
}
