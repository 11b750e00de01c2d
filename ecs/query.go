package ecs

import "github.com/milk9111/traversal/ecs/component"

// ForEach calls fn for every live entity with a component of kind. Adding or
// removing components from fn is allowed.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind)
	for _, id := range s.ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		if v, ok := s.get(id); ok {
			fn(e, v)
		}
	}
}

// ForEach2 iterates the smaller store and looks up the other.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka), storeFor(w, kb)
	if sa == nil || sb == nil {
		return
	}
	for _, id := range smallest(sa.ids(), sb.len(), sb.ids) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id)
		b, okB := sb.get(id)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ka), storeFor(w, kb), storeFor(w, kc)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	ids := smallest(smallest(sa.ids(), sb.len(), sb.ids), sc.len(), sc.ids)
	for _, id := range ids {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id)
		b, okB := sb.get(id)
		c, okC := sc.get(id)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

func smallest(ids []entityID, otherLen int, other func() []entityID) []entityID {
	if otherLen < len(ids) {
		return other()
	}
	return ids
}
