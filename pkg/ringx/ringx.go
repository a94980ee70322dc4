// Package ringx provides the bounded collections the widgets keep: a
// newest-first list with eviction and a fixed size sliding window.
package ringx

// Recent keeps at most capacity items, newest first.
type Recent[T any] struct {
	items    []T
	capacity int
}

func NewRecent[T any](capacity int) *Recent[T] {
	if capacity <= 0 {
		capacity = 1
	}

	return &Recent[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Push prepends v and returns the item dropped off the tail, if any.
func (r *Recent[T]) Push(v T) (T, bool) {
	var evicted T

	dropped := len(r.items) == r.capacity
	if dropped {
		evicted = r.items[len(r.items)-1]
		r.items = r.items[:len(r.items)-1]
	}

	r.items = append(r.items, v)
	copy(r.items[1:], r.items[:len(r.items)-1])
	r.items[0] = v

	return evicted, dropped
}

// Reset replaces the content keeping the given order, truncated to capacity.
func (r *Recent[T]) Reset(items []T) {
	if len(items) > r.capacity {
		items = items[:r.capacity]
	}

	r.items = append(r.items[:0], items...)
}

// Retain keeps items for which keep returns true and reports how many were removed.
func (r *Recent[T]) Retain(keep func(T) bool) int {
	kept := r.items[:0]

	for _, item := range r.items {
		if keep(item) {
			kept = append(kept, item)
		}
	}

	removed := len(r.items) - len(kept)

	clear(r.items[len(kept):])
	r.items = kept

	return removed
}

// Each lets fn mutate every item in place.
func (r *Recent[T]) Each(fn func(*T)) {
	for i := range r.items {
		fn(&r.items[i])
	}
}

func (r *Recent[T]) Items() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)

	return out
}

func (r *Recent[T]) Len() int {
	return len(r.items)
}

func (r *Recent[T]) Cap() int {
	return r.capacity
}

// Window keeps the last size items, oldest first.
type Window[T any] struct {
	items []T
	size  int
}

func NewWindow[T any](size int) *Window[T] {
	if size <= 0 {
		size = 1
	}

	return &Window[T]{
		items: make([]T, 0, size),
		size:  size,
	}
}

// Append adds v as the newest item, dropping the oldest when full.
func (w *Window[T]) Append(v T) {
	if len(w.items) == w.size {
		copy(w.items, w.items[1:])
		w.items[len(w.items)-1] = v

		return
	}

	w.items = append(w.items, v)
}

// Last returns the item n positions back from the newest (0 is newest).
func (w *Window[T]) Last(n int) (T, bool) {
	var zero T

	if n < 0 || n >= len(w.items) {
		return zero, false
	}

	return w.items[len(w.items)-1-n], true
}

func (w *Window[T]) Items() []T {
	out := make([]T, len(w.items))
	copy(out, w.items)

	return out
}

func (w *Window[T]) Len() int {
	return len(w.items)
}
