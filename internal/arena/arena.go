// Package arena provides a generational slot allocator.
//
// Values live in slots addressed by an Index. Removing a value bumps the
// arena-wide generation, so every Index issued before the removal stops
// resolving even when the slot is reused by a later Insert.
package arena

import (
	"fmt"
	"iter"
)

// Index identifies an occupied slot. The zero Index never resolves.
type Index struct {
	generation uint64
	index      int
}

// Generation returns the generation stamped on the slot when it was filled.
func (i Index) Generation() uint64 { return i.generation }

// Slot returns the slot position within the arena.
func (i Index) Slot() int { return i.index }

func (i Index) String() string {
	return fmt.Sprintf("%d@%d", i.index, i.generation)
}

type slot[T any] struct {
	occupied   bool
	generation uint64
	value      T
}

// Arena is a slot allocator with LIFO free-slot reuse.
// It is not safe for concurrent use.
type Arena[T any] struct {
	slots      []slot[T]
	free       []int
	generation uint64
	count      int
}

// New creates an arena whose slot storage is preallocated with capHint entries.
func New[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		slots:      make([]slot[T], 0, capHint),
		generation: 1,
	}
}

func (a *Arena[T]) init() {
	// нулевая Arena тоже пригодна к работе
	if a.generation == 0 {
		a.generation = 1
	}
}

// Insert stores value in the most recently freed slot, or appends a new one.
func (a *Arena[T]) Insert(value T) Index {
	a.init()
	a.count++
	if n := len(a.free); n > 0 {
		pos := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[pos] = slot[T]{occupied: true, generation: a.generation, value: value}
		return Index{generation: a.generation, index: pos}
	}
	a.slots = append(a.slots, slot[T]{occupied: true, generation: a.generation, value: value})
	return Index{generation: a.generation, index: len(a.slots) - 1}
}

func (a *Arena[T]) lookup(idx Index) *slot[T] {
	if idx.index < 0 || idx.index >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx.index]
	if !s.occupied || s.generation != idx.generation {
		return nil
	}
	return s
}

// Get returns a copy of the value at idx.
func (a *Arena[T]) Get(idx Index) (T, bool) {
	if s := a.lookup(idx); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the value at idx, or nil when idx is stale.
// The pointer is invalidated by the next Insert.
func (a *Arena[T]) GetMut(idx Index) *T {
	if s := a.lookup(idx); s != nil {
		return &s.value
	}
	return nil
}

// Contains reports whether idx currently resolves.
func (a *Arena[T]) Contains(idx Index) bool {
	return a.lookup(idx) != nil
}

// Remove frees the slot at idx and returns its value.
func (a *Arena[T]) Remove(idx Index) (T, bool) {
	s := a.lookup(idx)
	if s == nil {
		var zero T
		return zero, false
	}
	value := s.value
	*s = slot[T]{}
	a.free = append(a.free, idx.index)
	a.generation++
	a.count--
	return value, true
}

// Len returns the number of occupied slots.
func (a *Arena[T]) Len() int { return a.count }

// Size returns the total number of slots, free ones included.
func (a *Arena[T]) Size() int { return len(a.slots) }

// IsEmpty reports whether no slot is occupied.
func (a *Arena[T]) IsEmpty() bool { return a.count == 0 }

// IndexAt returns the live Index of the slot at position pos.
func (a *Arena[T]) IndexAt(pos int) (Index, bool) {
	if pos < 0 || pos >= len(a.slots) || !a.slots[pos].occupied {
		return Index{}, false
	}
	return Index{generation: a.slots[pos].generation, index: pos}, true
}

// Occupied yields every resolvable Index in slot order.
func (a *Arena[T]) Occupied() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for pos := range a.slots {
			s := &a.slots[pos]
			if !s.occupied {
				continue
			}
			if !yield(Index{generation: s.generation, index: pos}) {
				return
			}
		}
	}
}

// All yields every occupied Index together with its value.
func (a *Arena[T]) All() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		for idx := range a.Occupied() {
			if !yield(idx, a.slots[idx.index].value) {
				return
			}
		}
	}
}
