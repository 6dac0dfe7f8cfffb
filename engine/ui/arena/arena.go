// Package arena provides a fixed-capacity slab allocator with free-list
// reuse and generational handles.
//
// All slots are reserved up front, so a pointer obtained through Get stays
// valid until the slot is freed: the backing array never moves. Freed slots
// below the high-water mark form a singly linked list and are reused before
// the high-water mark grows. The high-water mark never shrinks.
//
// Every slot carries a generation counter that is bumped on Free, so a stale
// Handle (one whose slot has been freed or reused) is detected and rejected
// instead of silently aliasing the new occupant.
package arena

import "errors"

// ErrCapacityExceeded is returned by Alloc when the arena is full. There is
// no regrow path; callers must free elements or create a larger arena.
var ErrCapacityExceeded = errors.New("arena: capacity exceeded")

const freeListEnd = -1

// Handle addresses one slot of one arena. The zero Handle is never valid
// (generations start at 1).
type Handle struct {
	index int32
	gen   uint32
}

// IsZero reports whether h is the zero Handle, which never addresses a slot.
func (h Handle) IsZero() bool { return h.gen == 0 }

type slot[T any] struct {
	value    T
	gen      uint32 // odd while occupied, even while free
	nextFree int32  // next free slot index, freeListEnd terminates; only valid while free
}

// Arena is a fixed-capacity pool of T slots. Not safe for concurrent use.
type Arena[T any] struct {
	slots     []slot[T] // len == cap, allocated once
	len       int
	highWater int
	freeHead  int32
}

// New creates an arena with room for capacity elements.
func New[T any](capacity int) *Arena[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Arena[T]{
		slots:    make([]slot[T], capacity),
		freeHead: freeListEnd,
	}
}

// Alloc places value into a slot and returns its handle. The free list head
// is popped if available, otherwise the high-water mark is bumped.
func (a *Arena[T]) Alloc(value T) (Handle, error) {
	var idx int32
	if a.freeHead != freeListEnd {
		idx = a.freeHead
		a.freeHead = a.slots[idx].nextFree
	} else {
		if a.highWater >= len(a.slots) {
			return Handle{}, ErrCapacityExceeded
		}
		idx = int32(a.highWater)
		a.highWater++
	}
	s := &a.slots[idx]
	s.value = value
	s.gen++ // even -> odd: occupied
	a.len++
	return Handle{index: idx, gen: s.gen}, nil
}

// Get returns a pointer to the value addressed by h, or nil if h is stale or
// was never valid. The pointer stays valid until the slot is freed.
func (a *Arena[T]) Get(h Handle) *T {
	if h.gen == 0 || int(h.index) >= a.highWater {
		return nil
	}
	s := &a.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return &s.value
}

// Free returns the slot addressed by h to the free list, zeroing its value
// so referenced memory can be collected. Reports whether h was live.
func (a *Arena[T]) Free(h Handle) bool {
	if h.gen == 0 || int(h.index) >= a.highWater {
		return false
	}
	s := &a.slots[h.index]
	if s.gen != h.gen {
		return false
	}
	var zero T
	s.value = zero
	s.gen++ // odd -> even: free; stale handles now miss
	s.nextFree = a.freeHead
	a.freeHead = h.index
	a.len--
	return true
}

// Len is the number of live elements.
func (a *Arena[T]) Len() int { return a.len }

// HighWater is the number of slots ever touched. It only grows.
func (a *Arena[T]) HighWater() int { return a.highWater }

// Cap is the fixed slot capacity.
func (a *Arena[T]) Cap() int { return len(a.slots) }
