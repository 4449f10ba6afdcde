package arena

import "sync/atomic"

// Sync is a bump allocator with the same contract as Arena whose slots may be
// read concurrently with allocation by a single writer. Chunk pointers and
// the cursor are published with release stores, so a reader that observes a
// handle below Len also observes the fully initialized slot contents; reads
// are wait-free.
//
// Alloc and Truncate must be externally synchronized: one writer at a time.
type Sync[T any] struct {
	chunks [maxChunks]atomic.Pointer[[]T]
	n      atomic.Int64
}

// NewSync returns an empty synchronized arena.
func NewSync[T any]() *Sync[T] { return &Sync[T]{} }

// Alloc stores v in a fresh slot and returns its handle. Writer-side only.
func (a *Sync[T]) Alloc(v T) Handle {
	n := a.n.Load()
	if n >= maxSlots {
		panic("arena: capacity exhausted")
	}
	h := Handle(n)
	c, off := locate(h)
	slots := a.chunks[c].Load()
	if slots == nil {
		s := make([]T, chunkCap(c))
		slots = &s
		a.chunks[c].Store(slots)
	}
	(*slots)[off] = v
	// The release store on the cursor publishes the slot write above.
	a.n.Store(n + 1)
	return h
}

// At returns the slot for h. Safe for concurrent use with one writer.
func (a *Sync[T]) At(h Handle) *T {
	if h < 0 || int64(h) >= a.n.Load() {
		panic("arena: handle out of range")
	}
	c, off := locate(h)
	return &(*a.chunks[c].Load())[off]
}

// Len returns the allocation cursor.
func (a *Sync[T]) Len() int { return int(a.n.Load()) }

// Truncate discards every slot at or beyond n. Writer-side only; readers
// must not hold handles past the cursor when it runs.
func (a *Sync[T]) Truncate(n int) {
	old := a.n.Load()
	if n < 0 || int64(n) > old {
		panic("arena: truncate cursor out of range")
	}
	a.n.Store(int64(n))
	var zero T
	for i := int64(n); i < old; i++ {
		c, off := locate(Handle(i))
		(*a.chunks[c].Load())[off] = zero
	}
}
