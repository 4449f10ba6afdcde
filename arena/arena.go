// Package arena provides typed bump allocators with stable handles and
// cursor-based rollback. An arena hands out fixed-size slots of a single
// element type; a slot, once allocated, never moves, so pointers obtained
// from At stay valid until the slot is truncated away.
//
// Storage is a table of geometrically growing chunks (chunk c holds
// baseChunkSize<<c slots). Growing the arena allocates a new chunk and never
// relocates existing ones, which is what makes handles and slot pointers
// stable for the arena's lifetime.
//
// Two backends share one contract: Arena for single-goroutine use and Sync
// for concurrent readers with a single external writer.
package arena

import "math/bits"

// Handle identifies an allocated slot. Handles are dense, starting at 0, and
// remain valid until a Truncate call discards them.
type Handle int32

// Nil is the absent handle.
const Nil Handle = -1

// IsNil reports whether h refers to no slot.
func (h Handle) IsNil() bool { return h < 0 }

const (
	baseChunkBits = 6 // first chunk holds 64 slots
	maxChunks     = 25

	// maxSlots keeps the cumulative capacity inside the Handle space.
	maxSlots = ((1 << maxChunks) - 1) << baseChunkBits
)

// locate maps a handle onto its chunk and the offset within that chunk.
func locate(h Handle) (chunk, off int) {
	chunk = bits.Len32(uint32(h)>>baseChunkBits+1) - 1
	off = int(h) - ((1<<chunk)-1)<<baseChunkBits
	return chunk, off
}

func chunkCap(chunk int) int { return 1 << (baseChunkBits + chunk) }

// Backend is the allocator contract the trie engine consumes. Arena and Sync
// both satisfy it; picking one or the other selects the concurrency policy
// without touching the engine.
type Backend[T any] interface {
	// Alloc stores v in a fresh slot and returns its handle.
	Alloc(v T) Handle
	// At returns the slot for h. The pointer stays valid until the slot is
	// truncated away.
	At(h Handle) *T
	// Len returns the allocation cursor: the number of live slots.
	Len() int
	// Truncate discards every slot at or beyond cursor n.
	Truncate(n int)
}

// Arena is the single-goroutine backend.
type Arena[T any] struct {
	chunks [maxChunks][]T
	n      int
}

// New returns an empty arena.
func New[T any]() *Arena[T] { return &Arena[T]{} }

// Alloc stores v in a fresh slot and returns its handle.
func (a *Arena[T]) Alloc(v T) Handle {
	if a.n >= maxSlots {
		panic("arena: capacity exhausted")
	}
	h := Handle(a.n)
	c, off := locate(h)
	if a.chunks[c] == nil {
		a.chunks[c] = make([]T, chunkCap(c))
	}
	a.chunks[c][off] = v
	a.n++
	return h
}

// At returns the slot for h.
func (a *Arena[T]) At(h Handle) *T {
	if h < 0 || int(h) >= a.n {
		panic("arena: handle out of range")
	}
	c, off := locate(h)
	return &a.chunks[c][off]
}

// Len returns the allocation cursor.
func (a *Arena[T]) Len() int { return a.n }

// Truncate discards every slot at or beyond n. Discarded slots are zeroed so
// they stop retaining whatever they pointed at.
func (a *Arena[T]) Truncate(n int) {
	if n < 0 || n > a.n {
		panic("arena: truncate cursor out of range")
	}
	var zero T
	for i := n; i < a.n; i++ {
		c, off := locate(Handle(i))
		a.chunks[c][off] = zero
	}
	a.n = n
}
