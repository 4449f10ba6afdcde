package champ

import (
	"iter"
	"sync/atomic"

	set3 "github.com/TomTonic/Set3"

	"github.com/YuriyKrasilnikov/champ-trie/arena"
)

// SyncMap is a Map over a synchronized arena: immutable references may be
// shared across goroutines and reads are wait-free, bounded by the trie
// depth. Writes remain single-writer; concurrent writers need external
// synchronization, and a write may not run concurrently with a Rollback or
// Clear that a reader could observe.
//
// The shell state (root handle, count, digest) is published as one atomic
// snapshot, so a reader never sees a root paired with a stale count or
// digest.
type SyncMap[K comparable, V comparable] struct {
	inner Map[K, V]
	state atomic.Pointer[syncState]
}

type syncState struct {
	root    arena.Handle
	count   int
	digest  Digest
	rollGen uint64
}

// NewSync returns an empty synchronized map with default hashers.
func NewSync[K comparable, V comparable]() *SyncMap[K, V] {
	return NewSyncWithHasher[K, V](nil, nil)
}

// NewSyncWithHasher returns an empty synchronized map with caller-supplied
// hash functions; either may be nil for the seeded default.
func NewSyncWithHasher[K comparable, V comparable](hashKey func(K) uint64, hashVal func(V) uint64) *SyncMap[K, V] {
	s := &SyncMap[K, V]{}
	s.inner.nodes = arena.NewSync[node[K, V]]()
	initMap(&s.inner, hashKey, hashVal)
	s.publish()
	return s
}

// publish snapshots the inner shell for readers. Writer-side only.
func (s *SyncMap[K, V]) publish() {
	s.state.Store(&syncState{
		root:    s.inner.root,
		count:   s.inner.count,
		digest:  s.inner.digest,
		rollGen: s.inner.rollGen,
	})
}

// Get returns the value stored for k, if any.
func (s *SyncMap[K, V]) Get(k K) (V, bool) {
	st := s.state.Load()
	return lookup(s.inner.nodes, st.root, s.inner.hashKey(k), k)
}

// Contains reports whether k is present.
func (s *SyncMap[K, V]) Contains(k K) bool {
	_, ok := s.Get(k)
	return ok
}

// Len returns the number of entries.
func (s *SyncMap[K, V]) Len() int { return s.state.Load().count }

// IsEmpty reports whether the map has no entries.
func (s *SyncMap[K, V]) IsEmpty() bool { return s.Len() == 0 }

// AdHash returns the current additive digest.
func (s *SyncMap[K, V]) AdHash() Digest { return s.state.Load().digest }

// Put inserts or replaces the mapping for k and returns the prior value, if
// any. Writer-side.
func (s *SyncMap[K, V]) Put(k K, v V) (V, bool) {
	prior, replaced := s.inner.Put(k, v)
	s.publish()
	return prior, replaced
}

// Delete removes the mapping for k and returns the removed value, if any.
// Writer-side.
func (s *SyncMap[K, V]) Delete(k K) (V, bool) {
	removed, ok := s.inner.Delete(k)
	if ok {
		s.publish()
	}
	return removed, ok
}

// Checkpoint captures the current state. Writer-side.
func (s *SyncMap[K, V]) Checkpoint() Checkpoint { return s.inner.Checkpoint() }

// Rollback restores the state captured by cp and reclaims the nodes
// allocated since. Writer-side; readers must not hold iterators or handles
// born after cp.
func (s *SyncMap[K, V]) Rollback(cp Checkpoint) {
	s.inner.Rollback(cp)
	s.publish()
}

// Commit discards cp, keeping all mutations made since. Writer-side.
func (s *SyncMap[K, V]) Commit(cp Checkpoint) { s.inner.Commit(cp) }

// Clear removes every entry. Writer-side, with the same reader caveats as
// Rollback.
func (s *SyncMap[K, V]) Clear() {
	s.inner.Clear()
	s.publish()
}

// Equal reports whether s and other hold the same entries, in O(1).
func (s *SyncMap[K, V]) Equal(other *SyncMap[K, V]) bool {
	a, b := s.state.Load(), other.state.Load()
	return a.count == b.count && a.digest == b.digest
}

// Iter returns an iterator over a snapshot of the map. The snapshot stays
// coherent across Put and Delete, which never disturb published nodes, but
// a Rollback or Clear invalidates it and Next panics.
func (s *SyncMap[K, V]) Iter() *Iterator[K, V] {
	st := s.state.Load()
	return &Iterator[K, V]{
		nodes: s.inner.nodes,
		stale: func() bool { return s.state.Load().rollGen != st.rollGen },
		stack: []iterFrame{{h: st.root}},
	}
}

// All returns a range-over-func view over a snapshot of the map.
func (s *SyncMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := s.Iter()
		for it.Next() {
			if !yield(it.key, it.val) {
				return
			}
		}
	}
}

// KeySet collects the live keys into a Set3.
func (s *SyncMap[K, V]) KeySet() *set3.Set3[K] {
	out := set3.Empty[K]()
	for k := range s.All() {
		out.Add(k)
	}
	return out
}

// ValueSet collects the distinct live values into a Set3.
func (s *SyncMap[K, V]) ValueSet() *set3.Set3[V] {
	out := set3.Empty[V]()
	for _, v := range s.All() {
		out.Add(v)
	}
	return out
}
