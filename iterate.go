package champ

import (
	"iter"

	set3 "github.com/TomTonic/Set3"

	"github.com/YuriyKrasilnikov/champ-trie/arena"
)

// Iterator walks the map depth-first in canonical order: at each node the
// inline entries in ascending position, then the children in ascending
// position. Two maps with the same content therefore yield identical
// sequences. Collision buckets yield their pairs in stored order, which is
// observable but carries no meaning.
//
// An Iterator is a snapshot of the root at creation and is not restartable.
// Any mutation of the map invalidates it; Next panics on a dead iterator.
type Iterator[K comparable, V comparable] struct {
	nodes arena.Backend[node[K, V]]
	stale func() bool
	stack []iterFrame
	key   K
	val   V
}

type iterFrame struct {
	h        arena.Handle
	entryIdx int
	childIdx int
}

// Iter returns an iterator positioned before the first entry.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	birth := m.gen
	return &Iterator[K, V]{
		nodes: m.nodes,
		stale: func() bool { return m.gen != birth },
		stack: []iterFrame{{h: m.root}},
	}
}

// Next advances to the next entry, reporting whether one exists.
func (it *Iterator[K, V]) Next() bool {
	if it.stale() {
		panic("champ: iterator used across a mutation")
	}
	for len(it.stack) > 0 {
		f := &it.stack[len(it.stack)-1]
		n := it.nodes.At(f.h)
		if f.entryIdx < len(n.entries) {
			e := n.entries[f.entryIdx]
			f.entryIdx++
			it.key, it.val = e.key, e.val
			return true
		}
		if f.childIdx < len(n.children) {
			child := n.children[f.childIdx]
			f.childIdx++
			it.stack = append(it.stack, iterFrame{h: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Key returns the key at the current position.
func (it *Iterator[K, V]) Key() K { return it.key }

// Value returns the value at the current position.
func (it *Iterator[K, V]) Value() V { return it.val }

// All returns a range-over-func view of the map in the same canonical order
// as Iter.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Iter()
		for it.Next() {
			if !yield(it.key, it.val) {
				return
			}
		}
	}
}

// KeySet collects the live keys into a Set3.
func (m *Map[K, V]) KeySet() *set3.Set3[K] {
	s := set3.Empty[K]()
	for k := range m.All() {
		s.Add(k)
	}
	return s
}

// ValueSet collects the distinct live values into a Set3.
func (m *Map[K, V]) ValueSet() *set3.Set3[V] {
	s := set3.Empty[V]()
	for _, v := range m.All() {
		s.Add(v)
	}
	return s
}
