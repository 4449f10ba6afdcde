package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// The trie has two node variants, a closed union discriminated by kind:
//
//   - interior: two 32-bit bitmaps plus dense payload arrays. Bit i of
//     dataMap marks an inline entry at position i, bit i of nodeMap a child
//     handle; the maps are disjoint. Array order is ascending position.
//   - collision: a bucket of entries whose keys share all 64 hash bits,
//     pinned at the level where the hash is exhausted. The shared hash is
//     stored once; the entry list is unordered.
//
// Nodes are immutable once linked into the trie. Every edit goes through the
// with* copy constructors below and allocates a fresh arena slot.

type nodeKind uint8

const (
	kindInterior nodeKind = iota
	kindCollision
)

// entry is an inline key-value pair.
type entry[K comparable, V comparable] struct {
	key K
	val V
}

type node[K comparable, V comparable] struct {
	dataMap  bitmap
	nodeMap  bitmap
	kind     nodeKind
	hash     uint64 // collision nodes: the hash shared by all entries
	entries  []entry[K, V]
	children []arena.Handle
}

func collisionNode[K comparable, V comparable](hash uint64, entries ...entry[K, V]) node[K, V] {
	return node[K, V]{kind: kindCollision, hash: hash, entries: entries}
}

// collisionFind returns the index of k in a collision bucket, or -1.
func (n *node[K, V]) collisionFind(k K) int {
	for i := range n.entries {
		if n.entries[i].key == k {
			return i
		}
	}
	return -1
}

// loneEntry reports whether the subtree rooted at n has shrunk to a single
// entry that must migrate back inline to the parent: an interior node with
// one inline entry and no children, or a collision bucket down to one pair.
func (n *node[K, V]) loneEntry() (entry[K, V], bool) {
	if len(n.entries) != 1 {
		return entry[K, V]{}, false
	}
	if n.kind == kindCollision || n.nodeMap == 0 {
		return n.entries[0], true
	}
	return entry[K, V]{}, false
}

// withEntryInserted copies n with e inlined at pos.
func (n *node[K, V]) withEntryInserted(pos uint32, e entry[K, V]) node[K, V] {
	return node[K, V]{
		dataMap:  n.dataMap.set(pos),
		nodeMap:  n.nodeMap,
		entries:  insertAt(n.entries, n.dataMap.rank(pos), e),
		children: n.children,
	}
}

// withEntryReplaced copies n with the entry at pos swapped for e.
func (n *node[K, V]) withEntryReplaced(pos uint32, e entry[K, V]) node[K, V] {
	return node[K, V]{
		dataMap:  n.dataMap,
		nodeMap:  n.nodeMap,
		entries:  replaceAt(n.entries, n.dataMap.rank(pos), e),
		children: n.children,
	}
}

// withEntryRemoved copies n with the entry at pos dropped.
func (n *node[K, V]) withEntryRemoved(pos uint32) node[K, V] {
	return node[K, V]{
		dataMap:  n.dataMap.clear(pos),
		nodeMap:  n.nodeMap,
		entries:  removeAt(n.entries, n.dataMap.rank(pos)),
		children: n.children,
	}
}

// withChildReplaced copies n with the child at pos swapped for h.
func (n *node[K, V]) withChildReplaced(pos uint32, h arena.Handle) node[K, V] {
	return node[K, V]{
		dataMap:  n.dataMap,
		nodeMap:  n.nodeMap,
		entries:  n.entries,
		children: replaceAt(n.children, n.nodeMap.rank(pos), h),
	}
}

// withEntryPromoted copies n with the inline entry at pos replaced by the
// child subtree h (migration inward on collision).
func (n *node[K, V]) withEntryPromoted(pos uint32, h arena.Handle) node[K, V] {
	return node[K, V]{
		dataMap:  n.dataMap.clear(pos),
		nodeMap:  n.nodeMap.set(pos),
		entries:  removeAt(n.entries, n.dataMap.rank(pos)),
		children: insertAt(n.children, n.nodeMap.rank(pos), h),
	}
}

// withChildInlined copies n with the child at pos replaced by the inline
// entry e (migration outward on deletion).
func (n *node[K, V]) withChildInlined(pos uint32, e entry[K, V]) node[K, V] {
	return node[K, V]{
		dataMap:  n.dataMap.set(pos),
		nodeMap:  n.nodeMap.clear(pos),
		entries:  insertAt(n.entries, n.dataMap.rank(pos), e),
		children: removeAt(n.children, n.nodeMap.rank(pos)),
	}
}

// Dense-array edit helpers. Each returns a fresh slice; shared tails would
// break the immutability of already-linked nodes.

func insertAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s)+1)
	copy(out, s[:i])
	out[i] = v
	copy(out[i+1:], s[i:])
	return out
}

func replaceAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	out[i] = v
	return out
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, len(s)-1)
	copy(out, s[:i])
	copy(out[i:], s[i+1:])
	return out
}
