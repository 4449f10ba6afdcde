// Package champ implements a persistent hash map backed by a CHAMP trie
// (Compressed Hash-Array Mapped Prefix-tree). The trie shape is canonical:
// it is a function of the set of live entries alone, independent of the
// insertion and deletion history. Entries migrate inward when hashes clash
// and back outward when deletions leave a subtree with a single entry, so
// two maps with the same content are structurally identical. Together with
// an incrementally maintained additive digest (see Digest) this gives O(1)
// structural equality.
//
// Nodes live in an arena owned by the map and are never mutated once linked;
// every edit copies the path from the touched node back to the root. The
// arena's allocation cursor doubles as a checkpoint mechanism: Checkpoint
// snapshots it together with the shell state, and Rollback truncates the
// arena to discard speculative mutations.
//
// Concurrency: a Map must be confined to one goroutine. SyncMap serves any
// number of concurrent readers alongside a single externally synchronized
// writer.
package champ

import (
	"github.com/YuriyKrasilnikov/champ-trie/arena"
)

// Map is a hash map with canonical structure and an additive digest. The
// zero value is not usable; construct with New or NewWithHasher.
//
// Both keys and values are hashed: values feed the digest, so structural
// equality covers value replacement, not just key membership.
type Map[K comparable, V comparable] struct {
	nodes  arena.Backend[node[K, V]]
	root   arena.Handle
	empty  arena.Handle // the primordial empty root, allocated by the constructor
	count  int
	digest Digest

	hashKey func(K) uint64
	hashVal func(V) uint64

	// cpStack holds the sequence numbers of live checkpoints, innermost
	// last. gen counts mutations and rollGen counts rollbacks; iterators
	// born under an older generation are dead.
	cpStack []uint64
	cpSeq   uint64
	gen     uint64
	rollGen uint64
}

// New returns an empty map using per-map seeded default hashers.
func New[K comparable, V comparable]() *Map[K, V] {
	return NewWithHasher[K, V](nil, nil)
}

// NewWithHasher returns an empty map with caller-supplied hash functions.
// Either may be nil to fall back to the seeded default. A hasher must be
// deterministic for the lifetime of the map.
func NewWithHasher[K comparable, V comparable](hashKey func(K) uint64, hashVal func(V) uint64) *Map[K, V] {
	m := &Map[K, V]{nodes: arena.New[node[K, V]]()}
	initMap(m, hashKey, hashVal)
	return m
}

func initMap[K comparable, V comparable](m *Map[K, V], hashKey func(K) uint64, hashVal func(V) uint64) {
	if hashKey == nil {
		hashKey = defaultHasher[K]()
	}
	if hashVal == nil {
		hashVal = defaultHasher[V]()
	}
	m.hashKey = hashKey
	m.hashVal = hashVal
	m.root = m.nodes.Alloc(node[K, V]{})
	m.empty = m.root
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.count }

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.count == 0 }

// AdHash returns the current additive digest.
func (m *Map[K, V]) AdHash() Digest { return m.digest }

// Equal reports whether m and other hold the same entries, in O(1) by
// comparing counts and digests. Subject to the digest collision bound
// (about 2^-64); both maps must use the same hashers for the comparison to
// be meaningful. DeepEqual is the exact follow-up.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	return m.count == other.count && m.digest == other.digest
}

// Clear removes every entry, reclaiming all nodes by truncating the arena
// back to the primordial empty root. It panics while checkpoints are live,
// since truncation would invalidate their cursors.
func (m *Map[K, V]) Clear() {
	if len(m.cpStack) > 0 {
		panic("champ: Clear with live checkpoints")
	}
	m.nodes.Truncate(int(m.empty) + 1)
	m.root = m.empty
	m.count = 0
	m.digest = 0
	m.gen++
	m.rollGen++
}
