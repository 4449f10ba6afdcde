package champ

import (
	"github.com/dolthub/maphash"
	"golang.org/x/text/unicode/norm"
)

const (
	// sliceBits is the number of hash bits consumed per trie level.
	sliceBits = 5
	sliceMask = 1<<sliceBits - 1

	// maxDepth is the level at which a 64-bit hash is exhausted. Interior
	// nodes live at levels 0..maxDepth-1; a node at maxDepth can only be a
	// collision bucket.
	maxDepth = (64 + sliceBits - 1) / sliceBits
)

// sliceAt extracts the 5-bit position for the given level. The key is hashed
// once per operation; levels re-slice the same 64-bit value.
func sliceAt(h uint64, depth int) uint32 {
	return uint32(h>>(uint(depth)*sliceBits)) & sliceMask
}

// exhausted reports whether a 64-bit hash has no bits left at this level.
func exhausted(depth int) bool { return uint(depth)*sliceBits >= 64 }

// defaultHasher returns a per-map seeded hash function for any comparable
// type. Two hashers drawn here disagree on purpose: each map owns its seed.
func defaultHasher[T comparable]() func(T) uint64 {
	h := maphash.NewHasher[T]()
	return h.Hash
}

// NFCStringHasher returns a string hasher that normalizes to Unicode NFC
// before hashing. Pair it with keys that are themselves NFC-normalized on
// ingest so canonically equivalent spellings agree on both hash and equality.
func NFCStringHasher() func(string) uint64 {
	h := maphash.NewHasher[string]()
	return func(s string) uint64 { return h.Hash(norm.NFC.String(s)) }
}
