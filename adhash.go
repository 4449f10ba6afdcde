package champ

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Digest is the map's additive structural digest: the XOR over all live
// entries of their per-entry contributions. XOR makes the digest a
// commutative group fold, so it depends only on the set of entries, never on
// the order they arrived in. The empty map's digest is 0.
//
// Two maps with equal counts and equal digests hold the same entries up to
// the collision probability of the entry mix, about 2^-64.
type Digest uint64

func (d Digest) xor(h uint64) Digest { return d ^ Digest(h) }

// mixEntry folds a key hash and a value hash into the entry's digest
// contribution. xxHash over the 128-bit concatenation avalanches both
// arguments, so near-identical pairs still contribute independent group
// elements.
func mixEntry(hk, hv uint64) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], hk)
	binary.LittleEndian.PutUint64(b[8:], hv)
	return xxhash.Sum64(b[:])
}

func (m *Map[K, V]) entryHash(k K, v V) uint64 {
	return mixEntry(m.hashKey(k), m.hashVal(v))
}
