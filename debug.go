package champ

import (
	"fmt"
	"strings"

	set3 "github.com/TomTonic/Set3"

	"github.com/YuriyKrasilnikov/champ-trie/arena"
)

// String returns a compact summary of the map.
func (m *Map[K, V]) String() string {
	return fmt.Sprintf("champ.Map[len=%d adhash=%#016x]", m.count, uint64(m.digest))
}

// String returns a compact summary of the map.
func (s *SyncMap[K, V]) String() string {
	st := s.state.Load()
	return fmt.Sprintf("champ.SyncMap[len=%d adhash=%#016x]", st.count, uint64(st.digest))
}

// dump renders the trie one node per line, indented by depth. For debugging
// and for shape assertions in tests: canonical form means two maps with the
// same content (and hashers) dump identically.
func (m *Map[K, V]) dump() string {
	var sb strings.Builder
	dumpNode(&sb, m.nodes, m.root, 0)
	return sb.String()
}

func dumpNode[K comparable, V comparable](sb *strings.Builder, nodes arena.Backend[node[K, V]], h arena.Handle, depth int) {
	n := nodes.At(h)
	indent := strings.Repeat("  ", depth)
	if n.kind == kindCollision {
		fmt.Fprintf(sb, "%scollision hash=%#016x", indent, n.hash)
		for _, e := range n.entries {
			fmt.Fprintf(sb, " (%v=%v)", e.key, e.val)
		}
		sb.WriteByte('\n')
		return
	}
	fmt.Fprintf(sb, "%sinterior data=%#08x node=%#08x", indent, uint32(n.dataMap), uint32(n.nodeMap))
	for _, e := range n.entries {
		fmt.Fprintf(sb, " (%v=%v)", e.key, e.val)
	}
	sb.WriteByte('\n')
	for _, child := range n.children {
		dumpNode(sb, nodes, child, depth+1)
	}
}

// validate walks the whole trie and checks the structural invariants: map
// disjointness and array lengths, hash-path consistency, canonical
// shallowness (no non-root subtree with fewer than two entries), the depth
// bound, key uniqueness, and that the stored count and digest match a from-
// scratch recomputation. Tests run it after every scripted scenario.
func (m *Map[K, V]) validate() error {
	seen := set3.Empty[K]()
	var digest Digest
	total, err := m.validateNode(m.root, 0, 0, seen, &digest)
	if err != nil {
		return err
	}
	if total != m.count {
		return fmt.Errorf("champ: count %d, trie holds %d entries", m.count, total)
	}
	if digest != m.digest {
		return fmt.Errorf("champ: digest %#016x, recomputed %#016x", uint64(m.digest), uint64(digest))
	}
	return nil
}

// validateNode checks the subtree at h, whose path from the root spells the
// hash prefix `prefix` (depth*5 bits). It returns the subtree's entry count.
func (m *Map[K, V]) validateNode(h arena.Handle, depth int, prefix uint64, seen *set3.Set3[K], digest *Digest) (int, error) {
	n := m.nodes.At(h)
	prefixMask := uint64(1)<<(uint(depth)*sliceBits) - 1
	if uint(depth)*sliceBits >= 64 {
		prefixMask = ^uint64(0)
	}

	if n.kind == kindCollision {
		if !exhausted(depth) {
			return 0, fmt.Errorf("champ: collision node above the exhaustion level, depth %d", depth)
		}
		if len(n.entries) < 2 {
			return 0, fmt.Errorf("champ: collision node with %d entries", len(n.entries))
		}
		if n.dataMap != 0 || n.nodeMap != 0 {
			return 0, fmt.Errorf("champ: collision node with bitmaps set")
		}
		if n.hash&prefixMask != prefix {
			return 0, fmt.Errorf("champ: collision node off its hash path")
		}
		for _, e := range n.entries {
			hk := m.hashKey(e.key)
			if hk != n.hash {
				return 0, fmt.Errorf("champ: collision entry hash %#016x, bucket hash %#016x", hk, n.hash)
			}
			if seen.Contains(e.key) {
				return 0, fmt.Errorf("champ: duplicate key %v", e.key)
			}
			seen.Add(e.key)
			*digest = digest.xor(mixEntry(hk, m.hashVal(e.val)))
		}
		return len(n.entries), nil
	}

	if depth >= maxDepth {
		return 0, fmt.Errorf("champ: interior node beyond the depth bound, depth %d", depth)
	}
	if n.dataMap&n.nodeMap != 0 {
		return 0, fmt.Errorf("champ: overlapping bitmaps data=%#08x node=%#08x", uint32(n.dataMap), uint32(n.nodeMap))
	}
	if len(n.entries) != n.dataMap.count() {
		return 0, fmt.Errorf("champ: %d entries for %d data bits", len(n.entries), n.dataMap.count())
	}
	if len(n.children) != n.nodeMap.count() {
		return 0, fmt.Errorf("champ: %d children for %d node bits", len(n.children), n.nodeMap.count())
	}

	total := 0
	for pos := uint32(0); pos < 1<<sliceBits; pos++ {
		switch {
		case n.dataMap.has(pos):
			e := n.entries[n.dataMap.rank(pos)]
			hk := m.hashKey(e.key)
			want := prefix | uint64(pos)<<(uint(depth)*sliceBits)
			if hk&(prefixMask|uint64(sliceMask)<<(uint(depth)*sliceBits)) != want {
				return 0, fmt.Errorf("champ: entry %v stored off its hash path", e.key)
			}
			if seen.Contains(e.key) {
				return 0, fmt.Errorf("champ: duplicate key %v", e.key)
			}
			seen.Add(e.key)
			*digest = digest.xor(mixEntry(hk, m.hashVal(e.val)))
			total++
		case n.nodeMap.has(pos):
			child := n.children[n.nodeMap.rank(pos)]
			sub, err := m.validateNode(child, depth+1, prefix|uint64(pos)<<(uint(depth)*sliceBits), seen, digest)
			if err != nil {
				return 0, err
			}
			if sub < 2 {
				// Canonical shallowness: a subtree reducible to one entry
				// must have been inlined here.
				return 0, fmt.Errorf("champ: child subtree with %d entries at depth %d", sub, depth+1)
			}
			total += sub
		}
	}
	return total, nil
}
