package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// DeepEqual reports whether m and other hold the same entries by walking
// both tries. Canonical form makes this a plain structural comparison:
// equal content implies equal shape, so the walk compares node for node.
// Collision buckets are compared as unordered sets.
//
// DeepEqual is the exact follow-up to Equal's O(1) digest comparison. Both
// maps must use the same hashers; otherwise equal content can occupy
// different shapes and the walk reports false.
func (m *Map[K, V]) DeepEqual(other *Map[K, V]) bool {
	if m.count != other.count {
		return false
	}
	return deepEqualNode(m.nodes, m.root, other.nodes, other.root)
}

func deepEqualNode[K comparable, V comparable](an arena.Backend[node[K, V]], ah arena.Handle, bn arena.Backend[node[K, V]], bh arena.Handle) bool {
	a, b := an.At(ah), bn.At(bh)
	if a.kind != b.kind {
		return false
	}
	if a.kind == kindCollision {
		if a.hash != b.hash || len(a.entries) != len(b.entries) {
			return false
		}
		for _, e := range a.entries {
			i := b.collisionFind(e.key)
			if i < 0 || b.entries[i].val != e.val {
				return false
			}
		}
		return true
	}
	if a.dataMap != b.dataMap || a.nodeMap != b.nodeMap {
		return false
	}
	for i := range a.entries {
		if a.entries[i] != b.entries[i] {
			return false
		}
	}
	for i := range a.children {
		if !deepEqualNode(an, a.children[i], bn, b.children[i]) {
			return false
		}
	}
	return true
}
