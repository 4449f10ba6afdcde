package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// Delete removes the mapping for k and returns the removed value, if any.
// A miss allocates nothing and leaves the map untouched.
func (m *Map[K, V]) Delete(k K) (V, bool) {
	var zero V
	hk := m.hashKey(k)
	newRoot, removed, ok := m.remove(m.root, 0, hk, k)
	if !ok {
		return zero, false
	}
	m.root = newRoot
	m.count--
	m.digest = m.digest.xor(mixEntry(hk, m.hashVal(removed)))
	m.gen++
	return removed, true
}

// remove returns the handle of the rewritten node, or ok=false when k is
// absent and no copy-on-write happened.
func (m *Map[K, V]) remove(h arena.Handle, depth int, hk uint64, k K) (arena.Handle, V, bool) {
	var zero V
	n := m.nodes.At(h)

	if n.kind == kindCollision {
		i := n.collisionFind(k)
		if i < 0 {
			return arena.Nil, zero, false
		}
		removed := n.entries[i].val
		nn := collisionNode(n.hash, removeAt(n.entries, i)...)
		return m.nodes.Alloc(nn), removed, true
	}

	pos := sliceAt(hk, depth)
	switch {
	case n.dataMap.has(pos):
		i := n.dataMap.rank(pos)
		if n.entries[i].key != k {
			return arena.Nil, zero, false
		}
		removed := n.entries[i].val
		nn := n.withEntryRemoved(pos)
		return m.nodes.Alloc(nn), removed, true
	case n.nodeMap.has(pos):
		child, removed, ok := m.remove(n.children[n.nodeMap.rank(pos)], depth+1, hk, k)
		if !ok {
			return arena.Nil, zero, false
		}
		cn := m.nodes.At(child)
		if cn.kind == kindInterior && cn.dataMap == 0 && cn.nodeMap == 0 {
			// A child subtree holds at least two entries, so deleting one
			// can never empty it; an empty child means the trie was
			// malformed before this call.
			panic("champ: deletion emptied a non-root node")
		}
		if e, lone := cn.loneEntry(); lone {
			// Canonical shallowness is mandatory: a subtree down to one
			// entry migrates outward, back inline into this node. The
			// cascade continues as the recursion unwinds.
			nn := n.withChildInlined(pos, e)
			return m.nodes.Alloc(nn), removed, true
		}
		nn := n.withChildReplaced(pos, child)
		return m.nodes.Alloc(nn), removed, true
	default:
		return arena.Nil, zero, false
	}
}
