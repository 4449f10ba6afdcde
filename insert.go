package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// Put inserts or replaces the mapping for k and returns the prior value, if
// any. The whole copy-on-write path is built before the root, count and
// digest are updated, so a failed allocation leaves the map untouched.
func (m *Map[K, V]) Put(k K, v V) (V, bool) {
	hk := m.hashKey(k)
	newRoot, prior, replaced := m.insert(m.root, 0, hk, entry[K, V]{key: k, val: v})
	m.root = newRoot
	if replaced {
		m.digest = m.digest.xor(mixEntry(hk, m.hashVal(prior))).xor(mixEntry(hk, m.hashVal(v)))
	} else {
		m.count++
		m.digest = m.digest.xor(mixEntry(hk, m.hashVal(v)))
	}
	m.gen++
	return prior, replaced
}

// insert returns the handle of the rewritten node plus the displaced value.
// Every level on the path re-emits a fresh copy; nodes already linked are
// never touched.
func (m *Map[K, V]) insert(h arena.Handle, depth int, hk uint64, e entry[K, V]) (arena.Handle, V, bool) {
	var zero V
	n := m.nodes.At(h)

	if n.kind == kindCollision {
		// A collision bucket sits where the hash is exhausted, so any key
		// that reached it shares all 64 bits with its entries.
		if i := n.collisionFind(e.key); i >= 0 {
			prior := n.entries[i].val
			nn := collisionNode(n.hash, replaceAt(n.entries, i, e)...)
			return m.nodes.Alloc(nn), prior, true
		}
		nn := collisionNode(n.hash, insertAt(n.entries, len(n.entries), e)...)
		return m.nodes.Alloc(nn), zero, false
	}

	pos := sliceAt(hk, depth)
	switch {
	case n.dataMap.has(pos):
		ex := n.entries[n.dataMap.rank(pos)]
		if ex.key == e.key {
			nn := n.withEntryReplaced(pos, e)
			return m.nodes.Alloc(nn), ex.val, true
		}
		// Conflicting prefix: both entries migrate inward to a fresh
		// subtree at the first level where their hashes diverge.
		child := m.mergePair(depth+1, m.hashKey(ex.key), ex, hk, e)
		nn := n.withEntryPromoted(pos, child)
		return m.nodes.Alloc(nn), zero, false
	case n.nodeMap.has(pos):
		child, prior, replaced := m.insert(n.children[n.nodeMap.rank(pos)], depth+1, hk, e)
		nn := n.withChildReplaced(pos, child)
		return m.nodes.Alloc(nn), prior, replaced
	default:
		nn := n.withEntryInserted(pos, e)
		return m.nodes.Alloc(nn), zero, false
	}
}

// mergePair builds the subtree holding two entries whose hashes agree on all
// slices above depth. While the slices keep agreeing it emits single-child
// interior levels; at the first divergence both entries land inline; if the
// hashes agree in full it bottoms out in a collision bucket.
func (m *Map[K, V]) mergePair(depth int, h1 uint64, e1 entry[K, V], h2 uint64, e2 entry[K, V]) arena.Handle {
	if exhausted(depth) {
		return m.nodes.Alloc(collisionNode(h1, e1, e2))
	}
	p1, p2 := sliceAt(h1, depth), sliceAt(h2, depth)
	if p1 == p2 {
		child := m.mergePair(depth+1, h1, e1, h2, e2)
		nn := node[K, V]{
			nodeMap:  bitmap(0).set(p1),
			children: []arena.Handle{child},
		}
		return m.nodes.Alloc(nn)
	}
	// Dense arrays are ordered by ascending position.
	nn := node[K, V]{dataMap: bitmap(0).set(p1).set(p2)}
	if p1 < p2 {
		nn.entries = []entry[K, V]{e1, e2}
	} else {
		nn.entries = []entry[K, V]{e2, e1}
	}
	return m.nodes.Alloc(nn)
}
