package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// Get returns the value stored for k, if any.
func (m *Map[K, V]) Get(k K) (V, bool) {
	return lookup(m.nodes, m.root, m.hashKey(k), k)
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// lookup descends from root consuming 5 hash bits per level. It takes the
// root explicitly so synchronized readers and iterators can run it against a
// snapshot.
func lookup[K comparable, V comparable](nodes arena.Backend[node[K, V]], root arena.Handle, hk uint64, k K) (V, bool) {
	var zero V
	h := root
	for depth := 0; ; depth++ {
		n := nodes.At(h)
		if n.kind == kindCollision {
			if n.hash == hk {
				if i := n.collisionFind(k); i >= 0 {
					return n.entries[i].val, true
				}
			}
			return zero, false
		}
		pos := sliceAt(hk, depth)
		switch {
		case n.dataMap.has(pos):
			e := &n.entries[n.dataMap.rank(pos)]
			if e.key == k {
				return e.val, true
			}
			return zero, false
		case n.nodeMap.has(pos):
			h = n.children[n.nodeMap.rank(pos)]
		default:
			return zero, false
		}
	}
}
