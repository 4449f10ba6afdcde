package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// Checkpoint is an opaque token capturing the shell and the arena cursor at
// a point in time. Tokens nest as a LIFO stack: rolling back to an outer
// token discards every token taken after it. Taking and committing a
// checkpoint are both O(1); rollback is O(k) in the nodes allocated since.
type Checkpoint struct {
	owner  any // the map that issued the token
	seq    uint64
	cursor int
	root   arena.Handle
	count  int
	digest Digest
}

// Checkpoint captures the current state. Speculative mutations made after
// this call can be discarded wholesale with Rollback.
func (m *Map[K, V]) Checkpoint() Checkpoint {
	m.cpSeq++
	cp := Checkpoint{
		owner:  m,
		seq:    m.cpSeq,
		cursor: m.nodes.Len(),
		root:   m.root,
		count:  m.count,
		digest: m.digest,
	}
	m.cpStack = append(m.cpStack, cp.seq)
	return cp
}

// Rollback restores the state captured by cp: the root handle, count and
// digest, and the arena cursor, reclaiming every node allocated since. cp
// itself is consumed, and any checkpoints taken after it are discarded.
// Iterators created before the rollback are invalidated.
//
// Rolling back a token that is not live on this map panics.
func (m *Map[K, V]) Rollback(cp Checkpoint) {
	if cp.owner != any(m) {
		panic("champ: unknown checkpoint")
	}
	m.cpStack = m.cpStack[:m.cpIndex(cp.seq)]
	m.nodes.Truncate(cp.cursor)
	m.root = cp.root
	m.count = cp.count
	m.digest = cp.digest
	m.gen++
	m.rollGen++
}

// Commit discards cp, keeping all mutations made since. Only the innermost
// live checkpoint may be committed; committing in any other order is a
// caller bug and panics.
func (m *Map[K, V]) Commit(cp Checkpoint) {
	if cp.owner != any(m) || len(m.cpStack) == 0 || m.cpStack[len(m.cpStack)-1] != cp.seq {
		panic("champ: commit of a checkpoint that is not innermost")
	}
	m.cpStack = m.cpStack[:len(m.cpStack)-1]
}

func (m *Map[K, V]) cpIndex(seq uint64) int {
	for i := len(m.cpStack) - 1; i >= 0; i-- {
		if m.cpStack[i] == seq {
			return i
		}
	}
	panic("champ: unknown checkpoint")
}
