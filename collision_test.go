package champ

import (
	"slices"
	"testing"

	"github.com/go-quicktest/qt"
)

// tableHasher hashes through a fixed table, for engineering exact hash
// layouts in tests.
func tableHasher(table map[string]uint64) func(string) uint64 {
	return func(s string) uint64 {
		h, ok := table[s]
		if !ok {
			panic("tableHasher: unknown key " + s)
		}
		return h
	}
}

// Two keys that agree in their low 5 bits but split at level 1 must migrate
// inward to a shared child, and migrate back out when one is removed.
func TestLevelOneSplitAndInlining(t *testing.T) {
	m := NewWithHasher[string, int](tableHasher(map[string]uint64{
		"a": 0x21, // level 0 position 1, level 1 position 1
		"b": 0x41, // level 0 position 1, level 1 position 2
	}), nil)

	m.Put("a", 1)
	m.Put("b", 2)

	root := m.nodes.At(m.root)
	qt.Assert(t, qt.Equals(root.dataMap, bitmap(0)))
	qt.Assert(t, qt.Equals(root.nodeMap, bitmap(0).set(1)))
	qt.Assert(t, qt.HasLen(root.children, 1))

	child := m.nodes.At(root.children[0])
	qt.Assert(t, qt.Equals(child.dataMap, bitmap(0).set(1).set(2)))
	qt.Assert(t, qt.Equals(child.nodeMap, bitmap(0)))
	qt.Assert(t, qt.IsTrue(slices.Equal(child.entries, []entry[string, int]{{"a", 1}, {"b", 2}})))

	// removing one entry leaves a singleton subtree, which must come back
	// inline at the parent
	m.Delete("b")
	root = m.nodes.At(m.root)
	qt.Assert(t, qt.Equals(root.dataMap, bitmap(0).set(1)))
	qt.Assert(t, qt.Equals(root.nodeMap, bitmap(0)))
	qt.Assert(t, qt.IsTrue(slices.Equal(root.entries, []entry[string, int]{{"a", 1}})))
	qt.Assert(t, qt.IsNil(m.validate()))
}

// Keys sharing a full 64-bit hash land in a collision bucket at the level
// where the hash runs out; both stay retrievable, and removing one inlines
// the survivor all the way back up.
func TestFullHashCollision(t *testing.T) {
	const h = uint64(0xDEADBEEFDEADBEEF)
	m := NewWithHasher[string, int](tableHasher(map[string]uint64{
		"x": h, "y": h, "z": h,
	}), nil)

	m.Put("x", 1)
	m.Put("y", 2)
	qt.Assert(t, qt.Equals(m.Len(), 2))
	qt.Assert(t, qt.IsNil(m.validate()))

	vx, okx := m.Get("x")
	vy, oky := m.Get("y")
	qt.Assert(t, qt.IsTrue(okx))
	qt.Assert(t, qt.IsTrue(oky))
	qt.Assert(t, qt.Equals(vx, 1))
	qt.Assert(t, qt.Equals(vy, 2))

	// the bucket sits below a single-child chain spelling the shared hash
	bucket := m.nodes.At(m.root)
	depth := 0
	for bucket.kind == kindInterior {
		qt.Assert(t, qt.Equals(bucket.dataMap, bitmap(0)))
		qt.Assert(t, qt.Equals(bucket.nodeMap, bitmap(0).set(sliceAt(h, depth))))
		bucket = m.nodes.At(bucket.children[0])
		depth++
	}
	qt.Assert(t, qt.Equals(depth, maxDepth))
	qt.Assert(t, qt.Equals(bucket.hash, h))
	qt.Assert(t, qt.HasLen(bucket.entries, 2))

	// a third twin joins the same bucket
	m.Put("z", 3)
	qt.Assert(t, qt.Equals(m.Len(), 3))
	qt.Assert(t, qt.IsNil(m.validate()))

	// replacement inside the bucket keeps count and updates the digest
	prior, replaced := m.Put("y", 20)
	qt.Assert(t, qt.IsTrue(replaced))
	qt.Assert(t, qt.Equals(prior, 2))
	qt.Assert(t, qt.Equals(m.Len(), 3))
	qt.Assert(t, qt.IsNil(m.validate()))

	removed, ok := m.Delete("y")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(removed, 20))
	qt.Assert(t, qt.IsNil(m.validate()))

	m.Delete("z")
	qt.Assert(t, qt.Equals(m.Len(), 1))

	// the survivor must be inlined at the root, the whole chain gone
	root := m.nodes.At(m.root)
	qt.Assert(t, qt.Equals(root.nodeMap, bitmap(0)))
	qt.Assert(t, qt.Equals(root.dataMap, bitmap(0).set(sliceAt(h, 0))))
	qt.Assert(t, qt.IsTrue(slices.Equal(root.entries, []entry[string, int]{{"x", 1}})))

	vx, okx = m.Get("x")
	qt.Assert(t, qt.IsTrue(okx))
	qt.Assert(t, qt.Equals(vx, 1))
	qt.Assert(t, qt.IsNil(m.validate()))
}

// Collision buckets compare as unordered sets: arrival order must not leak
// into equality or the digest.
func TestCollisionOrderIrrelevant(t *testing.T) {
	const h = uint64(42)
	table := map[string]uint64{"x": h, "y": h}
	kh := tableHasher(table)
	vh := defaultHasher[int]()

	a := NewWithHasher[string, int](kh, vh)
	a.Put("x", 1)
	a.Put("y", 2)

	b := NewWithHasher[string, int](kh, vh)
	b.Put("y", 2)
	b.Put("x", 1)

	qt.Assert(t, qt.Equals(a.AdHash(), b.AdHash()))
	qt.Assert(t, qt.IsTrue(a.Equal(b)))
	qt.Assert(t, qt.IsTrue(a.DeepEqual(b)))
}

// A key that misses inside a collision bucket must leave the map untouched.
func TestCollisionMiss(t *testing.T) {
	const h = uint64(7)
	m := NewWithHasher[string, int](tableHasher(map[string]uint64{
		"x": h, "y": h, "w": h,
	}), nil)
	m.Put("x", 1)
	m.Put("y", 2)

	cursor := m.nodes.Len()
	if _, ok := m.Get("w"); ok {
		t.Fatalf("expected miss for w")
	}
	if _, ok := m.Delete("w"); ok {
		t.Fatalf("expected delete miss for w")
	}
	qt.Assert(t, qt.Equals(m.nodes.Len(), cursor))
	qt.Assert(t, qt.Equals(m.Len(), 2))
}
