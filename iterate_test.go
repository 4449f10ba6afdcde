package champ

import (
	"testing"
)

func TestIterYieldsEveryEntryOnce(t *testing.T) {
	m := New[int, int]()
	const n = 777
	for _, k := range shuffled(n, 21) {
		m.Put(k, k+1)
	}

	seen := make(map[int]int, n)
	it := m.Iter()
	for it.Next() {
		if _, dup := seen[it.Key()]; dup {
			t.Fatalf("key %d yielded twice", it.Key())
		}
		seen[it.Key()] = it.Value()
	}
	if len(seen) != m.Len() {
		t.Fatalf("iter yielded %d entries, len is %d", len(seen), m.Len())
	}
	for k, v := range seen {
		if v != k+1 {
			t.Fatalf("entry %d carries %d", k, v)
		}
	}
}

func TestIterEmptyMap(t *testing.T) {
	m := New[string, string]()
	if m.Iter().Next() {
		t.Fatalf("iterator over empty map should be exhausted")
	}
}

func TestIterInvalidatedByMutation(t *testing.T) {
	m := New[int, int]()
	m.Put(1, 1)
	it := m.Iter()

	m.Put(2, 2)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic from a stale iterator")
		}
	}()
	it.Next()
}

func TestAllStopsEarly(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 100; i++ {
		m.Put(i, i)
	}
	steps := 0
	for range m.All() {
		steps++
		if steps == 5 {
			break
		}
	}
	if steps != 5 {
		t.Fatalf("expected early stop after 5 entries, got %d", steps)
	}
}

func TestKeySetValueSet(t *testing.T) {
	m := New[string, int]()
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 1) // duplicate value

	keys := m.KeySet()
	for _, k := range []string{"a", "b", "c"} {
		if !keys.Contains(k) {
			t.Fatalf("key set missing %q", k)
		}
	}
	if keys.Contains("d") {
		t.Fatalf("key set holds a key never inserted")
	}

	vals := m.ValueSet()
	if !vals.Contains(1) || !vals.Contains(2) {
		t.Fatalf("value set incomplete")
	}
	if vals.Contains(3) {
		t.Fatalf("value set holds a value never inserted")
	}
}
