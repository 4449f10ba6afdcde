package champ

import "testing"

func TestBitmapSetClearHas(t *testing.T) {
	var b bitmap

	positions := []uint32{0, 1, 5, 15, 16, 30, 31}
	// initially all bits should be clear
	for _, p := range positions {
		if b.has(p) {
			t.Fatalf("bit %d should be clear initially", p)
		}
	}

	// set and verify
	for _, p := range positions {
		b = b.set(p)
		if !b.has(p) {
			t.Fatalf("bit %d should be set after set()", p)
		}
	}

	// some other bits should remain clear
	for _, p := range []uint32{2, 14, 17, 29} {
		if b.has(p) {
			t.Fatalf("bit %d should remain clear", p)
		}
	}

	// clear and verify
	for _, p := range positions {
		b = b.clear(p)
		if b.has(p) {
			t.Fatalf("bit %d should be clear after clear()", p)
		}
	}
	if b != 0 {
		t.Fatalf("expected empty bitmap, got %#08x", uint32(b))
	}
}

func TestBitmapRank(t *testing.T) {
	var b bitmap
	for _, p := range []uint32{3, 7, 20, 31} {
		b = b.set(p)
	}

	// rank is the dense array index: the number of set bits below pos
	cases := []struct {
		pos  uint32
		want int
	}{
		{0, 0}, {3, 0}, {4, 1}, {7, 1}, {8, 2}, {20, 2}, {21, 3}, {31, 3},
	}
	for _, c := range cases {
		if got := b.rank(c.pos); got != c.want {
			t.Fatalf("rank(%d) = %d, want %d", c.pos, got, c.want)
		}
	}
}

func TestBitmapCount(t *testing.T) {
	var b bitmap
	if got := b.count(); got != 0 {
		t.Fatalf("expected count 0 on empty bitmap, got %d", got)
	}

	b = b.set(10)
	b = b.set(20)
	b = b.set(10) // duplicate, should not increase count
	if got := b.count(); got != 2 {
		t.Fatalf("expected count 2 after setting two distinct bits, got %d", got)
	}

	b = b.set(0)
	b = b.set(31)
	if got := b.count(); got != 4 {
		t.Fatalf("expected count 4, got %d", got)
	}

	b = b.clear(20)
	if got := b.count(); got != 3 {
		t.Fatalf("expected count 3 after clearing one bit, got %d", got)
	}
}
