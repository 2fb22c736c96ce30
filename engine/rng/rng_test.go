package rng

import (
	"testing"
	"time"
)

func TestRNG_Deterministic(t *testing.T) {
	rng1 := New(42)
	rng2 := New(42)

	for i := 0; i < 20; i++ {
		a := rng1.IntRange(1, 6)
		b := rng2.IntRange(1, 6)
		if a != b {
			t.Fatalf("draw %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_IntRange_Bounds(t *testing.T) {
	r := New(99)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.IntRange(1, 3)
		if v < 1 || v > 3 {
			t.Fatalf("IntRange out of [1,3]: got %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all of 1..3 to appear, saw %v", seen)
	}
}

func TestRNG_IntRange_Degenerate(t *testing.T) {
	r := New(1)
	for i := 0; i < 10; i++ {
		if v := r.IntRange(4, 4); v != 4 {
			t.Fatalf("IntRange(4,4) = %d", v)
		}
		if v := r.IntRange(4, 2); v != 4 {
			t.Fatalf("IntRange(4,2) = %d", v)
		}
	}
}

func TestRNG_Duration_Bounds(t *testing.T) {
	r := New(7)
	lo, hi := 2*time.Second, 7*time.Second
	for i := 0; i < 1000; i++ {
		d := r.Duration(lo, hi)
		if d < lo || d > hi {
			t.Fatalf("Duration out of [%v,%v]: got %v", lo, hi, d)
		}
	}
}

func TestRNG_Position(t *testing.T) {
	r := New(5)
	r.IntRange(1, 6)
	r.Uniform(0, 1)
	r.Duration(time.Second, 2*time.Second)
	if r.Position() != 3 {
		t.Errorf("Position = %d, want 3", r.Position())
	}
	if r.Seed() != 5 {
		t.Errorf("Seed = %d, want 5", r.Seed())
	}
}
