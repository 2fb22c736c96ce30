// Package rng provides the game's seeded random source.
package rng

import (
	"math/rand"
	"time"
)

// RNG wraps math/rand.Rand with position tracking.
// Position increments with every draw.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a new RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// IntRange returns a random integer in [lo, hi]. If hi < lo, lo is returned.
func (r *RNG) IntRange(lo, hi int) int {
	r.pos++
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Uniform returns a random float in [lo, hi].
func (r *RNG) Uniform(lo, hi float64) float64 {
	r.pos++
	if hi <= lo {
		return lo
	}
	return lo + r.src.Float64()*(hi-lo)
}

// Duration returns a random duration in [lo, hi].
func (r *RNG) Duration(lo, hi time.Duration) time.Duration {
	return time.Duration(r.Uniform(float64(lo), float64(hi)))
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
