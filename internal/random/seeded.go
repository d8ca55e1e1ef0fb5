// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package random provides a deterministic string-seeded pseudo-random
// generator and a seeded Fisher-Yates shuffle. It backs the daily
// catalog ordering: the same seed must yield the same order across
// processes, so the arithmetic is written out with pinned constants
// instead of delegating to math/rand (whose stream is not stable
// across seeding schemes or Go versions).
package random

// LCG constants (Numerical Recipes). Changing them changes every
// published catalog order for a given seed.
const (
	lcgMultiplier uint32 = 1664525
	lcgIncrement  uint32 = 1013904223
)

// Rand is a deterministic pseudo-random source derived from a string
// seed. It is not safe for concurrent use; callers create one per
// shuffle.
type Rand struct {
	state uint32
}

// New folds the seed into a 32-bit state with a polynomial hash
// (h = h*31 + c, wrapping at 32 bits) and returns a generator over it.
func New(seed string) *Rand {
	var h uint32
	for i := 0; i < len(seed); i++ {
		h = h*31 + uint32(seed[i])
	}
	return &Rand{state: h}
}

// Float64 advances the generator and returns the next draw in [0, 1).
func (r *Rand) Float64() float64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return float64(r.state) / (1 << 32)
}

// Intn returns a uniform draw from [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Shuffle returns a copy of items reordered by a Fisher-Yates pass
// driven by the seed, walking from the last index down to 1. The input
// slice is never mutated.
func Shuffle[T any](items []T, seed string) []T {
	out := make([]T, len(items))
	copy(out, items)
	r := New(seed)
	for i := len(out) - 1; i >= 1; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
